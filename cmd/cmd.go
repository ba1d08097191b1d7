// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for the database, config file and chart site headers.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration instead",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Write a config file with default settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing config file",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "headers",
				Usage: "Capture chart site browser headers from a cURL command",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output path for headers.json (default: ~/.chordex/headers.json)",
					},
				},
				Action: r.SetupHeaders,
			},
		},
	}
}

// catalogCommand handles catalog operations
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Song catalog operations",
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "Fetch songs with their key and mode from Spotify into a catalog CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "genre",
						Aliases:  []string{"g"},
						Usage:    "Genre to search",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of songs to fetch",
						Value:   100,
					},
					&cli.IntFlag{
						Name:  "start-year",
						Usage: "First release year",
						Value: 1950,
					},
					&cli.IntFlag{
						Name:  "end-year",
						Usage: "Last release year",
						Value: 2023,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Output directory (default: harvest.output_dir)",
					},
				},
				Action: r.CatalogFetch,
			},
			{
				Name:  "list",
				Usage: "List songs in a catalog CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "genre",
						Aliases:  []string{"g"},
						Usage:    "Genre of the catalog file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Catalog directory (default: harvest.output_dir)",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogList,
			},
		},
	}
}

// harvestCommand handles harvest operations
func harvestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "harvest",
		Usage: "Harvest chord progressions from chart sites",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Harvest every song in a genre catalog CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "genre",
						Aliases:  []string{"g"},
						Usage:    "Genre to harvest",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "dir",
						Aliases: []string{"d"},
						Usage:   "Directory holding the catalog and database CSVs (default: harvest.output_dir)",
					},
					&cli.IntFlag{
						Name:  "window",
						Usage: "Progression length (default: harvest.window_size)",
					},
					&cli.DurationFlag{
						Name:  "delay",
						Usage: "Pause between chart requests (default: harvest.delay_seconds)",
					},
				},
				Action: r.HarvestRun,
			},
			{
				Name:  "list",
				Usage: "List harvested songs and their progressions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only list songs of this genre",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Only list songs by this artist",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to list",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Read the genre database CSV instead of SQLite (requires --genre)",
					},
				},
				Action: r.HarvestList,
			},
			{
				Name:  "runs",
				Usage: "List recent harvest runs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only list runs of this genre",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to list",
						Value: 10,
					},
				},
				Action: r.HarvestRuns,
			},
			{
				Name:  "reanalyze",
				Usage: "Recompute stored progressions with a new window size",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "genre",
						Aliases: []string{"g"},
						Usage:   "Only reanalyze songs of this genre",
					},
					&cli.IntFlag{
						Name:     "window",
						Usage:    "Progression length",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
						Value: 4,
					},
				},
				Action: r.HarvestReanalyze,
			},
		},
	}
}

// theoryCommand exposes the normalization core without any network access
func theoryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theory",
		Usage: "Transposition and Roman numeral helpers",
		Commands: []*cli.Command{
			{
				Name:  "plan",
				Usage: "Show the shift that moves a song to C major",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "key",
						Aliases:  []string{"k"},
						Usage:    "Pitch class of the key (0 = C ... 11 = B)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "major or minor",
						Value:   "major",
					},
					&cli.StringFlag{
						Name:  "capo",
						Usage: `Capo text as printed on a chart, e.g. "2nd fret" or "no capo"`,
					},
				},
				Action: r.TheoryPlan,
			},
			{
				Name:      "roman",
				Usage:     "Encode chord symbols as Roman numerals",
				ArgsUsage: "<chord>...",
				Action:    r.TheoryRoman,
			},
			{
				Name:      "extract",
				Usage:     "Extract encoded progressions from a chord stream",
				ArgsUsage: "<chord>...",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "window",
						Aliases: []string{"w"},
						Usage:   "Progression length",
						Value:   4,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TheoryExtract,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive harvesting.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for harvesting a genre",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Directory holding the catalog and database CSVs (default: harvest.output_dir)",
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log file written while the TUI is running",
				Value: "./tmp/chordex-tui.log",
			},
		},
		Action: r.TUI,
	}
}
