package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chordex/internal/formatter"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
	tu "github.com/desertthunder/chordex/internal/testing"
)

// harvestRunner returns a runner with a temporary database and output directory and no delays.
func harvestRunner(t *testing.T, charts *tu.MockChartSource) (*Runner, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(dir, "chordex.db")
	config.Harvest.OutputDir = dir
	config.Harvest.DelaySeconds = 0

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Charts: charts,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})
	return runner, output, dir
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"chordex"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &tu.MockCatalog{}
			charts := &tu.MockChartSource{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Charts:     charts,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.charts != charts {
				t.Error("expected charts to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected stdout to be default output")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected default HTTP client")
			}
		})
	})

	t.Run("Before", func(t *testing.T) {
		t.Run("missing config file uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
			path := filepath.Join(t.TempDir(), "missing.toml")

			if err := run(t, runner, "--config", path, "theory", "roman", "C"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config == nil || runner.config.Harvest.WindowSize != 4 {
				t.Errorf("expected default config, got %+v", runner.config)
			}
			if runner.configPath != path {
				t.Errorf("expected config path %q, got %q", path, runner.configPath)
			}
		})

		t.Run("loads config file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[harvest]\nwindow_size = 3\ngenres = [\"pop\"]\n")

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
			if err := run(t, runner, "--config", path, "theory", "roman", "C"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if runner.config.Harvest.WindowSize != 3 {
				t.Errorf("expected window size 3, got %d", runner.config.Harvest.WindowSize)
			}
			if runner.config.Catalog.PageSize != 50 {
				t.Errorf("expected default page size to be kept, got %d", runner.config.Catalog.PageSize)
			}
		})

		t.Run("rejects invalid config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[harvest]\nwindow_size = 0\n")

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
			err := run(t, runner, "--config", path, "theory", "roman", "C")
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("verbose sets debug level", func(t *testing.T) {
			logger := shared.NewLogger(io.Discard)
			runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Logger: logger, Output: &bytes.Buffer{}})

			if err := run(t, runner, "--verbose", "theory", "roman", "C"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger.GetLevel() != log.DebugLevel {
				t.Errorf("expected debug level, got %v", logger.GetLevel())
			}
		})
	})

	t.Run("catalogService requires credentials", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientID = ""
		runner := NewRunner(RunnerOpts{Config: config})

		_, err := runner.catalogService(context.Background())
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("chartSource loads browser headers", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "headers.json")
		headers := &shared.BrowserHeaders{Headers: map[string]string{"Accept-Language": "en-US"}}
		if err := headers.Save(path); err != nil {
			t.Fatal(err)
		}

		config := shared.DefaultConfig()
		config.Chart.HeadersPath = path
		runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard)})

		charts, err := runner.chartSource()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if charts.Name() != "Ultimate Guitar" {
			t.Errorf("expected Ultimate Guitar client, got %q", charts.Name())
		}

		config.Chart.HeadersPath = filepath.Join(t.TempDir(), "missing.json")
		runner = NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard)})
		if _, err := runner.chartSource(); err == nil {
			t.Error("expected error for missing headers file")
		}
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, true)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "catalog", "harvest", "theory", "tui"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})
}

func TestTheoryCommands(t *testing.T) {
	newRunner := func() (*Runner, *bytes.Buffer) {
		output := &bytes.Buffer{}
		return NewRunner(RunnerOpts{
			Config: shared.DefaultConfig(),
			Logger: shared.NewLogger(io.Discard),
			Output: output,
		}), output
	}

	t.Run("plan", func(t *testing.T) {
		tt := []struct {
			name string
			args []string
			want string
		}{
			{name: "E major", args: []string{"--key", "4"}, want: "E major, capo 0: down 4"},
			{name: "A minor", args: []string{"--key", "9", "--mode", "minor"}, want: "A minor, capo 0: none"},
			{name: "G major with capo", args: []string{"--key", "7", "--capo", "2nd fret"}, want: "G major, capo 2: up 3"},
			{name: "no capo text", args: []string{"--key", "0", "--capo", "no capo"}, want: "C major, capo 0: none"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				runner, output := newRunner()
				if err := run(t, runner, append([]string{"theory", "plan"}, tc.args...)...); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !strings.Contains(output.String(), tc.want) {
					t.Errorf("expected %q in output, got %q", tc.want, output.String())
				}
			})
		}
	})

	t.Run("plan rejects bad input", func(t *testing.T) {
		runner, _ := newRunner()
		if err := run(t, runner, "theory", "plan", "--key", "12"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag for key, got %v", err)
		}

		runner, _ = newRunner()
		if err := run(t, runner, "theory", "plan", "--key", "0", "--mode", "dorian"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag for mode, got %v", err)
		}
	})

	t.Run("roman", func(t *testing.T) {
		runner, output := newRunner()
		if err := run(t, runner, "theory", "roman", "C", "Am", "Bdim", "G7", "Xyz"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		want := []string{"I", "vi", "VII°", "V7", "Chord Xyz not recognized"}
		if len(lines) != len(want) {
			t.Fatalf("expected %d lines, got %q", len(want), output.String())
		}
		for i, line := range lines {
			if !strings.HasSuffix(line, want[i]) {
				t.Errorf("line %d: expected suffix %q, got %q", i, want[i], line)
			}
		}
	})

	t.Run("roman without chords", func(t *testing.T) {
		runner, _ := newRunner()
		if err := run(t, runner, "theory", "roman"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("extract", func(t *testing.T) {
		runner, output := newRunner()
		if err := run(t, runner, "theory", "extract", "--window", "2", "C", "G", "C", "G", "G"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		result := output.String()
		for _, want := range []string{"  I - V\n", "  V - I\n", "! V - V\n", "3 progressions, 1 repetitive"} {
			if !strings.Contains(result, want) {
				t.Errorf("expected %q in output, got:\n%s", want, result)
			}
		}
	})

	t.Run("extract shorter than window", func(t *testing.T) {
		runner, output := newRunner()
		if err := run(t, runner, "theory", "extract", "C", "G"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "No progressions") {
			t.Errorf("unexpected output %q", output.String())
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		if err := run(t, runner, "--config", path, "setup", "config"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, path)

		runner = NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := run(t, runner, "--config", path, "setup", "config"); err == nil {
			t.Error("expected error when config exists")
		}

		runner = NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := run(t, runner, "--config", path, "setup", "config", "--force"); err != nil {
			t.Errorf("expected --force to overwrite, got %v", err)
		}
	})

	t.Run("database", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Database.Path = filepath.Join(t.TempDir(), "chordex.db")
		runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

		if err := run(t, runner, "setup", "database"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)

		if err := run(t, runner, "setup", "database", "--rollback"); err != nil {
			t.Errorf("unexpected rollback error: %v", err)
		}
	})

	t.Run("headers", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "config.toml")
		headersPath := filepath.Join(dir, "headers.json")
		curl := `curl 'https://www.ultimate-guitar.com/' -H 'accept-language: en-US' -b 'session=abc'`

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := run(t, runner, "--config", configPath, "setup", "headers", "--curl", curl, "--output", headersPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		headers, err := shared.LoadBrowserHeaders(headersPath)
		if err != nil {
			t.Fatalf("expected headers file: %v", err)
		}
		if headers.Cookie != "session=abc" {
			t.Errorf("expected cookie, got %q", headers.Cookie)
		}

		config, err := shared.LoadConfig(configPath)
		if err != nil {
			t.Fatalf("expected config file: %v", err)
		}
		if config.Chart.HeadersPath != headersPath {
			t.Errorf("expected headers_path %q, got %q", headersPath, config.Chart.HeadersPath)
		}
	})

	t.Run("headers requires one source", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Logger: shared.NewLogger(io.Discard)})
		if err := run(t, runner, "setup", "headers"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if err := run(t, runner, "setup", "headers", "--curl", "curl x", "--curl-file", "x.sh"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}

func TestCatalogCommands(t *testing.T) {
	t.Run("fetch writes catalog CSV", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &tu.MockCatalog{Songs: []models.Song{
			{Title: "Let It Be", Artist: "The Beatles", Key: 0, Mode: 1},
			{Title: "Zombie", Artist: "The Cranberries", Key: 4, Mode: 0},
		}}
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{
			Config:  shared.DefaultConfig(),
			Catalog: catalog,
			Logger:  shared.NewLogger(io.Discard),
			Output:  output,
		})

		if err := run(t, runner, "catalog", "fetch", "--genre", "Rock", "--count", "5", "--dir", dir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Saved 2 rock songs") {
			t.Errorf("unexpected output %q", output.String())
		}

		songs, err := formatter.ReadCatalogFile(formatter.CatalogFilename(dir, "rock"), "rock")
		if err != nil {
			t.Fatalf("expected catalog file: %v", err)
		}
		if len(songs) != 2 || songs[1].Title != "Zombie" {
			t.Errorf("unexpected songs %+v", songs)
		}

		output.Reset()
		if err := run(t, runner, "catalog", "list", "--genre", "rock", "--dir", dir); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"1. The Beatles - Let It Be (C major)", "2. The Cranberries - Zombie (E minor)", "Total: 2 songs"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, output.String())
			}
		}
	})

	t.Run("fetch rejects unknown genre", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Config: shared.DefaultConfig(), Catalog: &tu.MockCatalog{}, Logger: shared.NewLogger(io.Discard)})
		err := run(t, runner, "catalog", "fetch", "--genre", "polka", "--dir", t.TempDir())
		if !errors.Is(err, shared.ErrInvalidGenre) {
			t.Errorf("expected ErrInvalidGenre, got %v", err)
		}
	})
}

func TestHarvestCommands(t *testing.T) {
	charts := &tu.MockChartSource{Charts: map[string]tu.MockChart{
		"Let It Be": {Capo: "no capo", Tokens: []string{"C", "G", "Am", "F"}},
		"Zombie":    {Capo: "no capo", Tokens: []string{"Em", "C", "G", "D"}},
	}}
	runner, output, dir := harvestRunner(t, charts)

	songs := []models.Song{
		{Title: "Let It Be", Artist: "The Beatles", Key: 0, Mode: 1},
		{Title: "Zombie", Artist: "The Cranberries", Key: 7, Mode: 1},
		{Title: "Missing", Artist: "Nobody", Key: 0, Mode: 1},
	}
	if _, err := formatter.WriteCatalog(dir, "pop", songs); err != nil {
		t.Fatal(err)
	}

	t.Run("run", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "run", "--genre", "pop"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		for _, want := range []string{"Harvest: pop", "Processed: 3/3", "Saved:     2", "Skipped:   1", "Failed:    0"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, output.String())
			}
		}
		tu.AssertFileExists(t, formatter.DatabaseFilename(dir, "pop"))
	})

	t.Run("list", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "list", "--genre", "pop"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Zombie in G major moves up 5 semitones: Em C G D becomes Am F C G.
		for _, want := range []string{"The Beatles - Let It Be", "I - V - vi - IV", "The Cranberries - Zombie", "vi - IV - I - V"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, output.String())
			}
		}
	})

	t.Run("list from CSV", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "list", "--csv", "--genre", "pop"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"1. The Beatles - Let It Be (C major)", "I - V - vi - IV", "Total: 2 songs"} {
			if !strings.Contains(output.String(), want) {
				t.Errorf("expected %q in output, got:\n%s", want, output.String())
			}
		}

		if err := run(t, runner, "harvest", "list", "--csv"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("runs", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "runs"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "2 saved   1 skipped   0 failed of   3") {
			t.Errorf("unexpected runs output:\n%s", output.String())
		}
	})

	t.Run("rerun skips harvested songs", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "run", "--genre", "pop"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Saved:     0") || !strings.Contains(output.String(), "Skipped:   3") {
			t.Errorf("expected every song skipped, got:\n%s", output.String())
		}
	})

	t.Run("reanalyze", func(t *testing.T) {
		output.Reset()
		if err := run(t, runner, "harvest", "reanalyze", "--genre", "pop", "--window", "3"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "Reanalyzed 2/2 songs with window 3") {
			t.Errorf("unexpected output %q", output.String())
		}

		output.Reset()
		if err := run(t, runner, "harvest", "list", "--genre", "pop", "--limit", "1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output.String(), "I - V - vi\n") || strings.Contains(output.String(), "Zombie") {
			t.Errorf("expected one song with 3-chord progressions, got:\n%s", output.String())
		}
	})

	t.Run("run without catalog file", func(t *testing.T) {
		if err := run(t, runner, "harvest", "run", "--genre", "rock"); err == nil {
			t.Error("expected error for missing catalog")
		}
	})
}

func TestCommandErrors(t *testing.T) {
	tt := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknown genre", args: []string{"catalog", "list", "--genre", "polka"}, want: shared.ErrInvalidGenre},
		{name: "bad key", args: []string{"theory", "plan", "--key=12"}, want: shared.ErrInvalidFlag},
		{name: "no chords", args: []string{"theory", "extract"}, want: shared.ErrMissingArgument},
		{name: "bad window", args: []string{"harvest", "reanalyze", "--window", "0"}, want: shared.ErrInvalidFlag},
		{name: "missing credentials", args: []string{"catalog", "fetch", "--genre", "pop"}, want: shared.ErrMissingCredentials},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Credentials.Spotify.ClientID = ""
			runner := NewRunner(RunnerOpts{Config: config, Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})

			err := run(t, runner, tc.args...)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
