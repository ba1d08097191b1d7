package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chordex/internal/repositories"
	"github.com/desertthunder/chordex/internal/services"
	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// Services and the database are created on first use so that commands which need neither
// (theory, setup config) work without credentials.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	charts     services.ChartSource
	db         *sql.DB
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Charts     services.ChartSource
	DB         *sql.DB
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		charts:     opts.Charts,
		db:         opts.DB,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, catalogCommand, harvestCommand, theoryCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before applies the global flags and loads the config file before any command runs.
//
// A missing config file falls back to the embedded defaults.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	r.configPath = cmd.String("config")
	if r.config != nil {
		return ctx, nil
	}

	if _, err := os.Stat(r.configPath); err != nil {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		r.config = shared.DefaultConfig()
		return ctx, nil
	}

	config, err := shared.LoadConfig(r.configPath)
	if err != nil {
		return ctx, err
	}
	if err := config.Validate(); err != nil {
		return ctx, err
	}
	r.config = config
	return ctx, nil
}

// After closes the database if a command opened it.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by the runner and every service it creates afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) cfg() *shared.Config {
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}
	return r.config
}

// database opens the configured SQLite database and applies pending migrations.
func (r *Runner) database() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenDatabase(r.cfg().Database)
	if err != nil {
		return nil, err
	}
	r.db = db
	return db, nil
}

// chartSource builds the Ultimate Guitar client from the [chart] config section.
func (r *Runner) chartSource() (services.ChartSource, error) {
	if r.charts != nil {
		return r.charts, nil
	}

	config := r.cfg().Chart
	opts := services.UltimateGuitarOpts{
		BaseURL:           config.BaseURL,
		RequestsPerSecond: config.RequestsPerSecond,
		UserAgents:        config.UserAgents,
		HTTPClient:        r.httpClient,
	}

	if config.HeadersPath != "" {
		headers, err := shared.LoadBrowserHeaders(config.HeadersPath)
		if err != nil {
			return nil, err
		}
		opts.Headers = headers
		r.logger.Debug("loaded browser headers", "path", config.HeadersPath, "count", len(headers.Headers))
	}

	r.charts = services.NewUltimateGuitar(opts)
	return r.charts, nil
}

// catalogService builds the Spotify catalog client from the configured credentials.
func (r *Runner) catalogService(ctx context.Context) (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	config := r.cfg()
	if !config.Credentials.Spotify.Configured() {
		return nil, fmt.Errorf("%w: set credentials.spotify in %s", shared.ErrMissingCredentials, r.configPath)
	}

	catalog, err := services.NewSpotifyCatalog(ctx, services.SpotifyOpts{
		ClientID:     config.Credentials.Spotify.ClientID,
		ClientSecret: config.Credentials.Spotify.ClientSecret,
		TokenURL:     config.Catalog.TokenURL,
		BaseURL:      config.Catalog.BaseURL,
		Market:       config.Catalog.Market,
		PageSize:     config.Catalog.PageSize,
		HTTPClient:   r.httpClient,
	})
	if err != nil {
		return nil, err
	}
	r.catalog = catalog
	return catalog, nil
}

// harvestEngine wires the chart source and repositories into a [tasks.HarvestEngine].
// The catalog is left out; catalog commands use [Runner.catalogEngine].
func (r *Runner) harvestEngine() (*tasks.HarvestEngine, error) {
	charts, err := r.chartSource()
	if err != nil {
		return nil, err
	}

	db, err := r.database()
	if err != nil {
		return nil, err
	}

	return tasks.NewHarvestEngine(
		nil,
		charts,
		repositories.NewSongRepository(db),
		repositories.NewRunRepository(db),
		r.logger,
	), nil
}

// catalogEngine creates an engine that can only fetch catalog songs.
func (r *Runner) catalogEngine(ctx context.Context) (*tasks.HarvestEngine, error) {
	catalog, err := r.catalogService(ctx)
	if err != nil {
		return nil, err
	}
	return tasks.NewHarvestEngine(catalog, nil, nil, nil, r.logger), nil
}

// outputDir returns the --dir flag or the configured harvest output directory.
func (r *Runner) outputDir(cmd *cli.Command) string {
	if dir := cmd.String("dir"); dir != "" {
		return dir
	}
	return r.cfg().Harvest.OutputDir
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
