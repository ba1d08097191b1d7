package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Catalog     CatalogConfig     `toml:"catalog"`
	Chart       ChartConfig       `toml:"chart"`
	Harvest     HarvestConfig     `toml:"harvest"`
	Database    DatabaseConfig    `toml:"database"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API client credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

// Configured reports whether both client credentials are present.
func (c SpotifyConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// CatalogConfig contains catalog search settings.
type CatalogConfig struct {
	BaseURL  string `toml:"base_url"`
	TokenURL string `toml:"token_url"`
	Market   string `toml:"market"`
	PageSize int    `toml:"page_size"`
}

// ChartConfig contains chart site fetching settings.
type ChartConfig struct {
	BaseURL           string   `toml:"base_url"`
	RequestsPerSecond float64  `toml:"requests_per_second"`
	HeadersPath       string   `toml:"headers_path"`
	UserAgents        []string `toml:"user_agents"`
}

// HarvestConfig contains harvest loop settings.
type HarvestConfig struct {
	Genres       []string `toml:"genres"`
	DelaySeconds int      `toml:"delay_seconds"`
	WindowSize   int      `toml:"window_size"`
	OutputDir    string   `toml:"output_dir"`
}

// Delay returns the pause between chart requests.
func (h HarvestConfig) Delay() time.Duration {
	return time.Duration(h.DelaySeconds) * time.Second
}

// ValidGenre reports whether genre is one of the configured genres (case-insensitive).
func (h HarvestConfig) ValidGenre(genre string) bool {
	return slices.Contains(h.Genres, strings.ToLower(strings.TrimSpace(genre)))
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// Validate checks values that would otherwise fail deep inside a harvest.
func (c *Config) Validate() error {
	switch {
	case c.Harvest.DelaySeconds < 0:
		return fmt.Errorf("%w: harvest.delay_seconds must not be negative", ErrInvalidConfig)
	case c.Harvest.WindowSize < 1:
		return fmt.Errorf("%w: harvest.window_size must be positive", ErrInvalidConfig)
	case c.Catalog.PageSize < 1 || c.Catalog.PageSize > 50:
		return fmt.Errorf("%w: catalog.page_size must be between 1 and 50", ErrInvalidConfig)
	case c.Chart.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: chart.requests_per_second must be positive", ErrInvalidConfig)
	case c.Database.Path == "":
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
