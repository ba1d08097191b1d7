package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./chordex.db" {
			t.Errorf("expected database path ./chordex.db, got %s", config.Database.Path)
		}

		if config.Harvest.WindowSize != 4 {
			t.Errorf("expected window size 4, got %d", config.Harvest.WindowSize)
		}

		if config.Catalog.PageSize != 50 {
			t.Errorf("expected page size 50, got %d", config.Catalog.PageSize)
		}

		if config.Chart.BaseURL != "https://www.ultimate-guitar.com" {
			t.Errorf("unexpected chart base URL %s", config.Chart.BaseURL)
		}

		if len(config.Chart.UserAgents) == 0 {
			t.Error("expected default user agents")
		}

		if config.Credentials.Spotify.ClientID != "your_spotify_client_id" {
			t.Errorf("expected spotify client_id your_spotify_client_id, got %s", config.Credentials.Spotify.ClientID)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[harvest]
genres = ["shoegaze"]
delay_seconds = 2
window_size = 3

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Harvest.WindowSize != 3 {
			t.Errorf("expected window size 3, got %d", config.Harvest.WindowSize)
		}

		if config.Harvest.Delay() != 2*time.Second {
			t.Errorf("expected delay 2s, got %v", config.Harvest.Delay())
		}

		if !config.Harvest.ValidGenre("Shoegaze") || config.Harvest.ValidGenre("pop") {
			t.Errorf("genre list not replaced: %v", config.Harvest.Genres)
		}

		if config.Catalog.Market != "US" {
			t.Errorf("expected unset keys to keep defaults, got market %q", config.Catalog.Market)
		}

		if !config.Credentials.Spotify.Configured() {
			t.Error("expected spotify credentials to be configured")
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Credentials.Spotify.ClientID != "saved_id" {
			t.Errorf("expected saved_id, got %s", loaded.Credentials.Spotify.ClientID)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name   string
			mutate func(*Config)
		}{
			{"negative delay", func(c *Config) { c.Harvest.DelaySeconds = -1 }},
			{"zero window", func(c *Config) { c.Harvest.WindowSize = 0 }},
			{"page too large", func(c *Config) { c.Catalog.PageSize = 51 }},
			{"zero rate", func(c *Config) { c.Chart.RequestsPerSecond = 0 }},
			{"no database", func(c *Config) { c.Database.Path = "" }},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				tc.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
