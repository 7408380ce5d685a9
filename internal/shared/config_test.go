package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://www.jiosaavn.com/api.php" {
			t.Errorf("unexpected API base URL: %s", config.API.BaseURL)
		}

		if config.Database.Path != "./infinitunes.db" {
			t.Errorf("expected database path ./infinitunes.db, got %s", config.Database.Path)
		}

		if config.Download.Quality != "high" {
			t.Errorf("expected default quality high, got %s", config.Download.Quality)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Credentials.Google.ClientID != "your_google_client_id" {
			t.Errorf("unexpected google client_id: %s", config.Credentials.Google.ClientID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Download.Dir != DefaultConfig().Download.Dir {
			t.Errorf("created config download dir doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("INFINITUNES_API_URL", "http://localhost:9999/api.php")
		t.Setenv("GOOGLE_CLIENT_ID", "env_client_id")

		config := DefaultConfig()

		if config.API.BaseURL != "http://localhost:9999/api.php" {
			t.Errorf("API base URL should come from environment, got %s", config.API.BaseURL)
		}
		if config.Credentials.Google.ClientID != "env_client_id" {
			t.Errorf("google client_id should come from environment, got %s", config.Credentials.Google.ClientID)
		}
	})
}
