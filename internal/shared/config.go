package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API         APIConfig         `toml:"api"`
	Download    DownloadConfig    `toml:"download"`
	Database    DatabaseConfig    `toml:"database"`
	Credentials CredentialsConfig `toml:"credentials"`
	Server      ServerConfig      `toml:"server"`
}

// APIConfig contains catalog API settings.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	RateLimit      int    `toml:"rate_limit"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DownloadConfig contains audio download settings.
type DownloadConfig struct {
	Dir     string `toml:"dir"`
	Quality string `toml:"quality"`
}

// DatabaseConfig contains library database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// CredentialsConfig contains per-provider sign-in credentials.
type CredentialsConfig struct {
	Google ProviderConfig `toml:"google"`
	GitHub ProviderConfig `toml:"github"`
}

// ProviderConfig contains OAuth2 credentials for one sign-in provider.
type ProviderConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// ServerConfig contains settings for the local OAuth callback server.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LoadConfig reads and parses a TOML configuration file from the specified
// path, then applies environment overrides (a .env file is honored when
// present).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.applyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, ErrInvalidConfig)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overrides config values from the environment. Secrets usually
// arrive this way rather than through config.toml.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	setFromEnv(&c.API.BaseURL, "INFINITUNES_API_URL")
	setFromEnv(&c.Download.Dir, "INFINITUNES_DOWNLOAD_DIR")
	setFromEnv(&c.Database.Path, "INFINITUNES_DB_PATH")
	setFromEnv(&c.Credentials.Google.ClientID, "GOOGLE_CLIENT_ID")
	setFromEnv(&c.Credentials.Google.ClientSecret, "GOOGLE_CLIENT_SECRET")
	setFromEnv(&c.Credentials.GitHub.ClientID, "GITHUB_CLIENT_ID")
	setFromEnv(&c.Credentials.GitHub.ClientSecret, "GITHUB_CLIENT_SECRET")
}

func setFromEnv(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
