package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
// Secrets may be overridden through environment variables, see [Config.ApplyEnv].
type Config struct {
	LastFM  LastFMConfig  `toml:"lastfm"`
	YouTube YouTubeConfig `toml:"youtube"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
}

// LastFMConfig contains scrobble provider credentials and endpoint settings.
type LastFMConfig struct {
	APIKey   string `toml:"api_key"`
	Username string `toml:"username"`
	BaseURL  string `toml:"base_url"`
}

// YouTubeConfig contains video provider credentials.
type YouTubeConfig struct {
	APIKey string `toml:"api_key"`
}

// CacheConfig contains response cache store settings.
type CacheConfig struct {
	RedisURL string `toml:"redis_url"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Workers int    `toml:"workers"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
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
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overlays environment variables onto the configuration.
// Environment values always win over file values.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LASTFM_API_KEY"); v != "" {
		c.LastFM.APIKey = v
	}
	if v := os.Getenv("LASTFM_USERNAME"); v != "" {
		c.LastFM.Username = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		c.LastFM.BaseURL = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTube.APIKey = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
}

// Validate checks that the credentials required to reach the upstream providers are present.
func (c *Config) Validate() error {
	if c.LastFM.APIKey == "" {
		return fmt.Errorf("%w: lastfm api_key", ErrMissingCredentials)
	}
	if c.LastFM.Username == "" {
		return fmt.Errorf("%w: lastfm username", ErrMissingCredentials)
	}
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("%w: youtube api_key", ErrMissingCredentials)
	}
	return nil
}
