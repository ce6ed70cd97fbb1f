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
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Share    ShareConfig    `toml:"share"`
	Metadata MetadataConfig `toml:"metadata"`
	Insight  InsightConfig  `toml:"insight"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ShareConfig controls how share links are rendered.
type ShareConfig struct {
	// BaseURL is the address of the hosted voting page that share links point at.
	BaseURL string `toml:"base_url"`
	// EscapeTokens percent-encodes tokens placed in query strings. The hosted
	// page historically emitted raw base64; decoding accepts both forms.
	EscapeTokens bool `toml:"escape_tokens"`
}

// MetadataConfig contains settings for the oEmbed metadata lookup.
type MetadataConfig struct {
	Endpoint   string  `toml:"endpoint"`
	RateLimit  float64 `toml:"rate_limit"`
	DebounceMS int     `toml:"debounce_ms"`
}

// InsightConfig contains settings for the setlist insight assistant.
type InsightConfig struct {
	Endpoint string `toml:"endpoint"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
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
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
