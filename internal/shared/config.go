package shared

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// HostedDomain is the domain suffix used when the API host is a bare service name.
const HostedDomain = "onrender.com"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Web      WebConfig      `toml:"web"`
	Upload   UploadConfig   `toml:"upload"`
}

// APIConfig describes how to reach the backend the forms submit to.
type APIConfig struct {
	Host           string `toml:"host"`
	DefaultBaseURL string `toml:"default_base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains settings for the development backend.
type ServerConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	UploadDir      string   `toml:"upload_dir"`
	MaxUploadBytes int64    `toml:"max_upload_bytes"`
	MinImageSide   int      `toml:"min_image_side"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// WebConfig contains settings for the server-rendered form pages.
type WebConfig struct {
	Port int `toml:"port"`
}

// UploadConfig controls the CLI's multi-file upload pacing.
type UploadConfig struct {
	RatePerSecond float64 `toml:"rate_per_second"`
}

// EnvConfig holds values read from the process environment.
type EnvConfig struct {
	APIHost string `env:"SNAPUP_API_HOST"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
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

// ExampleConfig returns the embedded example configuration file contents.
func ExampleConfig() []byte {
	return exampleConf
}

// ApplyEnv overlays environment variables onto c.
//
// SNAPUP_API_HOST replaces [APIConfig.Host] when set.
func (c *Config) ApplyEnv() error {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	if e.APIHost != "" {
		c.API.Host = e.APIHost
	}
	return nil
}

// BaseURL returns the backend base URL derived from [APIConfig.Host].
func (c *Config) BaseURL() string {
	return BaseURL(c.API.Host, c.API.DefaultBaseURL)
}

// Timeout returns the HTTP client timeout. Zero means no timeout.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Addr returns the development backend's listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BaseURL derives the API base URL from a host value.
//
// A host starting with "http" is a full URL and is returned as-is (minus a trailing slash).
// Any other non-empty value names a hosted service: https://{host}.onrender.com.
// An empty host yields fallback.
func BaseURL(host, fallback string) string {
	host = strings.TrimSpace(host)
	if host == "" {
		return strings.TrimRight(fallback, "/")
	}
	if strings.HasPrefix(host, "http") {
		return strings.TrimRight(host, "/")
	}
	return fmt.Sprintf("https://%s.%s", host, HostedDomain)
}
