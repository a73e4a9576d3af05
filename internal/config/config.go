package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up in the working directory
const ConfigFileName = ".pgbox.yaml"

// Config holds all configuration for pgbox.
// It is immutable after creation via Load().
type Config struct {
	// Image identifies the postgres image to build and run
	Image ImageConfig `yaml:"image"`

	// Runtime controls the container runtime client and bootstrap timing
	Runtime RuntimeConfig `yaml:"runtime"`

	// Database holds the dev connection coordinates
	Database DatabaseConfig `yaml:"database"`

	// SQL points at optional override files for the init and seed payloads
	SQL SQLConfig `yaml:"sql"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// ImageConfig identifies the target image and its build context.
type ImageConfig struct {
	// Name is the image name without tag
	Name string `yaml:"name"`

	// Tag is the image tag; existence checks match on name:tag
	Tag string `yaml:"tag"`

	// BuildContext is the directory passed to the image build.
	// Relative paths are resolved from the config directory.
	BuildContext string `yaml:"build_context"`
}

// RuntimeConfig controls the container runtime client and bootstrap timing.
type RuntimeConfig struct {
	// Binary is the runtime CLI ("docker" or "podman"); empty auto-detects
	Binary string `yaml:"binary"`

	// SettleDelay is the wait between a fresh launch and the first
	// connect attempt
	SettleDelay string `yaml:"settle_delay"`

	// ConnectAttempts bounds connect retries after the settle delay
	ConnectAttempts int `yaml:"connect_attempts"`

	// ConnectBackoff is the pause between connect attempts
	ConnectBackoff string `yaml:"connect_backoff"`
}

// DatabaseConfig holds the development database coordinates. The defaults
// are deliberate dev-only literals, not secrets.
type DatabaseConfig struct {
	// Host is where the published port is reachable
	Host string `yaml:"host"`

	// Port is published on the host and used for connections
	Port int `yaml:"port"`

	// ContainerPort is the postgres port inside the container
	ContainerPort int `yaml:"container_port"`

	// Name is the database name
	Name string `yaml:"name"`

	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// SQLConfig points at optional files overriding the embedded SQL payloads.
type SQLConfig struct {
	// InitFile overrides the embedded init SQL when set.
	// Relative paths are resolved from the config directory.
	InitFile string `yaml:"init_file,omitempty"`

	// SeedFile overrides the embedded seed SQL when set
	SeedFile string `yaml:"seed_file,omitempty"`
}

// SettleDelayDuration parses the settle delay as a Duration.
func (c *Config) SettleDelayDuration() (time.Duration, error) {
	return time.ParseDuration(c.Runtime.SettleDelay)
}

// ConnectBackoffDuration parses the connect backoff as a Duration.
func (c *Config) ConnectBackoffDuration() (time.Duration, error) {
	return time.ParseDuration(c.Runtime.ConnectBackoff)
}

// DSN returns the postgres connection string for the dev database.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Load loads configuration from dir.
// It applies defaults, then file values, then environment overrides,
// then validates.
//
// Parameters:
//   - dir: directory searched for .pgbox.yaml
//
// Returns the validated Config or an error if validation fails.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()

	// Try to load config file (optional)
	configPath := filepath.Join(dir, ConfigFileName)
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	// Note: missing config file is not an error (use defaults)

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Resolve relative paths
	if !filepath.IsAbs(cfg.Image.BuildContext) {
		cfg.Image.BuildContext = filepath.Join(dir, cfg.Image.BuildContext)
	}
	if cfg.SQL.InitFile != "" && !filepath.IsAbs(cfg.SQL.InitFile) {
		cfg.SQL.InitFile = filepath.Join(dir, cfg.SQL.InitFile)
	}
	if cfg.SQL.SeedFile != "" && !filepath.IsAbs(cfg.SQL.SeedFile) {
		cfg.SQL.SeedFile = filepath.Join(dir, cfg.SQL.SeedFile)
	}

	// Validate
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
