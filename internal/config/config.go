package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/viaduct-dev/viaduct/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "viaduct.json"

	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// EnvDevelopment enables full error detail in responses.
	EnvDevelopment = "development"

	// EnvProduction masks server faults behind a generic message.
	EnvProduction = "production"
)

// Config represents the complete viaduct.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// Environment selects error reporting detail: "development" or
	// "production".
	Environment string `json:"environment,omitempty"`

	// Server contains HTTP server configuration.
	Server ServerConfig `json:"server,omitempty"`

	// Metrics contains Prometheus exposure configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Uploads contains upload storage configuration.
	Uploads UploadsConfig `json:"uploads,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// ReadTimeoutSeconds bounds how long a request read may take.
	ReadTimeoutSeconds int `json:"readTimeoutSeconds,omitempty"`

	// WriteTimeoutSeconds bounds how long a response write may take.
	WriteTimeoutSeconds int `json:"writeTimeoutSeconds,omitempty"`
}

// MetricsConfig contains Prometheus exposure settings.
type MetricsConfig struct {
	// Enabled controls whether /metrics is served.
	Enabled bool `json:"enabled,omitempty"`

	// Path is the metrics endpoint path (default "/metrics").
	Path string `json:"path,omitempty"`

	// Namespace is the metrics namespace (default "viaduct").
	Namespace string `json:"namespace,omitempty"`
}

// UploadsConfig contains upload storage settings.
type UploadsConfig struct {
	// Dir is the directory for temporary upload files.
	Dir string `json:"dir,omitempty"`

	// MaxSizeBytes is the maximum upload size (default 10MB).
	MaxSizeBytes int64 `json:"maxSizeBytes,omitempty"`

	// S3Bucket switches storage to S3 when set.
	S3Bucket string `json:"s3Bucket,omitempty"`

	// S3Prefix is the key prefix for S3 uploads.
	S3Prefix string `json:"s3Prefix,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Version:     "0.1.0",
		Environment: EnvProduction,
		Server: ServerConfig{
			Port: DefaultPort,
			Host: DefaultHost,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      "/metrics",
			Namespace: "viaduct",
		},
		Uploads: UploadsConfig{
			Dir:          "uploads",
			MaxSizeBytes: 10 << 20,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for viaduct.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
// Environment variables override file values after parsing.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No viaduct.json found in " + filepath.Dir(path)).
				WithSuggestion("Create viaduct.json or run from the project directory")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse viaduct.json: " + err.Error()).
			WithSuggestion("Check that viaduct.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied. Used when no viaduct.json exists.
func FromEnv() *Config {
	cfg := New()
	cfg.applyEnv()
	return cfg
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E101").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E101").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// IsDevelopment reports whether full error detail is enabled.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// Addr returns the host:port the server should bind.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = EnvProduction
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "viaduct"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}
	if c.Uploads.MaxSizeBytes == 0 {
		c.Uploads.MaxSizeBytes = 10 << 20
	}
}

// applyEnv overrides file values with environment variables.
func (c *Config) applyEnv() {
	if env := os.Getenv("APP_ENV"); env != "" {
		c.Environment = env
	}
	if port := os.Getenv("VIADUCT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("VIADUCT_HOST"); host != "" {
		c.Server.Host = host
	}
}

// validate rejects values the server cannot run with.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail("Port must be between 1 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		return errors.New("E102").
			WithDetail("Environment must be \"development\" or \"production\", got " + strconv.Quote(c.Environment)).
			WithSuggestion("Set environment in viaduct.json or via APP_ENV")
	}
	return nil
}
