package gateway

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Config is the YAML-backed configuration of the gateway process.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// Log configures the process logger.
	Log LogConfig `yaml:"log"`

	// Storage selects and configures the storage backend.
	Storage StorageConfig `yaml:"storage"`
}

// LogConfig mirrors logger.Config for the YAML file.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig selects the backend driver and carries its settings. Only
// the section matching Driver is read.
type StorageConfig struct {
	// Driver is one of "swift", "s3" or "memory".
	Driver string `yaml:"driver"`

	Swift SwiftConfig `yaml:"swift"`
	S3    S3Config    `yaml:"s3"`
}

// SwiftConfig holds the OpenStack Swift connection settings.
type SwiftConfig struct {
	AuthURL        string   `yaml:"auth_url"`
	Username       string   `yaml:"username"`
	APIKey         string   `yaml:"api_key"`
	Domain         string   `yaml:"domain"`
	Tenant         string   `yaml:"tenant"`
	Region         string   `yaml:"region"`
	Container      string   `yaml:"container"`
	Prefix         string   `yaml:"prefix"`
	TempURLKey     string   `yaml:"temp_url_key"`
	ConnectTimeout Duration `yaml:"connect_timeout"`
	Timeout        Duration `yaml:"timeout"`
}

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "1m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// S3Config holds the MinIO / S3 connection settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

// DefaultConfig returns the config used when no file is given: an
// in-memory backend on the default port.
func DefaultConfig() *Config {
	return &Config{
		Listen: ":8080",
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver: "memory",
		},
	}
}

// LoadConfig reads and validates a YAML config file. Unset fields keep
// their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "swift":
		if c.Storage.Swift.AuthURL == "" {
			return fmt.Errorf("storage.swift.auth_url is required")
		}
		if c.Storage.Swift.Container == "" {
			return fmt.Errorf("storage.swift.container is required")
		}
	case "s3":
		if c.Storage.S3.Endpoint == "" {
			return fmt.Errorf("storage.s3.endpoint is required")
		}
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}
