package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Datastore DatastoreConfig `yaml:"datastore" envconfig:"DATASTORE"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Export    ExportConfig    `yaml:"export" envconfig:"EXPORT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// DatastoreConfig contains the open-data datastore client configuration.
// The trailing window bounds how many months of transactions one refresh
// pulls; pacing and retry settings protect the upstream API.
type DatastoreConfig struct {
	BaseURL           string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://data.gov.sg/api/action/datastore_search"`
	ResourceID        string        `yaml:"resource_id" envconfig:"RESOURCE_ID" default:"f1765b54-a209-4718-8d38-a39237f502b3"`
	WindowMonths      int           `yaml:"window_months" envconfig:"WINDOW_MONTHS" default:"12"`
	PageSize          int           `yaml:"page_size" envconfig:"PAGE_SIZE" default:"1000"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" default:"4"`
	Burst             int           `yaml:"burst" envconfig:"BURST" default:"2"`
	MaxRetries        int           `yaml:"max_retries" envconfig:"MAX_RETRIES" default:"3"`
	RetryBackoff      time.Duration `yaml:"retry_backoff" envconfig:"RETRY_BACKOFF" default:"500ms"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"15s"`
	MaxConcurrent     int           `yaml:"max_concurrent" envconfig:"MAX_CONCURRENT" default:"4"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// ExportConfig contains report export configuration
type ExportConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("RESALE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Server.ReadTimeout == 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if envConfig.Datastore.BaseURL == "" {
		envConfig.Datastore.BaseURL = fileConfig.Datastore.BaseURL
	}
	if envConfig.Datastore.ResourceID == "" {
		envConfig.Datastore.ResourceID = fileConfig.Datastore.ResourceID
	}
	if envConfig.Datastore.WindowMonths == 0 {
		envConfig.Datastore.WindowMonths = fileConfig.Datastore.WindowMonths
	}
	if envConfig.Export.OutputDir == "" {
		envConfig.Export.OutputDir = fileConfig.Export.OutputDir
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Datastore.BaseURL == "" {
		return fmt.Errorf("datastore base URL must be set")
	}

	if c.Datastore.ResourceID == "" {
		return fmt.Errorf("datastore resource ID must be set")
	}

	if c.Datastore.WindowMonths <= 0 {
		return fmt.Errorf("datastore window must cover at least one month")
	}

	if c.Datastore.PageSize <= 0 {
		return fmt.Errorf("datastore page size must be positive")
	}

	if c.Datastore.MaxConcurrent <= 0 {
		return fmt.Errorf("datastore concurrency must be positive")
	}

	if len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/app.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Datastore: DatastoreConfig{
			BaseURL:           "https://data.gov.sg/api/action/datastore_search",
			ResourceID:        "f1765b54-a209-4718-8d38-a39237f502b3",
			WindowMonths:      12,
			PageSize:          1000,
			RequestsPerSecond: 4,
			Burst:             2,
			MaxRetries:        3,
			RetryBackoff:      500 * time.Millisecond,
			Timeout:           15 * time.Second,
			MaxConcurrent:     4,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/app.log",
		},
		Export: ExportConfig{
			OutputDir: "reports",
		},
	}
}
