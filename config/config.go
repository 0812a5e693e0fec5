// Package config loads the subnav configuration file.
//
// Every setting has a default, so the file is optional and may name only the
// values it changes:
//
//	server:
//	  addr: ":8080"
//	store:
//	  driver: badger        # or sqlite
//	  path: ./data/subnav
//	  in_memory: false
//	ai:
//	  host: https://generativelanguage.googleapis.com/v1beta/openai
//	  model: gemini-2.5-flash
//	  request_timeout: 2m
//	pipeline:
//	  fail_fast: false
//	  max_attempts: 1
//	  retry_delay: 2s
//	  run_timeout: 0s
//	source:
//	  file: ""              # empty uses the built-in mock listings
//	logging:
//	  level: info
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/subnav"
	"github.com/poiesic/subnav/ai"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrServerAddrRequired = errors.New("server.addr is required")
	ErrInvalidDriver      = errors.New("store.driver must be 'badger' or 'sqlite'")
	ErrStorePathRequired  = errors.New("store.path is required unless store.in_memory is set")
	ErrInvalidMaxAttempts = errors.New("pipeline.max_attempts must be at least 1")
	ErrInvalidRetryDelay  = errors.New("pipeline.retry_delay must be non-negative")
	ErrInvalidRunTimeout  = errors.New("pipeline.run_timeout must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidAI          = errors.New("invalid ai section")
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	AI       AIConfig       `yaml:"ai"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Source   SourceConfig   `yaml:"source"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig selects and locates the document store.
type StoreConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// AIConfig mirrors ai.Config.
type AIConfig struct {
	Host                  string        `yaml:"host"`
	APIKey                string        `yaml:"api_key"`
	Model                 string        `yaml:"model"`
	ClientTemperature     float64       `yaml:"client_temperature"`
	AccountantTemperature float64       `yaml:"accountant_temperature"`
	TaggingTemperature    float64       `yaml:"tagging_temperature"`
	RequestTimeout        time.Duration `yaml:"request_timeout"`
}

// PipelineConfig tunes ingestion runs.
type PipelineConfig struct {
	FailFast    bool          `yaml:"fail_fast"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	RunTimeout  time.Duration `yaml:"run_timeout"`
}

// SourceConfig selects the record source.
type SourceConfig struct {
	File string `yaml:"file"`
}

// LoggingConfig sets the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	aiDefaults := ai.DefaultConfig()
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Driver: string(subnav.DriverBadger),
			Path:   "./data/subnav",
		},
		AI: AIConfig{
			Host:                  aiDefaults.Host,
			APIKey:                aiDefaults.APIKey,
			Model:                 aiDefaults.Model,
			ClientTemperature:     aiDefaults.ClientTemperature,
			AccountantTemperature: aiDefaults.AccountantTemperature,
			TaggingTemperature:    aiDefaults.TaggingTemperature,
			RequestTimeout:        aiDefaults.RequestTimeout,
		},
		Pipeline: PipelineConfig{
			MaxAttempts: 1,
			RetryDelay:  2 * time.Second,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
// An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further
// overrides before calling Validate themselves.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, ErrServerAddrRequired)
	}
	if !subnav.Driver(c.Store.Driver).Valid() {
		errs = append(errs, ErrInvalidDriver)
	}
	if !c.Store.InMemory && strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, ErrStorePathRequired)
	}
	if c.Pipeline.MaxAttempts < 1 {
		errs = append(errs, ErrInvalidMaxAttempts)
	}
	if c.Pipeline.RetryDelay < 0 {
		errs = append(errs, ErrInvalidRetryDelay)
	}
	if c.Pipeline.RunTimeout < 0 {
		errs = append(errs, ErrInvalidRunTimeout)
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := c.ToAIConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidAI, err))
	}
	return errors.Join(errs...)
}

// ToAIConfig converts the ai section into an ai.Config.
func (c *Config) ToAIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.AI.Host),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithModel(c.AI.Model),
		ai.WithTemperatures(c.AI.ClientTemperature, c.AI.AccountantTemperature, c.AI.TaggingTemperature),
		ai.WithRequestTimeout(c.AI.RequestTimeout),
	)
}

// DatabaseOptions returns the options that open the configured store.
func (c *Config) DatabaseOptions() []subnav.DatabaseOption {
	return []subnav.DatabaseOption{
		subnav.WithDriver(subnav.Driver(c.Store.Driver)),
		subnav.WithPath(c.Store.Path),
		subnav.WithInMemory(c.Store.InMemory),
		subnav.WithAIConfig(c.ToAIConfig()),
	}
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}
