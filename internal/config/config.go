package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
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
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"data/reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// AnalysisConfig contains the analysis engine's tunable inputs.
// Defaults mirror the promotional program this tool was built around.
type AnalysisConfig struct {
	FreePromoCode   string `yaml:"free_promo_code" envconfig:"FREE_PROMO_CODE" default:"free"`
	CancelSentinel  string `yaml:"cancel_sentinel" envconfig:"CANCEL_SENTINEL" default:"Cancel"`
	FreeTrialCutoff string `yaml:"free_trial_cutoff" envconfig:"FREE_TRIAL_CUTOFF" default:"2025-08-06"`
	MaxRows         int    `yaml:"max_rows" envconfig:"MAX_ROWS" default:"250000"`
}

// Load loads configuration in layers: struct defaults first, then the
// optional YAML file, then explicitly-set environment variables.
func Load() (*Config, error) {
	// Processing under a prefix no deployment uses applies only the
	// default tags; comparing against a real pass tells us which
	// variables were actually set in the environment.
	var defaults Config
	if err := envconfig.Process("MEMBERPULSE_DEFAULTS_ONLY", &defaults); err != nil {
		return nil, fmt.Errorf("failed to load config defaults: %w", err)
	}

	var env Config
	if err := envconfig.Process("MEMBERPULSE", &env); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg := defaults

	// The file overrides defaults; fields it leaves unset keep them.
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := mergeFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	applyEnvOverrides(&cfg, defaults, env)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// mergeFromFile unmarshals the YAML file over cfg, so only the fields the
// file sets change.
func mergeFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides copies a field from env wherever it differs from the
// processed defaults, which means the variable was set in the environment.
// Environment variables win over the file; an env var set to exactly its
// default value is indistinguishable from unset and does not override.
func applyEnvOverrides(cfg *Config, defaults, env Config) {
	if env.Server.Port != defaults.Server.Port {
		cfg.Server.Port = env.Server.Port
	}
	if env.Server.ReadTimeout != defaults.Server.ReadTimeout {
		cfg.Server.ReadTimeout = env.Server.ReadTimeout
	}
	if env.Server.WriteTimeout != defaults.Server.WriteTimeout {
		cfg.Server.WriteTimeout = env.Server.WriteTimeout
	}
	if env.Server.IdleTimeout != defaults.Server.IdleTimeout {
		cfg.Server.IdleTimeout = env.Server.IdleTimeout
	}
	if env.Server.ShutdownTimeout != defaults.Server.ShutdownTimeout {
		cfg.Server.ShutdownTimeout = env.Server.ShutdownTimeout
	}
	if env.Server.RateLimit.Enabled != defaults.Server.RateLimit.Enabled {
		cfg.Server.RateLimit.Enabled = env.Server.RateLimit.Enabled
	}
	if env.Server.RateLimit.RPS != defaults.Server.RateLimit.RPS {
		cfg.Server.RateLimit.RPS = env.Server.RateLimit.RPS
	}
	if env.Server.RateLimit.Burst != defaults.Server.RateLimit.Burst {
		cfg.Server.RateLimit.Burst = env.Server.RateLimit.Burst
	}
	if env.Logging.Level != defaults.Logging.Level {
		cfg.Logging.Level = env.Logging.Level
	}
	if env.Logging.Output != defaults.Logging.Output {
		cfg.Logging.Output = env.Logging.Output
	}
	if env.Logging.FilePath != defaults.Logging.FilePath {
		cfg.Logging.FilePath = env.Logging.FilePath
	}
	if env.Paths.DataDir != defaults.Paths.DataDir {
		cfg.Paths.DataDir = env.Paths.DataDir
	}
	if env.Paths.ReportsDir != defaults.Paths.ReportsDir {
		cfg.Paths.ReportsDir = env.Paths.ReportsDir
	}
	if env.Paths.LogsDir != defaults.Paths.LogsDir {
		cfg.Paths.LogsDir = env.Paths.LogsDir
	}
	if env.Analysis.FreePromoCode != defaults.Analysis.FreePromoCode {
		cfg.Analysis.FreePromoCode = env.Analysis.FreePromoCode
	}
	if env.Analysis.CancelSentinel != defaults.Analysis.CancelSentinel {
		cfg.Analysis.CancelSentinel = env.Analysis.CancelSentinel
	}
	if env.Analysis.FreeTrialCutoff != defaults.Analysis.FreeTrialCutoff {
		cfg.Analysis.FreeTrialCutoff = env.Analysis.FreeTrialCutoff
	}
	if env.Analysis.MaxRows != defaults.Analysis.MaxRows {
		cfg.Analysis.MaxRows = env.Analysis.MaxRows
	}
}

// getConfigFilePath returns the path of the optional YAML config file.
// MEMBERPULSE_CONFIG overrides the default config.yaml next to the binary.
func getConfigFilePath() string {
	if path := os.Getenv("MEMBERPULSE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Analysis.FreePromoCode == "" {
		return fmt.Errorf("analysis free_promo_code must not be empty")
	}
	if c.Analysis.CancelSentinel == "" {
		return fmt.Errorf("analysis cancel_sentinel must not be empty")
	}
	if _, err := time.Parse(ISODateLayout, c.Analysis.FreeTrialCutoff); err != nil {
		return fmt.Errorf("invalid analysis free_trial_cutoff %q: %w", c.Analysis.FreeTrialCutoff, err)
	}
	if c.Analysis.MaxRows < 1 {
		return fmt.Errorf("analysis max_rows must be positive, got %d", c.Analysis.MaxRows)
	}

	return nil
}

// CutoffDate returns the parsed free-trial cutoff date (UTC, midnight).
func (c *Config) CutoffDate() time.Time {
	t, _ := time.Parse(ISODateLayout, c.Analysis.FreeTrialCutoff)
	return t
}

// EnsureDirectories creates the data, reports and logs directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.ReportsDir, c.Paths.LogsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ReportPath returns the path of a report file inside the reports directory.
func (c *Config) ReportPath(name string) string {
	return filepath.Join(c.Paths.ReportsDir, name)
}
