package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the configuration file name, without extension.
const FileName = "propls"

// EnvPrefix prefixes environment overrides, e.g. PROPLS_LOG_LEVEL.
const EnvPrefix = "PROPLS"

// Config represents the propls configuration
type Config struct {
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Rules      RulesConfig      `mapstructure:"rules"`
	Log        LogConfig        `mapstructure:"log"`
	Completion CompletionConfig `mapstructure:"completion"`
}

// CatalogConfig lists the catalog files and how they are cached
type CatalogConfig struct {
	Paths    []string      `mapstructure:"paths"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Watch    bool          `mapstructure:"watch"`
}

// RulesConfig points at an optional values rules file
type RulesConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CompletionConfig represents completion configuration
type CompletionConfig struct {
	Snippets bool `mapstructure:"snippets"`
}

// Load loads the configuration from propls.yml in the working directory
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom loads the configuration from propls.yml or propls.yaml in dir.
// Relative file paths in the configuration are resolved against dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("catalog.paths", []string{})
	v.SetDefault("catalog.cache_ttl", 10*time.Minute)
	v.SetDefault("catalog.watch", true)
	v.SetDefault("rules.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("completion.snippets", true)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	config.resolvePaths(dir)
	return &config, nil
}

// FindRoot walks up from the working directory to the first directory holding
// a configuration file. It returns the working directory when none is found.
func FindRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		for _, ext := range []string{".yml", ".yaml"} {
			if _, err := os.Stat(filepath.Join(dir, FileName+ext)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

// Logger builds a development logger writing to stderr at the configured
// level.
func (c *Config) Logger() (*zap.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Catalog.Paths {
		c.Catalog.Paths[i] = resolve(dir, p)
	}
	if c.Rules.Path != "" {
		c.Rules.Path = resolve(dir, c.Rules.Path)
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log.level must be one of debug, info, warn, error, got: %s", s)
	}
	return level, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Catalog.CacheTTL < 0 {
		return fmt.Errorf("catalog.cache_ttl must not be negative, got: %s", cfg.Catalog.CacheTTL)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return err
	}
	for _, p := range cfg.Catalog.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("catalog.paths must not contain empty paths")
		}
	}
	return nil
}
