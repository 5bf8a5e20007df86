// Package config loads chronicler settings from defaults, an optional YAML
// file and CHRONICLER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/talgya/chronicler/internal/causal"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "CHRONICLER"

// Config holds all runtime settings.
type Config struct {
	DBPath            string        `mapstructure:"db_path" yaml:"db_path"`
	Port              string        `mapstructure:"port" yaml:"port"`
	AdminKey          string        `mapstructure:"admin_key" yaml:"admin_key"`
	TrustProxy        bool          `mapstructure:"trust_proxy" yaml:"trust_proxy"`
	MaxYearsApart     int           `mapstructure:"max_years_apart" yaml:"max_years_apart"`
	Workers           int           `mapstructure:"workers" yaml:"workers"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	LogFormat         string        `mapstructure:"log_format" yaml:"log_format"`
	DemoSeed          int64         `mapstructure:"demo_seed" yaml:"demo_seed"`
	DemoCivilizations int           `mapstructure:"demo_civilizations" yaml:"demo_civilizations"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:            "data/chronicler.db",
		Port:              "8080",
		MaxYearsApart:     causal.DefaultMaxYearsApart,
		CacheTTL:          10 * time.Minute,
		LogLevel:          "info",
		LogFormat:         "auto",
		DemoSeed:          42,
		DemoCivilizations: 3,
	}
}

// Load resolves the configuration held by v. Defaults are registered on v
// first so that every key can be overridden from the environment.
func Load(v *viper.Viper) (Config, error) {
	def := Default()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("port", def.Port)
	v.SetDefault("admin_key", def.AdminKey)
	v.SetDefault("trust_proxy", def.TrustProxy)
	v.SetDefault("max_years_apart", def.MaxYearsApart)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("cache_ttl", def.CacheTTL)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("demo_seed", def.DemoSeed)
	v.SetDefault("demo_civilizations", def.DemoCivilizations)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("port %q is not a valid TCP port", c.Port))
	}
	if c.MaxYearsApart < 0 {
		errs = append(errs, fmt.Errorf("max_years_apart must be >= 0, got %d", c.MaxYearsApart))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must be >= 0, got %d", c.Workers))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must be >= 0, got %s", c.CacheTTL))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format %q must be auto, text or json", c.LogFormat))
	}
	if c.DemoCivilizations < 1 {
		errs = append(errs, fmt.Errorf("demo_civilizations must be >= 1, got %d", c.DemoCivilizations))
	}
	return errors.Join(errs...)
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return l, nil
}
