package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Host           string `mapstructure:"HOST"`
	Port           int    `mapstructure:"PORT"`
	StorageType    string `mapstructure:"STORAGE_TYPE"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	StaticDir      string `mapstructure:"STATIC_DIR"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	GinMode        string `mapstructure:"GIN_MODE"`
}

var defaults = map[string]any{
	"HOST":            "",
	"PORT":            8080,
	"STORAGE_TYPE":    "memory",
	"DATABASE_URL":    "",
	"REDIS_URL":       "",
	"ALLOWED_ORIGINS": "*",
	"STATIC_DIR":      "",
	"LOG_LEVEL":       "info",
	"GIN_MODE":        "release",
}

// LoadConfig loads the configuration from a .env file in dir and environment
// variables. Environment variables win over the file; a missing file is not an error.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	// Every key needs a default so that Unmarshal sees its environment variable.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading .env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	switch cfg.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q: must be debug, release or test", cfg.GinMode)
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Origins returns the CORS origins as a list.
func (c *Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Level parses LOG_LEVEL, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
