package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "memory", cfg.StorageType)
	assert.Equal(t, "*", cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "release", cfg.GinMode)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	content := "PORT=9090\nSTORAGE_TYPE=sqlite\nDATABASE_URL=sqlite://games.db\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "sqlite://games.db", cfg.DatabaseURL)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestEnvironmentOverridesDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "127.0.0.1:7070", cfg.Addr())
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())

	cfg.AllowedOrigins = ""
	assert.Empty(t, cfg.Origins())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.in}
			assert.Equal(t, tt.want, cfg.Level())
		})
	}
}

func TestLoadConfigRejectsUnknownGinMode(t *testing.T) {
	t.Setenv("GIN_MODE", "production")

	_, err := LoadConfig(t.TempDir())
	assert.ErrorContains(t, err, "invalid GIN_MODE")
}

func TestLoadConfigAcceptsGinModes(t *testing.T) {
	for _, mode := range []string{"debug", "release", "test"} {
		t.Run(mode, func(t *testing.T) {
			t.Setenv("GIN_MODE", mode)

			cfg, err := LoadConfig(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, mode, cfg.GinMode)
		})
	}
}
