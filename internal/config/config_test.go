package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rockpaperscissors/internal/catalog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rps.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	think, err := cfg.ThinkDelay()
	require.NoError(t, err)
	assert.Equal(t, time.Second, think)
	assert.Equal(t, catalog.Basic, cfg.Mode())
}

func TestLoadFullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  mode         = "Advance"
  think_delay  = "250ms"
  reveal_delay = "100ms"
  seed         = 42
}

score {
  backend = "sqlite"
  path    = "scores.db"
}

log {
  level = "debug"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, catalog.Advance, cfg.Mode())
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, "sqlite", cfg.Score.Backend)
	assert.Equal(t, "scores.db", cfg.Score.Path)
	assert.Equal(t, "localhost:6379", cfg.Score.RedisAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "rps.log", cfg.Log.File)

	think, err := cfg.ThinkDelay()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, think)

	reveal, err := cfg.RevealDelay()
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, reveal)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, `game { mode = "whatever" }`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, catalog.Basic, cfg.Mode())
	assert.Equal(t, "1s", cfg.Game.ThinkDelay)
	assert.Equal(t, "file", cfg.Score.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadInvalidHCL(t *testing.T) {
	t.Parallel()

	_, err := Load(writeConfig(t, `game {`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")

	_, err = Load(writeConfig(t, `game { unknown = 1 }`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"bad think delay", func(c *Config) { c.Game.ThinkDelay = "soon" }, "think_delay"},
		{"negative reveal", func(c *Config) { c.Game.RevealDelay = "-1s" }, "reveal_delay"},
		{"bad backend", func(c *Config) { c.Score.Backend = "s3" }, "invalid score backend"},
		{"redis without addr", func(c *Config) { c.Score.Backend = "redis"; c.Score.RedisAddr = "" }, "redis_addr"},
		{"negative redis db", func(c *Config) { c.Score.RedisDB = -1 }, "redis_db"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
