package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Ticks)
	assert.Equal(t, 15, cfg.Scenario.PlayerDistance)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
log_level: debug
ticks: 20
interval: 250ms
monitor:
  addr: 127.0.0.1:9090
scenario:
  health: 20
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 20, cfg.Ticks)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, "127.0.0.1:9090", cfg.Monitor.Addr)
	assert.Equal(t, 20, cfg.Scenario.Health)
	assert.Equal(t, 15, cfg.Scenario.PlayerDistance, "unset keys keep defaults")
	assert.Equal(t, 64, cfg.History)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Rejects(t *testing.T) {
	_, err := Parse(strings.NewReader("ticks: -1\nhistory: 0\n"))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "ticks")
	assert.Contains(t, err.Error(), "history")

	_, err = Parse(strings.NewReader("unknown_key: 1\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("log_level: loud\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_AcceptsLoggerLevelSpellings(t *testing.T) {
	for _, lvl := range []string{"debug", "INFO", "warn", "WARN", "warning", "error"} {
		cfg := Default()
		cfg.LogLevel = lvl
		assert.NoError(t, cfg.Validate(), lvl)
	}
	cfg := Default()
	cfg.LogLevel = "loud"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "behavior.yaml")
	require.NoError(t, os.WriteFile(path, []byte("agents: 3\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Agents)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
