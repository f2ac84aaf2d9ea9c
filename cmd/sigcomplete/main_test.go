package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/sigcomplete/internal/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(options{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sig.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "warn"
scripts = ["a.lua"]

[completion]
trigger = "@"
`), 0o644))

	cfg, err := loadConfig(options{
		ConfigPath: path,
		LogLevel:   "debug",
		Scripts:    []string{"b.lua"},
		Trigger:    "#",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, '#', cfg.TriggerRune())
	assert.Equal(t, []string{"a.lua", "b.lua"}, cfg.Scripts)
}

func TestLoadConfigInvalidOverride(t *testing.T) {
	_, err := loadConfig(options{Trigger: "ab"})
	assert.ErrorIs(t, err, config.ErrInvalidTrigger)

	_, err = loadConfig(options{LogLevel: "chatty"})
	assert.ErrorIs(t, err, config.ErrValidationFailed)
}

func TestOpenLog(t *testing.T) {
	log, closeLog, err := openLog("", "info")
	require.NoError(t, err)
	closeLog()
	assert.Equal(t, "info", log.Level())

	path := filepath.Join(t.TempDir(), "sig.log")
	log, closeLog, err = openLog(path, "debug")
	require.NoError(t, err)
	log.Debug().Msg("hello")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
