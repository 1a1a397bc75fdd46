package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("LIFEOS_HOME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".lifeos"), cfg.Home)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, 25, cfg.DefaultMinutes)
	assert.True(t, cfg.Sound)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, filepath.Join(home, ".lifeos", "lifeos.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join(home, ".lifeos", "timer.db"), cfg.TimerPath())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LIFEOS_HOME", "/tmp/los")
	t.Setenv("LIFEOS_PROFILE", "alex")
	t.Setenv("LIFEOS_SOUND", "false")
	t.Setenv("LIFEOS_DEFAULT_MINUTES", "50")
	t.Setenv("LIFEOS_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/los", cfg.Home)
	assert.Equal(t, "alex", cfg.Profile)
	assert.False(t, cfg.Sound)
	assert.Equal(t, 50, cfg.DefaultMinutes)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsBadNumber(t *testing.T) {
	t.Setenv("LIFEOS_DEFAULT_MINUTES", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRepairsNonPositiveMinutes(t *testing.T) {
	t.Setenv("LIFEOS_HOME", t.TempDir())
	t.Setenv("LIFEOS_DEFAULT_MINUTES", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.DefaultMinutes)
}
