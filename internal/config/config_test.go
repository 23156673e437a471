package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8888", cfg.Addr)
	assert.Equal(t, "default", cfg.DefaultRoom)
	assert.Equal(t, 32, cfg.MaxNameLen)
	assert.Equal(t, 64, cfg.MaxRoomLen)
	assert.True(t, cfg.MDNS)
	assert.Equal(t, "drawboard", cfg.ServiceName)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DRAWBOARD_ADDR", ":9001")
	t.Setenv("DRAWBOARD_DEFAULT_ROOM", "lobby")
	t.Setenv("DRAWBOARD_MDNS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.Addr)
	assert.Equal(t, "lobby", cfg.DefaultRoom)
	assert.False(t, cfg.MDNS)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DRAWBOARD_MAX_NAME_LEN", "0")

	_, err := Load()
	assert.Error(t, err)
}
