package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(overrides map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetDefault("port", "9090")
	v.SetDefault("backend_url", DefaultBackendURL)
	v.SetDefault("session_ttl", "30m")
	v.SetDefault("max_upload_size", 1024)
	v.SetDefault("history_limit", 10)
	v.SetDefault("demo_delay", "1500ms")
	for k, val := range overrides {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.DemoDelay)
	assert.Zero(t, cfg.BackendTimeout)
	assert.False(t, cfg.DemoMode())
}

func TestFromViper_DemoMode(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{"demo_mode": true}))
	require.NoError(t, err)
	assert.True(t, cfg.DemoMode())

	cfg, err = fromViper(newViper(map[string]interface{}{"backend_url": ""}))
	require.NoError(t, err)
	assert.True(t, cfg.DemoMode())
}

func TestFromViper_TrimsTrailingSlash(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{"backend_url": "http://api:8000/api/v1/"}))
	require.NoError(t, err)
	assert.Equal(t, "http://api:8000/api/v1", cfg.BackendURL)
}

func TestFromViper_Invalid(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{"history_limit": 0}))
	assert.Error(t, err)

	_, err = fromViper(newViper(map[string]interface{}{"port": ""}))
	assert.Error(t, err)
}
