package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "web/dist", cfg.App.StaticDir)
	assert.Equal(t, 32, cfg.App.StoreShards)
	assert.True(t, cfg.App.EnableMetrics)
	assert.False(t, cfg.App.RateLimitEnabled)
	assert.False(t, cfg.App.TrustProxyHeaders)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_WRITE_TIMEOUT", "3s")
	t.Setenv("STORE_SHARDS", "8")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_MINUTE", "5")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 8, cfg.App.StoreShards)
	assert.True(t, cfg.App.RateLimitEnabled)
	assert.Equal(t, 5, cfg.App.RateLimitPerMinute)
	assert.True(t, cfg.App.TrustProxyHeaders)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STATIC_DIR", "/srv/env")

	cfg, err := Load([]string{"-a", "0.0.0.0:8081", "-static", "/srv/flag", "-log-level", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "/srv/flag", cfg.App.StaticDir)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "Bad duration", env: map[string]string{"SERVER_READ_TIMEOUT": "soon"}},
		{name: "Bad shard count", env: map[string]string{"STORE_SHARDS": "0"}},
		{name: "Bad rate limit", env: map[string]string{"RATE_LIMIT_ENABLED": "true", "RATE_LIMIT_REQUESTS_PER_MINUTE": "0"}},
		{name: "Bad listen address", args: []string{"-a", "8081"}},
		{name: "Unknown flag", args: []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.Error(t, err)
		})
	}
}
