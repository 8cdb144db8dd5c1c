package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, ":3000", cfg.HTTPAddr())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "userProfileDB", cfg.Mongo.Database)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "profile_session", cfg.Session.CookieName)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, SessionStoreMongo, cfg.SessionBackend())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("PORT", "8081")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "profiles")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.HTTPAddr())
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, "profiles", cfg.Mongo.Database)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, SessionStoreRedis, cfg.SessionBackend())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitMemorySessions(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SessionStoreMemory, cfg.SessionBackend())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{"SESSION_SECRET": ""},
			want: "missing SESSION_SECRET",
		},
		{
			name: "short session secret",
			env:  map[string]string{"SESSION_SECRET": "too-short"},
			want: "at least 32 bytes",
		},
		{
			name: "port out of range",
			env:  map[string]string{"SESSION_SECRET": testSecret, "PORT": "70000"},
			want: "invalid PORT",
		},
		{
			name: "non positive ttl",
			env:  map[string]string{"SESSION_SECRET": testSecret, "SESSION_TTL": "0s"},
			want: "SESSION_TTL",
		},
		{
			name: "unknown session store",
			env:  map[string]string{"SESSION_SECRET": testSecret, "SESSION_STORE": "disk"},
			want: "invalid SESSION_STORE",
		},
		{
			name: "redis session store without url",
			env:  map[string]string{"SESSION_SECRET": testSecret, "SESSION_STORE": "redis"},
			want: "requires REDIS_URL",
		},
		{
			name: "unparsable duration",
			env:  map[string]string{"SESSION_SECRET": testSecret, "SESSION_TTL": "forever"},
			want: "parse environment variables",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
