package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "TEST_DURATION_MINUTES", "SESSION_RETENTION", "CORS_ORIGINS", "REDIS_ADDR", "ESSAY_POLICY"} {
		t.Setenv(k, "")
	}
	c := FromEnv()
	assert.Equal(t, ModeOffline, c.Mode)
	assert.Equal(t, ":8080", c.HTTPAddr)
	assert.Equal(t, 30, c.TestDurationMinutes)
	assert.Equal(t, time.Hour, c.SessionRetention)
	assert.Equal(t, "strict", c.EssayPolicy)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, c.CORSOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("TEST_DURATION_MINUTES", "45")
	t.Setenv("SESSION_RETENTION", "15m")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DB_DRIVER", "postgres")

	c := FromEnv()
	assert.Equal(t, ModeOnline, c.Mode)
	assert.Equal(t, 45, c.TestDurationMinutes)
	assert.Equal(t, 15*time.Minute, c.SessionRetention)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
	assert.Equal(t, "postgres", c.DBDriver)
}

func TestFromEnv_BadNumbersFallBack(t *testing.T) {
	t.Setenv("TEST_DURATION_MINUTES", "half an hour")
	t.Setenv("SESSION_RETENTION", "soon")
	c := FromEnv()
	assert.Equal(t, 30, c.TestDurationMinutes)
	assert.Equal(t, time.Hour, c.SessionRetention)
}

func TestLoad_DotEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("HTTP_ADDR", ":9999")
	os.Unsetenv("LOG_LEVEL")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nHTTP_ADDR=:7000\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, ":9999", c.HTTPAddr, "environment wins over the file")
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
