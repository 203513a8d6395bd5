package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/jobboard")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "job_board_sid", cfg.SessionCookieName)
	assert.Equal(t, time.Hour, cfg.SessionTTL())
	assert.Equal(t, time.Hour, cfg.JWTExpiry())
	assert.Equal(t, "local", cfg.StorageDriver)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CLIENT_URL", "https://jobs.example.com/")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("S3_BUCKET", "resumes")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "https://jobs.example.com", cfg.ClientURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "resumes", cfg.S3.Bucket)
}

func TestLoadConfig_RejectsUnknownStorageDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "ftp")
	_, err := LoadConfig()
	assert.Error(t, err)
}
