package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "VOCABULARY_FILE", "UPLOAD_DIR",
	"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET", "MINIO_USE_SSL",
	"GEMINI_API_KEY", "EMBEDDING_MODEL", "GMAIL_CREDENTIALS_FILE", "GMAIL_TOKEN_FILE",
	"SENDER_EMAIL", "EMAIL_DEV_MODE_SUCCEEDS", "EMAIL_SENDS_PER_SECOND", "ALERTS_ASYNC",
	"ALERT_THRESHOLD", "PUBLIC_BASE_URL",
}

// clearEnv blanks every key for the duration of the test.
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultDSN, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.False(t, cfg.MinIO.Enabled())
	assert.True(t, cfg.Email.DevModeSucceeds)
	assert.Equal(t, 5.0, cfg.Email.SendsPerSecond)
	assert.True(t, cfg.AlertsAsync)
	assert.Equal(t, 50.0, cfg.AlertThreshold)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Contains(t, cfg.Vocabulary.Skills, "python")
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	vocab := filepath.Join(dir, "vocab.yaml")
	require.NoError(t, os.WriteFile(vocab, []byte("skills: [Go, Rust]\n"), 0o644))
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"PORT=9090\nMINIO_ENDPOINT=localhost:9000\nMINIO_USE_SSL=true\nALERTS_ASYNC=false\nVOCABULARY_FILE="+vocab+"\n"), 0o644))

	// Unset so godotenv may fill them; set values win over the file.
	for _, k := range []string{"PORT", "MINIO_ENDPOINT", "MINIO_USE_SSL", "ALERTS_ASYNC", "VOCABULARY_FILE"} {
		os.Unsetenv(k)
	}
	t.Setenv("ALERT_THRESHOLD", "65")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.MinIO.Enabled())
	assert.True(t, cfg.MinIO.UseSSL)
	assert.False(t, cfg.AlertsAsync)
	assert.Equal(t, 65.0, cfg.AlertThreshold)
	assert.Equal(t, []string{"go", "rust"}, cfg.Vocabulary.Skills)
	assert.Equal(t, "http://localhost:9090", cfg.BaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("ALERTS_ASYNC", "sometimes")
	_, err := Load(missing)
	assert.ErrorContains(t, err, "ALERTS_ASYNC")

	t.Setenv("ALERTS_ASYNC", "")
	t.Setenv("EMAIL_SENDS_PER_SECOND", "fast")
	_, err = Load(missing)
	assert.ErrorContains(t, err, "EMAIL_SENDS_PER_SECOND")

	t.Setenv("EMAIL_SENDS_PER_SECOND", "")
	t.Setenv("VOCABULARY_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err = Load(missing)
	assert.Error(t, err)
}
