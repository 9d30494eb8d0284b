// Package config reads process configuration from the environment, after
// loading an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/justsurfingit/job-portal/internal/resume"
)

const defaultDSN = "host=localhost user=postgres password=password dbname=jobportal port=5432 sslmode=disable"

type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether resumes go to MinIO instead of the upload directory.
func (m MinIO) Enabled() bool { return m.Endpoint != "" }

type Email struct {
	CredentialsFile string
	TokenFile       string
	SenderEmail     string
	DevModeSucceeds bool
	SendsPerSecond  float64
}

type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	LogFormat   string
	BaseURL     string
	AdminToken  string

	VocabularyFile string
	Vocabulary     resume.Vocabulary
	UploadDir      string
	MinIO          MinIO

	GeminiAPIKey   string
	EmbeddingModel string

	Email          Email
	AlertsAsync    bool
	AlertThreshold float64
}

// Load reads files (default ".env"); missing files are skipped. Variables
// already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Port:           getString("PORT", "8080"),
		DatabaseURL:    getString("DATABASE_URL", defaultDSN),
		LogLevel:       getString("LOG_LEVEL", "info"),
		LogFormat:      getString("LOG_FORMAT", "json"),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
		VocabularyFile: os.Getenv("VOCABULARY_FILE"),
		UploadDir:      getString("UPLOAD_DIR", "uploads"),
		MinIO: MinIO{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getString("MINIO_BUCKET", "resumes"),
		},
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel: os.Getenv("EMBEDDING_MODEL"),
		Email: Email{
			CredentialsFile: os.Getenv("GMAIL_CREDENTIALS_FILE"),
			TokenFile:       getString("GMAIL_TOKEN_FILE", "token.json"),
			SenderEmail:     os.Getenv("SENDER_EMAIL"),
		},
	}

	var err error
	if cfg.MinIO.UseSSL, err = getBool("MINIO_USE_SSL", false); err != nil {
		return nil, err
	}
	if cfg.Email.DevModeSucceeds, err = getBool("EMAIL_DEV_MODE_SUCCEEDS", true); err != nil {
		return nil, err
	}
	if cfg.Email.SendsPerSecond, err = getFloat("EMAIL_SENDS_PER_SECOND", 5); err != nil {
		return nil, err
	}
	if cfg.AlertsAsync, err = getBool("ALERTS_ASYNC", true); err != nil {
		return nil, err
	}
	if cfg.AlertThreshold, err = getFloat("ALERT_THRESHOLD", 50); err != nil {
		return nil, err
	}
	cfg.BaseURL = getString("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port)

	if cfg.Vocabulary, err = resume.LoadVocabulary(cfg.VocabularyFile); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}

func getFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
}
