package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/resume"
	"github.com/justsurfingit/job-portal/internal/storage"
)

// MaxResumeSize caps uploads at 10 MiB.
const MaxResumeSize = 10 << 20

// UploadExtensions are accepted by Upload. Legacy .doc files are stored but yield no text.
var UploadExtensions = append([]string{".doc"}, resume.SupportedExtensions...)

type ResumeService struct {
	DB       *gorm.DB
	Store    storage.ResumeStore
	Text     *resume.TextExtractor
	Analyzer *resume.Analyzer
}

func NewResumeService(db *gorm.DB, store storage.ResumeStore, text *resume.TextExtractor, analyzer *resume.Analyzer) *ResumeService {
	return &ResumeService{DB: db, Store: store, Text: text, Analyzer: analyzer}
}

type UploadResult struct {
	Upload   models.ResumeUpload `json:"upload"`
	Analysis resume.Analysis     `json:"analysis"`
}

// Upload stores the file, scores it and makes it the user's current resume.
func (s *ResumeService) Upload(ctx context.Context, user *models.User, filename string, r io.Reader, contentType string) (*UploadResult, error) {
	if user.UserType != models.UserTypeStudent {
		return nil, fmt.Errorf("%w: only students upload resumes", ErrForbidden)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(UploadExtensions, ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxResumeSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxResumeSize {
		return nil, ErrFileTooLarge
	}

	key := storage.NewKey(user.ID, filename)
	if err := s.Store.Save(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	text := s.Text.Extract(ctx, filename, bytes.NewReader(data))
	analysis := s.Analyzer.Analyze(text)

	upload := models.ResumeUpload{
		UserID:     user.ID,
		Filename:   filename,
		UploadTime: time.Now(),
		FileSize:   int64(len(data)),
		ATSScore:   float64(analysis.ATSScore),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&upload).Error; err != nil {
			return err
		}
		return tx.Model(user).Update("resume", key).Error
	})
	if err != nil {
		if derr := s.Store.Delete(ctx, key); derr != nil {
			logger.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("orphaned resume object not removed")
		}
		return nil, fmt.Errorf("record resume upload: %w", err)
	}
	user.Resume = key

	logger.Ctx(ctx).Info().
		Uint("user_id", user.ID).
		Str("key", key).
		Int("ats_score", analysis.ATSScore).
		Int("skills", len(analysis.Profile.Skills)).
		Msg("resume uploaded")
	return &UploadResult{Upload: upload, Analysis: analysis}, nil
}

// ReadText returns the plain text of the user's current resume.
func (s *ResumeService) ReadText(ctx context.Context, user models.User) (string, error) {
	if user.Resume == "" {
		return "", ErrNoResume
	}
	rc, err := s.Store.Open(ctx, user.Resume)
	if err != nil {
		return "", fmt.Errorf("open resume %s: %w", user.Resume, err)
	}
	defer rc.Close()
	return s.Text.Extract(ctx, user.Resume, rc), nil
}

// ResumeText is ReadText with failures logged and reported as empty text.
func (s *ResumeService) ResumeText(ctx context.Context, user models.User) string {
	text, err := s.ReadText(ctx, user)
	if err != nil && !errors.Is(err, ErrNoResume) {
		logger.Ctx(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("resume unreadable")
	}
	return text
}

// Skills returns the vocabulary skills found in the user's resume.
func (s *ResumeService) Skills(ctx context.Context, user models.User) ([]string, error) {
	text, err := s.ReadText(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.Analyzer.Extractor().Extract(text).Skills, nil
}

// Analysis runs the full resume analysis on the user's current resume.
func (s *ResumeService) Analysis(ctx context.Context, user models.User) (*resume.Analysis, error) {
	if user.Resume == "" {
		return nil, ErrNoResume
	}
	a := s.Analyzer.Analyze(s.ResumeText(ctx, user))
	return &a, nil
}

// Uploads lists the user's upload history, newest first.
func (s *ResumeService) Uploads(ctx context.Context, userID uint) ([]models.ResumeUpload, error) {
	var out []models.ResumeUpload
	err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Order("upload_time DESC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list resume uploads: %w", err)
	}
	return out, nil
}
