package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/resume"
	"github.com/justsurfingit/job-portal/internal/storage"
)

type mockWelcome struct {
	mock.Mock
}

func (m *mockWelcome) SendWelcome(ctx context.Context, user models.User) bool {
	return m.Called(user.Username).Bool(0)
}

type env struct {
	db       *gorm.DB
	store    *storage.FileStore
	resumes  *ResumeService
	matcher  *matching.Matcher
	matching *MatchingService
	jobs     *JobService
	employer *EmployerService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	vocab := resume.DefaultVocabulary()
	resumes := NewResumeService(db, store, &resume.TextExtractor{}, resume.NewAnalyzer(vocab))
	matcher := matching.NewMatcher(vocab, nil)
	return &env{
		db:       db,
		store:    store,
		resumes:  resumes,
		matcher:  matcher,
		matching: NewMatchingService(db, matcher, resumes),
		jobs:     NewJobService(db, matcher, resumes, nil, false),
		employer: NewEmployerService(db, matcher, resumes),
	}
}

func (e *env) user(t *testing.T, name, userType string) models.User {
	t.Helper()
	u := models.User{Username: name, UserType: userType, IsActive: true, JobAlertFrequency: "daily"}
	require.NoError(t, e.db.Create(&u).Error)
	return u
}

// student creates a student whose resume is a .txt file holding text.
func (e *env) student(t *testing.T, name, text string) models.User {
	t.Helper()
	u := e.user(t, name, models.UserTypeStudent)
	if text == "" {
		return u
	}
	res, err := e.resumes.Upload(context.Background(), &u, name+".txt", strings.NewReader(text), "text/plain")
	require.NoError(t, err)
	require.NotNil(t, res)
	return u
}

func (e *env) job(t *testing.T, employer models.User, title, description string) models.Job {
	t.Helper()
	j := models.Job{
		EmployerID:  employer.ID,
		Title:       title,
		Description: description,
		PostedDate:  time.Now(),
		IsActive:    true,
	}
	require.NoError(t, e.db.Create(&j).Error)
	return j
}

func intPtr(v int) *int { return &v }
