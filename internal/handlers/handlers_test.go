package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/justsurfingit/job-portal/internal/alerts"
	"github.com/justsurfingit/job-portal/internal/mailer"
	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/resume"
	"github.com/justsurfingit/job-portal/internal/services"
	"github.com/justsurfingit/job-portal/internal/storage"
)

const adminToken = "s3cret"

type testServer struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	vocab := resume.DefaultVocabulary()
	matcher := matching.NewMatcher(vocab, nil)
	mail := mailer.New(nil, mailer.Options{DevModeSucceeds: true})

	resumes := services.NewResumeService(db, store, &resume.TextExtractor{}, resume.NewAnalyzer(vocab))
	dispatcher := alerts.NewDispatcher(db, matcher, resumes, mail, alerts.Options{})
	users := services.NewUserService(db, mail)

	engine := gin.New()
	router := &Router{
		Users:      users,
		AdminToken: adminToken,
		User:       NewUserHandler(users, dispatcher),
		Job:        NewJobHandler(services.NewJobService(db, matcher, resumes, dispatcher, false), services.NewMatchingService(db, matcher, resumes)),
		Resume:     NewResumeHandler(resumes),
		Alert:      NewAlertHandler(dispatcher),
		Employer:   NewEmployerHandler(services.NewEmployerService(db, matcher, resumes)),
		Admin:      NewAdminHandler(services.NewStatsService(db)),
	}
	router.Register(engine.Group("/api/v1"))
	return &testServer{t: t, db: db, engine: engine}
}

func (s *testServer) do(method, path string, userID uint, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(UserIDHeader, strconv.FormatUint(uint64(userID), 10))
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) upload(userID uint, filename, content string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", filename)
	require.NoError(s.t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(s.t, err)
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(UserIDHeader, strconv.FormatUint(uint64(userID), 10))
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(username, userType, email string) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, "/users", 0, gin.H{"username": username, "user_type": userType, "email": email})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var out struct {
		ID uint `json:"id"`
	}
	decode(s.t, w, &out)
	return out.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/health", 0, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterAndIdentity(t *testing.T) {
	s := newTestServer(t)
	id := s.register("jane", "student", "jane@example.com")

	w := s.do(http.MethodPost, "/users", 0, gin.H{"username": "Jane", "user_type": "student"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/users", 0, gin.H{"username": "x", "user_type": "student"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/users/me", id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	decode(t, w, &me)
	assert.Equal(t, "jane", me["username"])
	assert.Equal(t, []any{}, me["preferred_job_types"])

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/me", 0, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/users/me", 999, nil).Code)
}

func TestJobFlow(t *testing.T) {
	s := newTestServer(t)
	acme := s.register("acme", "employer", "")
	jane := s.register("jane", "student", "jane@example.com")

	w := s.upload(jane, "jane.txt", "Jane Doe\njane@example.com\nPython developer skilled in Django and Flask.\n")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var up struct {
		Analysis resume.Analysis `json:"analysis"`
	}
	decode(t, w, &up)
	assert.Equal(t, []string{"python", "django", "flask"}, up.Analysis.Profile.Skills)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/jobs", jane, gin.H{"title": "x", "description": "y"}).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/jobs", acme, gin.H{"title": "no description"}).Code)

	w = s.do(http.MethodPost, "/jobs", acme, gin.H{"title": "Backend", "description": "Python, Django, Flask and SQL", "location": "Berlin"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Job        models.Job `json:"job"`
		AlertsSent int        `json:"alerts_sent"`
	}
	decode(t, w, &created)
	assert.Equal(t, 1, created.AlertsSent)
	jobPath := "/jobs/" + strconv.FormatUint(uint64(created.Job.ID), 10)

	w = s.do(http.MethodGet, "/jobs", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing struct {
		StrongMatches []struct {
			MatchPercentage float64 `json:"match_percentage"`
		} `json:"strong_matches"`
	}
	decode(t, w, &listing)
	require.Len(t, listing.StrongMatches, 1)
	assert.Equal(t, 75.0, listing.StrongMatches[0].MatchPercentage)

	w = s.do(http.MethodGet, "/jobs/search?keyword=django&min_match=50", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/jobs/search?sort_by=bogus", jane, nil).Code)

	w = s.do(http.MethodGet, "/jobs/recommendations", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"strategy":"term-frequency"`)

	w = s.do(http.MethodGet, jobPath, jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"missing_skills":["sql"]`)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/jobs/999", jane, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/jobs/abc", jane, nil).Code)

	assert.Equal(t, http.StatusCreated, s.do(http.MethodPost, jobPath+"/apply", jane, nil).Code)
	w = s.do(http.MethodPost, jobPath+"/apply", jane, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, jobPath+"/apply", acme, nil).Code)

	w = s.do(http.MethodGet, jobPath+"/application", jane, nil)
	assert.Contains(t, w.Body.String(), `"has_applied":true`)

	w = s.do(http.MethodGet, "/applications", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_applications":1`)

	w = s.do(http.MethodGet, "/employer/jobs/"+strconv.FormatUint(uint64(created.Job.ID), 10)+"/shortlist", acme, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_applicants":1`)

	other := s.register("globex", "employer", "")
	assert.Equal(t, http.StatusForbidden,
		s.do(http.MethodGet, "/employer/jobs/"+strconv.FormatUint(uint64(created.Job.ID), 10)+"/shortlist", other, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/employer/stats", jane, nil).Code)

	w = s.do(http.MethodGet, "/employer/stats", acme, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_applications_received":1`)

	w = s.do(http.MethodGet, "/counseling", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"missing_skills":["sql"]`)
}

func TestResumeEndpoints(t *testing.T) {
	s := newTestServer(t)
	jane := s.register("jane", "student", "")

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/resumes/analysis", jane, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.upload(jane, "cv.exe", "x").Code)
	require.Equal(t, http.StatusCreated, s.upload(jane, "cv.txt", "Skills: SQL\nProjects: reports").Code)

	w := s.do(http.MethodGet, "/resumes/analysis", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var a resume.Analysis
	decode(t, w, &a)
	assert.Equal(t, []string{"sql"}, a.Profile.Skills)
}

func TestAlertsAndSettings(t *testing.T) {
	s := newTestServer(t)
	acme := s.register("acme", "employer", "")
	jane := s.register("jane", "student", "")
	bob := s.register("bob", "student", "")

	job := models.Job{EmployerID: acme, Title: "Backend", Description: "python", PostedDate: time.Now(), IsActive: true}
	require.NoError(t, s.db.Create(&job).Error)
	alert := models.JobAlert{UserID: jane, JobID: job.ID, AlertType: models.AlertTypeEmail, SentAt: time.Now(), MatchPercentage: 80}
	require.NoError(t, s.db.Create(&alert).Error)
	alertPath := "/alerts/" + strconv.FormatUint(uint64(alert.ID), 10)

	w := s.do(http.MethodGet, "/alerts", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Backend"`)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, alertPath+"/read", bob, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, alertPath+"/read", jane, nil).Code)

	w = s.do(http.MethodPut, "/notifications/settings", jane, gin.H{
		"email":               "jane@example.com",
		"email_notifications": true,
		"job_alert_frequency": "weekly",
		"preferred_locations": []string{"Remote"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusBadRequest,
		s.do(http.MethodPut, "/notifications/settings", jane, gin.H{"job_alert_frequency": "hourly"}).Code)

	w = s.do(http.MethodGet, "/notifications/settings", jane, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Settings struct {
			JobAlertFrequency  string   `json:"job_alert_frequency"`
			PreferredLocations []string `json:"preferred_locations"`
		} `json:"settings"`
		RecentAlerts []models.JobAlert `json:"recent_alerts"`
	}
	decode(t, w, &got)
	assert.Equal(t, "weekly", got.Settings.JobAlertFrequency)
	assert.Equal(t, []string{"Remote"}, got.Settings.PreferredLocations)
	require.Len(t, got.RecentAlerts, 1)
	assert.True(t, got.RecentAlerts[0].IsRead)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, alertPath, bob, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, alertPath, jane, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, alertPath, jane, nil).Code)
}

func TestAdminStats(t *testing.T) {
	s := newTestServer(t)
	s.register("jane", "student", "")

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/admin/stats", 0, nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	req.Header.Set(AdminTokenHeader, adminToken)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_students":1`)
}
