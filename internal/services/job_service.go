package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/alerts"
	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
)

const recentWindow = 7 * 24 * time.Hour

type JobService struct {
	DB      *gorm.DB
	Matcher *matching.Matcher
	Resumes *ResumeService
	// Alerts may be nil, in which case no alerts are dispatched.
	Alerts      *alerts.Dispatcher
	AsyncAlerts bool
}

func NewJobService(db *gorm.DB, matcher *matching.Matcher, resumes *ResumeService, dispatcher *alerts.Dispatcher, async bool) *JobService {
	return &JobService{
		DB:          db,
		Matcher:     matcher,
		Resumes:     resumes,
		Alerts:      dispatcher,
		AsyncAlerts: async,
	}
}

// CreateJob posts a job for employer, updates the employer's counters and
// dispatches job alerts.
func (s *JobService) CreateJob(ctx context.Context, employer models.User, req *dtos.JobCreationRequest) (*dtos.JobCreationResponse, error) {
	if employer.UserType != models.UserTypeEmployer {
		return nil, fmt.Errorf("%w: only employers post jobs", ErrForbidden)
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMin > *req.SalaryMax {
		return nil, fmt.Errorf("%w: salary_min exceeds salary_max", ErrInvalidInput)
	}

	now := time.Now()
	job := &models.Job{
		EmployerID:      employer.ID,
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Location:        req.Location,
		SalaryMin:       req.SalaryMin,
		SalaryMax:       req.SalaryMax,
		SalaryCurrency:  req.SalaryCurrency,
		JobType:         req.JobType,
		RemoteWork:      req.RemoteWork,
		ExperienceLevel: req.ExperienceLevel,
		Industry:        req.Industry,
		CompanyName:     req.CompanyName,
		PostedDate:      now,
		Benefits:        req.Benefits,
		Requirements:    req.Requirements,
		IsActive:        true,
	}
	if job.SalaryCurrency == "" {
		job.SalaryCurrency = "USD"
	}
	if req.ApplicationDeadline != "" {
		d, err := time.Parse(time.DateOnly, req.ApplicationDeadline)
		if err != nil {
			return nil, fmt.Errorf("%w: application_deadline: %v", ErrInvalidInput, err)
		}
		job.ApplicationDeadline = &d
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(job).Error; err != nil {
			return err
		}
		var stats models.EmployerStats
		if err := tx.Where(models.EmployerStats{EmployerID: employer.ID}).FirstOrCreate(&stats).Error; err != nil {
			return err
		}
		return tx.Model(&stats).Updates(map[string]any{
			"total_jobs_posted": gorm.Expr("total_jobs_posted + ?", 1),
			"last_job_posted":   now,
			"last_updated":      now,
		}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	logger.Ctx(ctx).Info().Uint("job_id", job.ID).Uint("employer_id", employer.ID).Msg("job posted")

	resp := &dtos.JobCreationResponse{Job: job, AlertsSent: -1}
	switch {
	case s.Alerts == nil:
		resp.AlertsSent = 0
	case s.AsyncAlerts:
		s.Alerts.DispatchAsync(ctx, *job)
	default:
		n, err := s.Alerts.CheckJobMatches(ctx, *job)
		if err != nil {
			logger.Ctx(ctx).Error().Err(err).Uint("job_id", job.ID).Msg("job alert dispatch failed")
		}
		resp.AlertsSent = n
	}
	return resp, nil
}

func (s *JobService) findJob(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load job %d: %w", id, err)
	}
	return &job, nil
}

// GetJob returns job details with the viewer's skill overlap and records the view.
func (s *JobService) GetJob(ctx context.Context, viewer models.User, id uint, ip string) (*dtos.JobDetailResponse, error) {
	job, err := s.findJob(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := models.JobView{JobID: job.ID, ViewerID: viewer.ID, ViewTime: time.Now(), IPAddress: ip}
		if err := tx.Create(&view).Error; err != nil {
			return err
		}
		if err := tx.Model(job).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Model(&models.EmployerStats{}).
			Where("employer_id = ?", job.EmployerID).
			UpdateColumn("total_job_views", gorm.Expr("total_job_views + ?", 1)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("record job view: %w", err)
	}
	job.Views++

	var skills []string
	if viewer.UserType == models.UserTypeStudent && viewer.Resume != "" {
		if skills, err = s.Resumes.Skills(ctx, viewer); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Uint("user_id", viewer.ID).Msg("could not read resume skills")
		}
	}
	overlap := s.Matcher.Match(skills, job.Description)
	return &dtos.JobDetailResponse{
		Job:            *job,
		RequiredSkills: orEmpty(overlap.Required),
		MatchingSkills: orEmpty(overlap.Matching),
		MissingSkills:  orEmpty(overlap.Missing),
	}, nil
}

func (s *JobService) application(ctx context.Context, userID, jobID uint) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).Where("user_id = ? AND job_id = ?", userID, jobID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	return &app, nil
}

// ApplicationStatus reports whether user already applied to the job.
func (s *JobService) ApplicationStatus(ctx context.Context, user models.User, jobID uint) (*dtos.ApplicationStatusResponse, error) {
	app, err := s.application(ctx, user.ID, jobID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return &dtos.ApplicationStatusResponse{}, nil
	}
	return &dtos.ApplicationStatusResponse{HasApplied: true, ApplicationDate: &app.AppliedAt}, nil
}

// Apply records a student's application. Applying twice is not an error; the
// response reports the existing application instead.
func (s *JobService) Apply(ctx context.Context, user models.User, jobID uint) (*dtos.ApplyResponse, error) {
	if user.UserType != models.UserTypeStudent {
		return nil, fmt.Errorf("%w: only students apply to jobs", ErrForbidden)
	}
	job, err := s.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !job.IsActive {
		return nil, fmt.Errorf("%w: job is closed", ErrInvalidInput)
	}

	existing, err := s.application(ctx, user.ID, jobID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return alreadyApplied(existing), nil
	}

	app := models.Application{UserID: user.ID, JobID: jobID, Status: models.ApplicationStatusApplied, AppliedAt: time.Now()}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			return err
		}
		return tx.Model(&models.EmployerStats{}).
			Where("employer_id = ?", job.EmployerID).
			Updates(map[string]any{
				"total_applications_received": gorm.Expr("total_applications_received + ?", 1),
				"last_updated":                time.Now(),
			}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent submit won the insert.
		existing, err := s.application(ctx, user.ID, jobID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return alreadyApplied(existing), nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	logger.Ctx(ctx).Info().Uint("user_id", user.ID).Uint("job_id", jobID).Msg("application submitted")

	return &dtos.ApplyResponse{
		Success:                   true,
		Message:                   "Application submitted successfully",
		ApplicationStatusResponse: dtos.ApplicationStatusResponse{HasApplied: true, ApplicationDate: &app.AppliedAt},
	}, nil
}

func alreadyApplied(app *models.Application) *dtos.ApplyResponse {
	return &dtos.ApplyResponse{
		Message:                   "You have already applied for this job",
		ApplicationStatusResponse: dtos.ApplicationStatusResponse{HasApplied: true, ApplicationDate: &app.AppliedAt},
	}
}

// MyApplications lists the user's applications, newest first, with summary counts.
func (s *JobService) MyApplications(ctx context.Context, user models.User) (*dtos.MyApplicationsResponse, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job.Employer").
		Where("user_id = ?", user.ID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	now := time.Now()
	out := &dtos.MyApplicationsResponse{Applications: []dtos.ApplicationSummary{}, TotalApplications: len(apps)}
	for _, a := range apps {
		age := now.Sub(a.AppliedAt)
		if a.Status == models.ApplicationStatusApplied {
			out.PendingApplications++
		}
		if age <= recentWindow {
			out.RecentApplications++
		}
		out.Applications = append(out.Applications, dtos.ApplicationSummary{
			Application:      a,
			EmployerName:     a.Job.Employer.Username,
			DaysSinceApplied: int(age.Hours() / 24),
		})
	}
	return out, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
