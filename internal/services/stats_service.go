package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/models"
)

type TopEmployer struct {
	Username   string `json:"username"`
	JobsPosted int64  `json:"jobs_posted"`
	TotalViews int64  `json:"total_views"`
}

type TopJob struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Views       int    `json:"views"`
}

type ActiveStudent struct {
	Username     string `json:"username"`
	Applications int64  `json:"applications"`
}

// SiteStats are the site-wide aggregates shown on the admin page.
type SiteStats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalStudents  int64 `json:"total_students"`
	TotalEmployers int64 `json:"total_employers"`
	ActiveUsers    int64 `json:"active_users"`
	RecentUsers    int64 `json:"recent_users"`

	TotalJobs          int64   `json:"total_jobs"`
	TotalApplications  int64   `json:"total_applications"`
	TotalJobViews      int64   `json:"total_job_views"`
	TotalResumeUploads int64   `json:"total_resume_uploads"`
	AvgATSScore        float64 `json:"avg_ats_score"`

	TopEmployers   []TopEmployer   `json:"top_employers"`
	TopJobs        []TopJob        `json:"top_jobs"`
	ActiveStudents []ActiveStudent `json:"active_students"`

	RecentApplications  int64 `json:"recent_applications"`
	RecentJobViews      int64 `json:"recent_job_views"`
	RecentResumeUploads int64 `json:"recent_resume_uploads"`
}

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Site computes the admin statistics. Recent users cover 30 days, other recent counts 7.
func (s *StatsService) Site(ctx context.Context) (*SiteStats, error) {
	db := s.DB.WithContext(ctx)
	now := time.Now()
	month, week := now.AddDate(0, 0, -30), now.Add(-recentWindow)

	out := &SiteStats{}
	counts := []struct {
		dst   *int64
		model any
		where string
		args  []any
	}{
		{&out.TotalUsers, &models.User{}, "", nil},
		{&out.TotalStudents, &models.User{}, "user_type = ?", []any{models.UserTypeStudent}},
		{&out.TotalEmployers, &models.User{}, "user_type = ?", []any{models.UserTypeEmployer}},
		{&out.ActiveUsers, &models.User{}, "is_active = ?", []any{true}},
		{&out.RecentUsers, &models.User{}, "created_at >= ?", []any{month}},
		{&out.TotalJobs, &models.Job{}, "", nil},
		{&out.TotalApplications, &models.Application{}, "", nil},
		{&out.TotalResumeUploads, &models.ResumeUpload{}, "", nil},
		{&out.RecentApplications, &models.Application{}, "applied_at >= ?", []any{week}},
		{&out.RecentJobViews, &models.JobView{}, "view_time >= ?", []any{week}},
		{&out.RecentResumeUploads, &models.ResumeUpload{}, "upload_time >= ?", []any{week}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("count %T: %w", c.model, err)
		}
	}

	if err := db.Model(&models.Job{}).Select("COALESCE(SUM(views), 0)").Scan(&out.TotalJobViews).Error; err != nil {
		return nil, fmt.Errorf("sum job views: %w", err)
	}
	var avg float64
	if err := db.Model(&models.ResumeUpload{}).Select("COALESCE(AVG(ats_score), 0)").Scan(&avg).Error; err != nil {
		return nil, fmt.Errorf("average ats score: %w", err)
	}
	out.AvgATSScore = math.Round(avg*100) / 100

	out.TopEmployers = []TopEmployer{}
	err := db.Model(&models.User{}).
		Select("users.username AS username, COUNT(jobs.id) AS jobs_posted, COALESCE(SUM(jobs.views), 0) AS total_views").
		Joins("JOIN jobs ON jobs.employer_id = users.id AND jobs.deleted_at IS NULL").
		Where("users.user_type = ?", models.UserTypeEmployer).
		Group("users.id, users.username").
		Order("total_views DESC").
		Limit(5).
		Scan(&out.TopEmployers).Error
	if err != nil {
		return nil, fmt.Errorf("top employers: %w", err)
	}

	out.TopJobs = []TopJob{}
	err = db.Model(&models.Job{}).
		Select("id, title, company_name, views").
		Order("views DESC").Order("id").
		Limit(5).
		Scan(&out.TopJobs).Error
	if err != nil {
		return nil, fmt.Errorf("top jobs: %w", err)
	}

	out.ActiveStudents = []ActiveStudent{}
	err = db.Model(&models.User{}).
		Select("users.username AS username, COUNT(applications.id) AS applications").
		Joins("LEFT JOIN applications ON applications.user_id = users.id").
		Where("users.user_type = ?", models.UserTypeStudent).
		Group("users.id, users.username").
		Order("COUNT(applications.id) DESC").
		Limit(5).
		Scan(&out.ActiveStudents).Error
	if err != nil {
		return nil, fmt.Errorf("active students: %w", err)
	}
	return out, nil
}
