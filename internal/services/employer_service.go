package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/ranking"
)

type EmployerService struct {
	DB      *gorm.DB
	Matcher *matching.Matcher
	Resumes *ResumeService
}

func NewEmployerService(db *gorm.DB, matcher *matching.Matcher, resumes *ResumeService) *EmployerService {
	return &EmployerService{DB: db, Matcher: matcher, Resumes: resumes}
}

// JobApplicants is one job with its applicants ranked by skill match.
type JobApplicants struct {
	Job            models.Job         `json:"job"`
	RequiredSkills []string           `json:"required_skills"`
	Applicants     []ranking.Decision `json:"applicants"`
}

// EmployerJob is a posted job with its engagement counters.
type EmployerJob struct {
	models.Job
	ApplicationCount int64 `json:"application_count"`
}

type ShortlistResponse struct {
	Job            models.Job `json:"job"`
	RequiredSkills []string   `json:"required_skills"`
	ranking.Result
}

func requireEmployer(u models.User) error {
	if u.UserType != models.UserTypeEmployer {
		return fmt.Errorf("%w: employer account required", ErrForbidden)
	}
	return nil
}

func (s *EmployerService) ownJobs(ctx context.Context, employerID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).Where("employer_id = ?", employerID).Order("posted_date DESC").Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list employer jobs: %w", err)
	}
	return jobs, nil
}

// ownedJob loads a job and checks it belongs to employer.
func (s *EmployerService) ownedJob(ctx context.Context, employer models.User, jobID uint) (*models.Job, error) {
	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load job %d: %w", jobID, err)
	}
	if job.EmployerID != employer.ID {
		return nil, fmt.Errorf("%w: job %d belongs to another employer", ErrForbidden, jobID)
	}
	return &job, nil
}

// candidates reads every applicant's resume once. Applicants without a resume
// are kept with HasResume unset.
func (s *EmployerService) candidates(ctx context.Context, jobID uint) ([]ranking.Candidate, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).Preload("User").Where("job_id = ?", jobID).Order("applied_at").Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("list applications for job %d: %w", jobID, err)
	}

	out := make([]ranking.Candidate, 0, len(apps))
	for _, a := range apps {
		c := ranking.Candidate{
			UserID:        a.UserID,
			Username:      a.User.Username,
			Email:         a.User.Email,
			ApplicationID: a.ID,
			HasResume:     a.User.Resume != "",
		}
		if c.HasResume {
			text := s.Resumes.ResumeText(ctx, a.User)
			c.Skills = s.Resumes.Analyzer.Extractor().Extract(text).Skills
			_, c.ATSScore = s.Resumes.Analyzer.ATS(text)
		}
		out = append(out, c)
	}
	return out, nil
}

// Applicants ranks the applicants of each of the employer's jobs by match percentage.
func (s *EmployerService) Applicants(ctx context.Context, employer models.User) ([]JobApplicants, error) {
	if err := requireEmployer(employer); err != nil {
		return nil, err
	}
	jobs, err := s.ownJobs(ctx, employer.ID)
	if err != nil {
		return nil, err
	}
	out := make([]JobApplicants, 0, len(jobs))
	for _, j := range jobs {
		cands, err := s.candidates(ctx, j.ID)
		if err != nil {
			return nil, err
		}
		required := s.Matcher.RequiredSkills(j.Description)
		out = append(out, JobApplicants{
			Job:            j,
			RequiredSkills: orEmpty(required),
			Applicants:     ranking.RankByMatch(required, cands),
		})
	}
	return out, nil
}

// Shortlist splits the applicants of one of the employer's jobs at the shortlist threshold.
func (s *EmployerService) Shortlist(ctx context.Context, employer models.User, jobID uint) (*ShortlistResponse, error) {
	if err := requireEmployer(employer); err != nil {
		return nil, err
	}
	job, err := s.ownedJob(ctx, employer, jobID)
	if err != nil {
		return nil, err
	}
	cands, err := s.candidates(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	required := s.Matcher.RequiredSkills(job.Description)
	return &ShortlistResponse{
		Job:            *job,
		RequiredSkills: orEmpty(required),
		Result:         ranking.Shortlist(required, cands),
	}, nil
}

// Jobs lists the employer's postings with view and application counts.
func (s *EmployerService) Jobs(ctx context.Context, employer models.User) ([]EmployerJob, error) {
	if err := requireEmployer(employer); err != nil {
		return nil, err
	}
	jobs, err := s.ownJobs(ctx, employer.ID)
	if err != nil {
		return nil, err
	}

	type row struct {
		JobID uint
		Count int64
	}
	var rows []row
	err = s.DB.WithContext(ctx).Model(&models.Application{}).
		Select("applications.job_id AS job_id, COUNT(*) AS count").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employer.ID).
		Group("applications.job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.JobID] = r.Count
	}

	out := make([]EmployerJob, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, EmployerJob{Job: j, ApplicationCount: counts[j.ID]})
	}
	return out, nil
}

// Stats recomputes the employer's counters from the database and stores them.
func (s *EmployerService) Stats(ctx context.Context, employer models.User) (*models.EmployerStats, error) {
	if err := requireEmployer(employer); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	var agg struct {
		Jobs       int64
		Views      int64
		LastPosted *time.Time
	}
	err := db.Model(&models.Job{}).
		Select("COUNT(*) AS jobs, COALESCE(SUM(views), 0) AS views").
		Where("employer_id = ?", employer.ID).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate jobs: %w", err)
	}
	var latest models.Job
	err = db.Where("employer_id = ?", employer.ID).Order("posted_date DESC").Limit(1).Find(&latest).Error
	if err != nil {
		return nil, fmt.Errorf("latest job: %w", err)
	}
	if latest.ID != 0 {
		agg.LastPosted = &latest.PostedDate
	}

	var apps int64
	err = db.Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("jobs.employer_id = ?", employer.ID).
		Count(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}

	var stats models.EmployerStats
	if err := db.Where(models.EmployerStats{EmployerID: employer.ID}).FirstOrCreate(&stats).Error; err != nil {
		return nil, fmt.Errorf("load employer stats: %w", err)
	}
	stats.TotalJobsPosted = int(agg.Jobs)
	stats.TotalJobViews = int(agg.Views)
	stats.TotalApplicationsReceived = int(apps)
	stats.LastJobPosted = agg.LastPosted
	stats.LastUpdated = time.Now()
	if err := db.Save(&stats).Error; err != nil {
		return nil, fmt.Errorf("save employer stats: %w", err)
	}
	return &stats, nil
}
