package dtos

import (
	"time"

	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
)

type JobCreationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`

	// Optional Fields
	CompanyName     string `json:"company_name"`
	Location        string `json:"location"`
	JobType         string `json:"job_type"`
	RemoteWork      string `json:"remote_work"`
	ExperienceLevel string `json:"experience_level"`
	Industry        string `json:"industry"`
	Requirements    string `json:"requirements"`
	Benefits        string `json:"benefits"`
	SalaryMin       *int   `json:"salary_min" binding:"omitempty,min=0"`
	SalaryMax       *int   `json:"salary_max" binding:"omitempty,min=0"`
	SalaryCurrency  string `json:"salary_currency"`
	// ApplicationDeadline is a date in YYYY-MM-DD form.
	ApplicationDeadline string `json:"application_deadline" binding:"omitempty,datetime=2006-01-02"`
}

type JobCreationResponse struct {
	Job *models.Job `json:"job"`
	// AlertsSent is -1 when alerts are dispatched in the background.
	AlertsSent int `json:"alerts_sent"`
}

// JobSearchQuery holds the GET /jobs/search filters.
type JobSearchQuery struct {
	Keyword         string  `form:"keyword"`
	Location        string  `form:"location"`
	JobType         string  `form:"job_type"`
	RemoteWork      string  `form:"remote_work"`
	ExperienceLevel string  `form:"experience_level"`
	Industry        string  `form:"industry"`
	SalaryMin       *int    `form:"salary_min"`
	SalaryMax       *int    `form:"salary_max"`
	MinMatch        float64 `form:"min_match" binding:"min=0,max=100"`
	SortBy          string  `form:"sort_by" binding:"omitempty,oneof=relevance date salary match"`
}

// JobMatch is a job annotated with the caller's exact skill overlap.
type JobMatch struct {
	Job models.Job `json:"job"`
	matching.OverlapResult
	Category string `json:"category"`
}

type CategorizedJobs struct {
	StrongMatches  []JobMatch `json:"strong_matches"`
	PartialMatches []JobMatch `json:"partial_matches"`
	NoMatches      []JobMatch `json:"no_matches"`
	UserSkills     []string   `json:"user_skills"`
	HasResume      bool       `json:"has_resume"`
}

type JobSearchResponse struct {
	Jobs       []JobMatch `json:"jobs"`
	UserSkills []string   `json:"user_skills"`
	HasResume  bool       `json:"has_resume"`
}

type RecommendationsResponse struct {
	Strategy string                 `json:"strategy"`
	Matches  []matching.MatchResult `json:"matches"`
}

type JobDetailResponse struct {
	Job            models.Job `json:"job"`
	RequiredSkills []string   `json:"required_skills"`
	MatchingSkills []string   `json:"matching_skills"`
	MissingSkills  []string   `json:"missing_skills"`
}

type ApplicationStatusResponse struct {
	HasApplied      bool       `json:"has_applied"`
	ApplicationDate *time.Time `json:"application_date"`
}

type ApplyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ApplicationStatusResponse
}

type ApplicationSummary struct {
	Application      models.Application `json:"application"`
	EmployerName     string             `json:"employer_name"`
	DaysSinceApplied int                `json:"days_since_applied"`
}

type MyApplicationsResponse struct {
	Applications        []ApplicationSummary `json:"applications"`
	TotalApplications   int                  `json:"total_applications"`
	PendingApplications int                  `json:"pending_applications"`
	RecentApplications  int                  `json:"recent_applications"`
}
