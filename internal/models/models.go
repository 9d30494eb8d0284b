package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	UserTypeStudent  = "student"
	UserTypeEmployer = "employer"

	ApplicationStatusApplied = "applied"
	AlertTypeEmail           = "email"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Username string `gorm:"uniqueIndex;not null" json:"username"`
	UserType string `gorm:"not null;index" json:"user_type"`
	// Resume is the resume store key, empty when nothing was uploaded.
	Resume   string `json:"resume"`
	IsActive bool   `json:"is_active"`

	Email              string `json:"email"`
	EmailNotifications bool   `json:"email_notifications"`
	JobAlertFrequency  string `gorm:"default:'daily'" json:"job_alert_frequency"`
	// JSON arrays of strings; malformed values disable the matching filter.
	PreferredJobTypes  datatypes.JSON `json:"-"`
	PreferredLocations datatypes.JSON `json:"-"`
	SalaryRangeMin     *int           `json:"salary_range_min"`
	SalaryRangeMax     *int           `json:"salary_range_max"`
}

type Job struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Key
	EmployerID uint `gorm:"not null;index" json:"employer_id"`
	// Association: GORM needs Preload() to fill this
	Employer User `json:"-"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Views       int    `json:"views"`

	Location            string     `json:"location"`
	SalaryMin           *int       `json:"salary_min"`
	SalaryMax           *int       `json:"salary_max"`
	SalaryCurrency      string     `gorm:"default:'USD'" json:"salary_currency"`
	JobType             string     `json:"job_type"`
	RemoteWork          string     `json:"remote_work"`
	ExperienceLevel     string     `json:"experience_level"`
	Industry            string     `json:"industry"`
	CompanyName         string     `json:"company_name"`
	PostedDate          time.Time  `json:"posted_date"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Benefits            string     `gorm:"type:text" json:"benefits"`
	Requirements        string     `gorm:"type:text" json:"requirements"`
	IsActive            bool       `gorm:"index" json:"is_active"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	// One application per user and job.
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_job" json:"user_id"`
	User      User      `json:"-"`
	JobID     uint      `gorm:"not null;uniqueIndex:idx_user_job;index" json:"job_id"`
	Job       Job       `json:"job,omitempty"`
	Status    string    `gorm:"default:'applied'" json:"status"`
	AppliedAt time.Time `json:"applied_at"`
}

type ResumeUpload struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	Filename   string    `gorm:"not null" json:"filename"`
	UploadTime time.Time `json:"upload_time"`
	FileSize   int64     `json:"file_size"`
	ATSScore   float64   `json:"ats_score"`
}

type JobView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     uint      `gorm:"not null;index" json:"job_id"`
	Job       Job       `json:"-"`
	ViewerID  uint      `gorm:"not null;index" json:"viewer_id"`
	Viewer    User      `json:"-"`
	ViewTime  time.Time `json:"view_time"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
}

type EmployerStats struct {
	ID                        uint       `gorm:"primaryKey" json:"id"`
	EmployerID                uint       `gorm:"not null;uniqueIndex" json:"employer_id"`
	TotalJobsPosted           int        `json:"total_jobs_posted"`
	TotalApplicationsReceived int        `json:"total_applications_received"`
	TotalJobViews             int        `json:"total_job_views"`
	LastJobPosted             *time.Time `json:"last_job_posted"`
	LastUpdated               time.Time  `json:"last_updated"`
}

type JobAlert struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index" json:"user_id"`
	JobID           uint      `gorm:"not null;index" json:"job_id"`
	Job             Job       `json:"job,omitempty"`
	AlertType       string    `gorm:"default:'email'" json:"alert_type"`
	SentAt          time.Time `gorm:"index" json:"sent_at"`
	IsRead          bool      `json:"is_read"`
	MatchPercentage float64   `json:"match_percentage"`
	MatchReason     string    `gorm:"type:text" json:"match_reason"`
}

// All lists every persisted entity, in migration order.
func All() []any {
	return []any{
		&User{}, &Job{}, &Application{}, &ResumeUpload{},
		&JobView{}, &EmployerStats{}, &JobAlert{},
	}
}
