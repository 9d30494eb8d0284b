package dtos

import "github.com/justsurfingit/job-portal/internal/models"

type RegisterUserRequest struct {
	Username           string   `json:"username" binding:"required,min=3,max=150"`
	UserType           string   `json:"user_type" binding:"required,oneof=student employer"`
	Email              string   `json:"email" binding:"omitempty,email"`
	EmailNotifications *bool    `json:"email_notifications"`
	PreferredJobTypes  []string `json:"preferred_job_types"`
	PreferredLocations []string `json:"preferred_locations"`
}

type NotificationSettings struct {
	Email              string   `json:"email" binding:"omitempty,email"`
	EmailNotifications bool     `json:"email_notifications"`
	JobAlertFrequency  string   `json:"job_alert_frequency" binding:"omitempty,oneof=immediate daily weekly"`
	PreferredJobTypes  []string `json:"preferred_job_types"`
	PreferredLocations []string `json:"preferred_locations"`
	SalaryRangeMin     *int     `json:"salary_range_min" binding:"omitempty,min=0"`
	SalaryRangeMax     *int     `json:"salary_range_max" binding:"omitempty,min=0"`
}

// UserResponse exposes a user together with its decoded preferences.
type UserResponse struct {
	*models.User
	PreferredJobTypes  []string `json:"preferred_job_types"`
	PreferredLocations []string `json:"preferred_locations"`
	WelcomeEmailSent   bool     `json:"welcome_email_sent,omitempty"`
}

type NotificationSettingsResponse struct {
	Settings     NotificationSettings `json:"settings"`
	RecentAlerts []models.JobAlert    `json:"recent_alerts"`
}
