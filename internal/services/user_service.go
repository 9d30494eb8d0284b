package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
)

// WelcomeSender delivers the registration email.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, user models.User) bool
}

type UserService struct {
	DB     *gorm.DB
	Mailer WelcomeSender
}

func NewUserService(db *gorm.DB, mailer WelcomeSender) *UserService {
	return &UserService{DB: db, Mailer: mailer}
}

// Register creates a profile. Usernames are unique ignoring case.
func (s *UserService) Register(ctx context.Context, req *dtos.RegisterUserRequest) (*dtos.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		return nil, fmt.Errorf("%w: username must be at least 3 characters", ErrInvalidInput)
	}
	if req.UserType != models.UserTypeStudent && req.UserType != models.UserTypeEmployer {
		return nil, fmt.Errorf("%w: user_type must be student or employer", ErrInvalidInput)
	}

	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("LOWER(username) = ?", strings.ToLower(username)).Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		Username:           username,
		UserType:           req.UserType,
		IsActive:           true,
		Email:              strings.TrimSpace(req.Email),
		EmailNotifications: req.EmailNotifications == nil || *req.EmailNotifications,
		JobAlertFrequency:  "daily",
		PreferredJobTypes:  encodeList(req.PreferredJobTypes),
		PreferredLocations: encodeList(req.PreferredLocations),
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	logger.Ctx(ctx).Info().Uint("user_id", user.ID).Str("user_type", user.UserType).Msg("user registered")

	resp := toUserResponse(user)
	if user.Email != "" && user.EmailNotifications && s.Mailer != nil {
		resp.WelcomeEmailSent = s.Mailer.SendWelcome(ctx, *user)
	}
	return resp, nil
}

// Get loads an active user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) Profile(user *models.User) *dtos.UserResponse {
	return toUserResponse(user)
}

// Settings returns the user's notification preferences.
func (s *UserService) Settings(user *models.User) dtos.NotificationSettings {
	return dtos.NotificationSettings{
		Email:              user.Email,
		EmailNotifications: user.EmailNotifications,
		JobAlertFrequency:  user.JobAlertFrequency,
		PreferredJobTypes:  decodeList(user.PreferredJobTypes),
		PreferredLocations: decodeList(user.PreferredLocations),
		SalaryRangeMin:     user.SalaryRangeMin,
		SalaryRangeMax:     user.SalaryRangeMax,
	}
}

// UpdateSettings replaces the notification preferences of user.
func (s *UserService) UpdateSettings(ctx context.Context, user *models.User, in *dtos.NotificationSettings) (dtos.NotificationSettings, error) {
	if in.SalaryRangeMin != nil && in.SalaryRangeMax != nil && *in.SalaryRangeMin > *in.SalaryRangeMax {
		return dtos.NotificationSettings{}, fmt.Errorf("%w: salary_range_min exceeds salary_range_max", ErrInvalidInput)
	}
	freq := in.JobAlertFrequency
	if freq == "" {
		freq = user.JobAlertFrequency
	}
	email := strings.TrimSpace(in.Email)
	types, locations := encodeList(in.PreferredJobTypes), encodeList(in.PreferredLocations)
	updates := map[string]any{
		"email":               email,
		"email_notifications": in.EmailNotifications,
		"job_alert_frequency": freq,
		"preferred_job_types": types,
		"preferred_locations": locations,
		"salary_range_min":    in.SalaryRangeMin,
		"salary_range_max":    in.SalaryRangeMax,
	}
	if err := s.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return dtos.NotificationSettings{}, fmt.Errorf("update settings: %w", err)
	}
	user.Email, user.EmailNotifications, user.JobAlertFrequency = email, in.EmailNotifications, freq
	user.PreferredJobTypes, user.PreferredLocations = types, locations
	user.SalaryRangeMin, user.SalaryRangeMax = in.SalaryRangeMin, in.SalaryRangeMax
	return s.Settings(user), nil
}

func toUserResponse(u *models.User) *dtos.UserResponse {
	return &dtos.UserResponse{
		User:               u,
		PreferredJobTypes:  decodeList(u.PreferredJobTypes),
		PreferredLocations: decodeList(u.PreferredLocations),
	}
}

// encodeList stores an empty list as "[]" so the preference filter stays inactive.
func encodeList(items []string) datatypes.JSON {
	clean := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			clean = append(clean, it)
		}
	}
	b, _ := json.Marshal(clean)
	return datatypes.JSON(b)
}

func decodeList(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
