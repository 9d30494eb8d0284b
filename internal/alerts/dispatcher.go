// Package alerts notifies students when a newly posted job matches their resume.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/matching"
	"github.com/justsurfingit/job-portal/internal/models"
)

const (
	DefaultThreshold = 50.0
	dispatchTimeout  = 5 * time.Minute
)

// Notifier sends the alert email and reports whether it was accepted.
type Notifier interface {
	SendJobAlert(ctx context.Context, user models.User, job models.Job, pct float64, reason string) bool
}

// ProfileSource returns the skills found in a user's current resume.
type ProfileSource interface {
	Skills(ctx context.Context, user models.User) ([]string, error)
}

// Evaluation is the preference-adjusted match of one user against one job.
type Evaluation struct {
	matching.OverlapResult
	Adjusted float64 `json:"adjusted_percentage"`
	Reason   string  `json:"match_reason"`
}

type Options struct {
	Threshold      float64
	SendsPerSecond float64
}

type Dispatcher struct {
	db        *gorm.DB
	matcher   *matching.Matcher
	profiles  ProfileSource
	notifier  Notifier
	limiter   *rate.Limiter
	threshold float64
}

func NewDispatcher(db *gorm.DB, matcher *matching.Matcher, profiles ProfileSource, notifier Notifier, opts Options) *Dispatcher {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	limit := rate.Inf
	if opts.SendsPerSecond > 0 {
		limit = rate.Limit(opts.SendsPerSecond)
	}
	return &Dispatcher{
		db:        db,
		matcher:   matcher,
		profiles:  profiles,
		notifier:  notifier,
		limiter:   rate.NewLimiter(limit, 1),
		threshold: opts.Threshold,
	}
}

// MatchReason summarises the matching skills for the alert email.
func MatchReason(skills []string) string {
	if len(skills) == 0 {
		return "Job matches your profile based on other criteria"
	}
	reason := "Your skills match: " + strings.Join(skills[:min(3, len(skills))], ", ")
	if len(skills) > 3 {
		reason += fmt.Sprintf(" and %d more", len(skills)-3)
	}
	return reason
}

// Evaluate computes the exact overlap of the user's resume with job and applies preferences.
func (d *Dispatcher) Evaluate(ctx context.Context, user models.User, job models.Job) (Evaluation, error) {
	skills, err := d.profiles.Skills(ctx, user)
	if err != nil {
		return Evaluation{}, fmt.Errorf("load skills for user %d: %w", user.ID, err)
	}
	overlap := d.matcher.Match(skills, job.Description)
	return Evaluation{
		OverlapResult: overlap,
		Adjusted:      ApplyPreferences(ctx, user, job, overlap.Percentage),
		Reason:        MatchReason(overlap.Matching),
	}, nil
}

// CheckJobMatches alerts every subscribed student whose adjusted match reaches
// the threshold. It returns the number of alerts recorded. Per-user failures
// are logged and skipped.
func (d *Dispatcher) CheckJobMatches(ctx context.Context, job models.Job) (int, error) {
	log := logger.Ctx(ctx).With().Uint("job_id", job.ID).Logger()

	var students []models.User
	err := d.db.WithContext(ctx).
		Where("user_type = ? AND email_notifications = ?", models.UserTypeStudent, true).
		Find(&students).Error
	if err != nil {
		return 0, fmt.Errorf("load subscribed students: %w", err)
	}

	sent := 0
	for _, student := range students {
		if student.Email == "" || student.Resume == "" {
			continue
		}

		eval, err := d.Evaluate(ctx, student, job)
		if err != nil {
			log.Warn().Err(err).Uint("user_id", student.ID).Msg("skipping alert evaluation")
			continue
		}
		if eval.Adjusted < d.threshold {
			continue
		}

		if err := d.limiter.Wait(ctx); err != nil {
			return sent, fmt.Errorf("wait for send slot: %w", err)
		}
		if !d.notifier.SendJobAlert(ctx, student, job, eval.Adjusted, eval.Reason) {
			log.Warn().Uint("user_id", student.ID).Msg("job alert email not sent")
			continue
		}

		alert := models.JobAlert{
			UserID:          student.ID,
			JobID:           job.ID,
			AlertType:       models.AlertTypeEmail,
			SentAt:          time.Now(),
			MatchPercentage: eval.Adjusted,
			MatchReason:     eval.Reason,
		}
		if err := d.db.WithContext(ctx).Create(&alert).Error; err != nil {
			log.Error().Err(err).Uint("user_id", student.ID).Msg("failed to record job alert")
			continue
		}
		sent++
	}

	log.Info().Int("alerts", sent).Str("title", job.Title).Msg("job alerts dispatched")
	return sent, nil
}

// DispatchAsync runs CheckJobMatches in the background with its own deadline.
// The returned channel yields the alert count once dispatch finishes.
func (d *Dispatcher) DispatchAsync(ctx context.Context, job models.Job) <-chan int {
	done := make(chan int, 1)
	l := *logger.Ctx(ctx)
	go func() {
		defer close(done)
		bg, cancel := context.WithTimeout(l.WithContext(context.Background()), dispatchTimeout)
		defer cancel()
		n, err := d.CheckJobMatches(bg, job)
		if err != nil {
			l.Error().Err(err).Uint("job_id", job.ID).Msg("job alert dispatch failed")
		}
		done <- n
	}()
	return done
}

// ListAlerts returns the user's most recent alerts, newest first.
func (d *Dispatcher) ListAlerts(ctx context.Context, userID uint, limit int) ([]models.JobAlert, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []models.JobAlert
	err := d.db.WithContext(ctx).
		Preload("Job").
		Where("user_id = ?", userID).
		Order("sent_at DESC").Order("id DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return out, nil
}

// MarkRead flags one of the user's alerts as read. It reports false when the
// alert does not exist or belongs to someone else.
func (d *Dispatcher) MarkRead(ctx context.Context, alertID, userID uint) bool {
	alert, ok := d.ownedAlert(ctx, alertID, userID)
	if !ok {
		return false
	}
	if err := d.db.WithContext(ctx).Model(&alert).Update("is_read", true).Error; err != nil {
		logger.Ctx(ctx).Error().Err(err).Uint("alert_id", alertID).Msg("failed to mark alert read")
		return false
	}
	return true
}

// Delete removes one of the user's alerts, with the same ownership rule as MarkRead.
func (d *Dispatcher) Delete(ctx context.Context, alertID, userID uint) bool {
	alert, ok := d.ownedAlert(ctx, alertID, userID)
	if !ok {
		return false
	}
	if err := d.db.WithContext(ctx).Delete(&alert).Error; err != nil {
		logger.Ctx(ctx).Error().Err(err).Uint("alert_id", alertID).Msg("failed to delete alert")
		return false
	}
	return true
}

func (d *Dispatcher) ownedAlert(ctx context.Context, alertID, userID uint) (models.JobAlert, bool) {
	var alert models.JobAlert
	err := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", alertID, userID).First(&alert).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Ctx(ctx).Error().Err(err).Uint("alert_id", alertID).Msg("failed to load alert")
		}
		return models.JobAlert{}, false
	}
	return alert, true
}
