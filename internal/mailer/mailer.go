package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"orDefault": func(s, def string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	},
}).ParseFS(templateFS, "templates/*.html"))

// Options configures a Mailer.
type Options struct {
	BaseURL string
	// DevMode marks the sender as a stand-in; sends then report DevModeSucceeds.
	DevMode         bool
	DevModeSucceeds bool
}

// Mailer renders notification emails and hands them to a Sender.
type Mailer struct {
	sender Sender
	opts   Options
}

func New(sender Sender, opts Options) *Mailer {
	if sender == nil {
		sender = ConsoleSender{}
		opts.DevMode = true
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	return &Mailer{sender: sender, opts: opts}
}

// Send delivers one message and reports success. Failures are logged, never returned.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) bool {
	log := logger.Ctx(ctx).With().Str("to", to).Str("subject", subject).Logger()
	if err := m.sender.Send(ctx, to, subject, htmlBody); err != nil {
		log.Error().Err(err).Msg("failed to send email")
		return false
	}
	if m.opts.DevMode {
		return m.opts.DevModeSucceeds
	}
	log.Info().Msg("email sent")
	return true
}

type jobAlertData struct {
	Username    string
	Job         models.Job
	Salary      string
	Percentage  string
	Reason      string
	Description string
	JobURL      string
}

// SendJobAlert renders and sends the new-job-match email.
func (m *Mailer) SendJobAlert(ctx context.Context, user models.User, job models.Job, pct float64, reason string) bool {
	company := job.CompanyName
	if company == "" {
		company = "Company"
	}
	data := jobAlertData{
		Username:    user.Username,
		Job:         job,
		Salary:      salaryRange(job),
		Percentage:  fmt.Sprintf("%.1f%%", pct),
		Reason:      reason,
		Description: truncate(job.Description, 200),
		JobURL:      fmt.Sprintf("%s/api/v1/jobs/%d", m.opts.BaseURL, job.ID),
	}
	body, err := render("job_alert.html", data)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("render job alert email")
		return false
	}
	return m.Send(ctx, user.Email, fmt.Sprintf("New Job Match: %s at %s", job.Title, company), body)
}

// SendWelcome greets a newly registered user.
func (m *Mailer) SendWelcome(ctx context.Context, user models.User) bool {
	body, err := render("welcome.html", struct {
		Username  string
		UploadURL string
	}{user.Username, m.opts.BaseURL + "/api/v1/resumes"})
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("render welcome email")
		return false
	}
	return m.Send(ctx, user.Email, "Welcome to Job Portal AI!", body)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return buf.String(), nil
}

func salaryRange(job models.Job) string {
	if job.SalaryMin == nil || job.SalaryMax == nil || *job.SalaryMin == 0 || *job.SalaryMax == 0 {
		return ""
	}
	return fmt.Sprintf("%s %s - %s", job.SalaryCurrency, thousands(*job.SalaryMin), thousands(*job.SalaryMax))
}

func thousands(n int) string {
	s := fmt.Sprint(n)
	if n < 0 {
		return "-" + thousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
