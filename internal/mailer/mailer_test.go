package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/justsurfingit/job-portal/internal/models"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	return m.Called(ctx, to, subject, htmlBody).Error(0)
}

func intPtr(v int) *int { return &v }

func TestMailer_SendJobAlert(t *testing.T) {
	ctx := context.Background()
	s := new(mockSender)
	var body string
	s.On("Send", ctx, "jane@example.com", "New Job Match: Backend Engineer at Acme", mock.Anything).
		Run(func(args mock.Arguments) { body = args.String(3) }).
		Return(nil).Once()

	m := New(s, Options{BaseURL: "http://localhost:8080/"})
	job := models.Job{
		ID:             7,
		Title:          "Backend Engineer",
		CompanyName:    "Acme",
		Description:    "Python <b>developer</b>",
		SalaryMin:      intPtr(90000),
		SalaryMax:      intPtr(120000),
		SalaryCurrency: "USD",
	}
	ok := m.SendJobAlert(ctx, models.User{Username: "jane", Email: "jane@example.com"}, job, 64, "Your skills match: python")

	require.True(t, ok)
	s.AssertExpectations(t)
	assert.Contains(t, body, "64.0%")
	assert.Contains(t, body, "Your skills match: python")
	assert.Contains(t, body, "USD 90,000 - 120,000")
	assert.Contains(t, body, "http://localhost:8080/api/v1/jobs/7")
	assert.Contains(t, body, "Location:</strong> Not specified")
	assert.Contains(t, body, "Python &lt;b&gt;developer&lt;/b&gt;")
}

func TestMailer_SendFailures(t *testing.T) {
	ctx := context.Background()
	s := new(mockSender)
	s.On("Send", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	m := New(s, Options{})
	assert.False(t, m.Send(ctx, "a@example.com", "hi", "<p>hi</p>"))
	assert.False(t, m.SendWelcome(ctx, models.User{Username: "a", Email: "a@example.com"}))
}

func TestMailer_DevMode(t *testing.T) {
	ctx := context.Background()

	m := New(nil, Options{DevModeSucceeds: true})
	assert.True(t, m.SendWelcome(ctx, models.User{Username: "a", Email: "a@example.com"}))

	m = New(ConsoleSender{}, Options{DevMode: true, DevModeSucceeds: false})
	assert.False(t, m.Send(ctx, "a@example.com", "hi", "<p>hi</p>"))
}

func TestBuildMessage(t *testing.T) {
	raw, err := buildMessage("portal@example.com", "Jane <jane@example.com>", "Hello", "<p>x</p>")
	require.NoError(t, err)
	msg := string(raw)
	assert.Contains(t, msg, "From: portal@example.com\r\n")
	assert.Contains(t, msg, "To: \"Jane\" <jane@example.com>\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.Contains(t, msg, "\r\n\r\n<p>x</p>")

	_, err = buildMessage("", "not an address", "x", "y")
	assert.Error(t, err)
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := retry(ctx, 3, time.Millisecond, func() error {
		calls++
		return &googleapi.Error{Code: 400}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)

	calls = 0
	err = retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return &googleapi.Error{Code: 503}
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)

	calls = 0
	err = retry(ctx, 2, time.Millisecond, func() error {
		calls++
		return errors.New("network")
	})
	assert.ErrorContains(t, err, "failed after 2 attempts")
	assert.Equal(t, 2, calls)
}

func TestThousands(t *testing.T) {
	assert.Equal(t, "0", thousands(0))
	assert.Equal(t, "999", thousands(999))
	assert.Equal(t, "1,000", thousands(1000))
	assert.Equal(t, "1,234,567", thousands(1234567))
	assert.Equal(t, "-45,000", thousands(-45000))
}
