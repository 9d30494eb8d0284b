package mailer

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"

	"github.com/justsurfingit/job-portal/internal/logger"
)

// Sender delivers one rendered HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ConsoleSender only logs messages. It is used when no mail backend is configured.
type ConsoleSender struct{}

func (ConsoleSender) Send(ctx context.Context, to, subject, _ string) error {
	logger.Ctx(ctx).Info().Str("to", to).Str("subject", subject).Msg("[DEV MODE] email not sent")
	return nil
}

// GmailSender sends through the Gmail API as the authorised account.
type GmailSender struct {
	svc      *gmail.Service
	from     string
	attempts int
	backoff  time.Duration
}

func NewGmailSender(svc *gmail.Service, from string) *GmailSender {
	return &GmailSender{svc: svc, from: from, attempts: 3, backoff: time.Second}
}

func (s *GmailSender) Send(ctx context.Context, to, subject, htmlBody string) error {
	raw, err := buildMessage(s.from, to, subject, htmlBody)
	if err != nil {
		return err
	}
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	return retry(ctx, s.attempts, s.backoff, func() error {
		_, err := s.svc.Users.Messages.Send("me", msg).Context(ctx).Do()
		return err
	})
}

func buildMessage(from, to, subject, htmlBody string) ([]byte, error) {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", addr.String())
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String()), nil
}

// retry runs f with exponential backoff. Client errors (4xx) are not retried.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = f(); err == nil {
			return nil
		}
		if isClientError(err) {
			return err
		}
		logger.Ctx(ctx).Warn().Err(err).Dur("retry_in", sleep).Msg("gmail api error")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(sleep):
		}
		sleep *= 2
	}
	return fmt.Errorf("failed after %d attempts: %w", attempts, err)
}

func isClientError(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return gErr.Code >= 400 && gErr.Code < 500 && gErr.Code != 429
	}
	return false
}
