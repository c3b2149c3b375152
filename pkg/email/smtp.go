package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

const defaultMessageIDDomain = "followup.local"

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.Host) == "" {
		return ErrHostRequired
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

func messageIDDomain(cfg Config) string {
	if cfg.LocalName != "" {
		return cfg.LocalName
	}
	if i := strings.LastIndex(cfg.Username, "@"); i >= 0 && i < len(cfg.Username)-1 {
		return cfg.Username[i+1:]
	}
	return defaultMessageIDDomain
}

// Send dials the relay and delivers msg. gomail has no context support, so the
// dial runs in its own goroutine and Send returns as soon as ctx is done.
// The returned receipt carries the Message-ID header set on the message.
func (s *smtpSender) Send(ctx context.Context, msg Message) (Receipt, error) {
	if strings.TrimSpace(msg.From) == "" {
		return Receipt{}, ErrSenderRequired
	}
	if strings.TrimSpace(msg.To) == "" {
		return Receipt{}, ErrRecipientRequired
	}

	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.domain)
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)
	m.SetBody("text/plain", msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		s.l.Warnf(ctx, "pkg.email.Send: context done before SMTP send to %s completed", msg.To)
		return Receipt{}, fmt.Errorf("email: send aborted: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return Receipt{}, fmt.Errorf("email: smtp send: %w", err)
		}
	}
	return Receipt{ID: id}, nil
}
