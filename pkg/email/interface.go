package email

import (
	"context"

	"followup-srv/pkg/log"

	"gopkg.in/gomail.v2"
)

// Sender delivers one email message.
// Implementations are safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

// New creates an SMTP sender backed by gomail. Returns the interface.
func New(l log.Logger, cfg Config) (Sender, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.SSL = cfg.SSL
	d.LocalName = cfg.LocalName
	return &smtpSender{
		l:      l,
		dialer: d,
		domain: messageIDDomain(cfg),
	}, nil
}
