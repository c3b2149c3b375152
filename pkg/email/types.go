package email

import (
	"errors"

	"followup-srv/pkg/log"

	"gopkg.in/gomail.v2"
)

var (
	ErrHostRequired      = errors.New("email: smtp host is required")
	ErrInvalidPort       = errors.New("email: smtp port must be between 1 and 65535")
	ErrSenderRequired    = errors.New("email: sender address is required")
	ErrRecipientRequired = errors.New("email: recipient address is required")
)

// Config holds the SMTP relay settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	SSL       bool
	LocalName string
}

// Message is one outbound email. Body is sent as text/plain; HTMLBody, when set,
// is attached as the text/html alternative.
type Message struct {
	From     string
	To       string
	Subject  string
	Body     string
	HTMLBody string
}

// Receipt identifies an accepted message.
type Receipt struct {
	ID string
}

type smtpSender struct {
	l      log.Logger
	dialer *gomail.Dialer
	domain string
}
