package sms

import (
	"context"

	pkgHTTP "followup-srv/pkg/http"
	"followup-srv/pkg/log"
)

// Sender delivers one text message to an E.164 number.
// Implementations are safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, to, body string) (Receipt, error)
}

// New creates a gateway-backed Sender. Returns the interface.
func New(l log.Logger, cfg Config) (Sender, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &gatewaySender{
		l:   l,
		cfg: cfg,
		// A retried POST can deliver the same SMS twice, so the gateway is called once.
		client: pkgHTTP.NewClient(pkgHTTP.ClientConfig{Timeout: timeout, Retries: 0}),
	}, nil
}
