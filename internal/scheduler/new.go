package scheduler

import (
	"strings"
	"time"

	pkgHTTP "followup-srv/pkg/http"
	"followup-srv/pkg/log"
)

const defaultTimeout = 15 * time.Minute

// Config points the scheduler at the reminder-cycle trigger.
type Config struct {
	TriggerURL string
	Secret     string
	// Timeout bounds one cycle call; it must cover a full cycle.
	Timeout time.Duration
}

// Trigger calls the reminder-cycle endpoint. It holds no reminder state.
type Trigger struct {
	l      log.Logger
	client pkgHTTP.IClient
	cfg    Config
}

// New creates a Trigger. A nil client gets one without retries: a failed cycle
// waits for the next tick instead of being replayed.
func New(l log.Logger, client pkgHTTP.IClient, cfg Config) (*Trigger, error) {
	if strings.TrimSpace(cfg.TriggerURL) == "" {
		return nil, ErrTriggerURLRequired
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, ErrSecretRequired
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if client == nil {
		client = pkgHTTP.NewClient(pkgHTTP.ClientConfig{Timeout: cfg.Timeout})
	}
	return &Trigger{l: l, client: client, cfg: cfg}, nil
}
