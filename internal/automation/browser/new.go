package browser

import (
	"errors"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"
	"followup-srv/pkg/log"

	"github.com/chromedp/cdproto/network"
)

var errProfileRequired = errors.New("browser: site profile is required")

// NewFactory returns an automation.Factory backed by headless Chrome.
func NewFactory(l log.Logger, cfg Config) automation.Factory {
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultStepTimeout
	}
	return &factory{l: l, cfg: cfg}
}

// New returns a disconnected session. No browser process starts until Connect.
func (f *factory) New(profile *model.SiteProfile) (automation.Capability, error) {
	if profile == nil {
		return nil, errProfileRequired
	}
	return newSession(f.l, f.cfg, profile), nil
}

func newSession(l log.Logger, cfg Config, profile *model.SiteProfile) *session {
	return &session{
		l:        l,
		cfg:      cfg,
		profile:  profile,
		secrets:  profile.Credentials.Secrets(),
		pending:  map[network.RequestID]string{},
		captured: make(chan capturedBody, 1),
	}
}
