package browser

import (
	"context"
	"sync"
	"time"

	"followup-srv/internal/model"
	"followup-srv/pkg/log"

	"github.com/chromedp/cdproto/network"
)

// DefaultStepTimeout bounds every page interaction.
const DefaultStepTimeout = 30 * time.Second

// Selector keys understood by the driver.
const (
	SelLoginUsername       = "login_username"
	SelLoginPassword       = "login_password"
	SelLoginSubmit         = "login_submit"
	SelLoginSuccess        = "login_success"
	SelSearchClaimInput    = "search_claim_input"
	SelSearchPlateInput    = "search_plate_input"
	SelSearchInput         = "search_input"
	SelSearchSubmit        = "search_submit"
	SelResultRow           = "result_row"
	SelNoResults           = "no_results"
	SelRecordLink          = "record_link"
	SelDocumentsTab        = "documents_tab"
	SelReportLink          = "report_link"
	SelMessageInput        = "message_input"
	SelMessageSubmit       = "message_submit"
	SelMessageConfirmation = "message_confirmation"
)

// Config tunes the headless browser.
type Config struct {
	Headless    bool
	NoSandbox   bool
	ChromePath  string
	UserAgent   string
	StepTimeout time.Duration
}

type state int

const (
	stateDisconnected state = iota
	stateConnected
	stateSearched
	stateReleased
)

func (s state) String() string {
	switch s {
	case stateConnected:
		return "connected"
	case stateSearched:
		return "searched"
	case stateReleased:
		return "released"
	default:
		return "disconnected"
	}
}

type capturedBody struct {
	content  []byte
	mimeType string
}

type factory struct {
	l   log.Logger
	cfg Config
}

// session is one chromedp tab bound to one site profile.
type session struct {
	l       log.Logger
	cfg     Config
	profile *model.SiteProfile
	secrets []string

	mu          sync.Mutex
	state       state
	inRecord    bool
	browserCtx  context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	capMu    sync.Mutex
	armed    bool
	pending  map[network.RequestID]string
	captured chan capturedBody
}
