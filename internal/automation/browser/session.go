package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

func (s *session) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateReleased:
		return automation.NewActionError(automation.ActionConnect, automation.KindConnection, automation.ErrReleased)
	case stateConnected, stateSearched:
		return nil
	}

	if s.browserCtx == nil {
		allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocatorOptions(s.cfg)...)
		browserCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithErrorf(func(format string, args ...any) {
			s.l.Debugf(context.Background(), "automation.browser: "+format, args...)
		}))
		chromedp.ListenTarget(browserCtx, func(ev any) { s.onEvent(browserCtx, ev) })
		s.browserCtx, s.cancelTab, s.cancelAlloc = browserCtx, cancelTab, cancelAlloc
	}

	actions := []chromedp.Action{network.Enable()}
	if s.profile.AuthMode == model.AuthModeAPIKey {
		key := s.profile.Credentials.Get(model.CredentialAPIKey)
		if key == "" {
			return s.fail(automation.ActionConnect, automation.KindConnection, errors.New("api_key credential is empty"))
		}
		actions = append(actions, network.SetExtraHTTPHeaders(network.Headers{"Authorization": "Bearer " + key}))
	}
	actions = append(actions, chromedp.Navigate(s.profile.SearchURL), chromedp.WaitReady("body", chromedp.ByQuery))

	if err := s.run(ctx, actions...); err != nil {
		return s.fail(automation.ActionConnect, automation.KindConnection, fmt.Errorf("open %s: %w", s.profile.SearchURL, err))
	}

	if s.profile.AuthMode == model.AuthModeFormLogin {
		if err := s.login(ctx); err != nil {
			return s.fail(automation.ActionConnect, automation.KindConnection, err)
		}
	}

	s.state = stateConnected
	return nil
}

func (s *session) login(ctx context.Context) error {
	sel := s.profile.Selectors
	for _, key := range []string{SelLoginUsername, SelLoginPassword, SelLoginSubmit} {
		if !sel.Has(key) {
			return fmt.Errorf("%w: %s", automation.ErrMissingSelector, key)
		}
	}

	user := sel.Get(SelLoginUsername)
	pass := sel.Get(SelLoginPassword)
	if err := s.run(ctx,
		chromedp.WaitVisible(user, chromedp.ByQuery),
		chromedp.WaitVisible(pass, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}

	if err := s.run(ctx,
		chromedp.SendKeys(user, s.profile.Credentials.Get(model.CredentialUsername), chromedp.ByQuery),
		chromedp.SendKeys(pass, s.profile.Credentials.Get(model.CredentialPassword), chromedp.ByQuery),
		chromedp.Click(sel.Get(SelLoginSubmit), chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("login submit: %w", err)
	}

	done := chromedp.WaitReady("body", chromedp.ByQuery)
	if sel.Has(SelLoginSuccess) {
		done = chromedp.WaitVisible(sel.Get(SelLoginSuccess), chromedp.ByQuery)
	}
	if err := s.run(ctx, done); err != nil {
		return fmt.Errorf("login did not complete: %w", err)
	}
	return nil
}

func (s *session) Search(ctx context.Context, primaryKey, secondaryKey string) (automation.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(automation.ActionSearch, stateConnected, stateSearched); err != nil {
		return automation.SearchResult{}, err
	}

	sel := s.profile.Selectors
	input, key, err := chooseSearchInput(sel, primaryKey, secondaryKey)
	if err != nil {
		return automation.SearchResult{}, s.fail(automation.ActionSearch, automation.KindNavigation, err)
	}
	row := resultRowSelector(sel)
	if row == "" {
		return automation.SearchResult{}, s.fail(automation.ActionSearch, automation.KindNavigation,
			fmt.Errorf("%w: %s", automation.ErrMissingSelector, SelResultRow))
	}

	submit := []chromedp.Action{
		chromedp.WaitVisible(input, chromedp.ByQuery),
		chromedp.Clear(input, chromedp.ByQuery),
		chromedp.SendKeys(input, key, chromedp.ByQuery),
	}
	if sel.Has(SelSearchSubmit) {
		submit = append(submit, chromedp.Click(sel.Get(SelSearchSubmit), chromedp.ByQuery))
	} else {
		submit = append(submit, chromedp.SendKeys(input, kb.Enter, chromedp.ByQuery))
	}
	if err := s.run(ctx, submit...); err != nil {
		return automation.SearchResult{}, s.fail(automation.ActionSearch, automation.KindNavigation, err)
	}

	empty := sel.Get(SelNoResults)
	var outcome string
	err = s.run(ctx, chromedp.Poll(resultPollExpr(row, empty), &outcome,
		chromedp.WithPollingTimeout(s.pollTimeout()),
		chromedp.WithPollingInterval(250*time.Millisecond),
	))
	switch {
	case err == nil:
	case errors.Is(err, chromedp.ErrPollingTimeout) && empty == "":
		// Without a no-results marker, a result row that never shows means no match.
		outcome = pollEmpty
	default:
		return automation.SearchResult{}, s.fail(automation.ActionSearch, automation.KindNavigation,
			fmt.Errorf("waiting for results: %w", err))
	}

	s.inRecord = false
	if outcome != pollFound {
		s.state = stateConnected
		return automation.SearchResult{Found: false}, nil
	}
	s.state = stateSearched
	return automation.SearchResult{Found: true}, nil
}

func (s *session) CheckAndRetrieveReport(ctx context.Context) (automation.ReportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(automation.ActionRetrieveReport, stateSearched); err != nil {
		return automation.ReportResult{}, err
	}
	if err := s.openRecord(ctx); err != nil {
		return automation.ReportResult{}, s.fail(automation.ActionRetrieveReport, automation.KindNavigation, err)
	}

	sel := s.profile.Selectors
	if sel.Has(SelDocumentsTab) {
		if err := s.run(ctx, chromedp.Click(sel.Get(SelDocumentsTab), chromedp.ByQuery, chromedp.NodeVisible)); err != nil {
			return automation.ReportResult{}, s.fail(automation.ActionRetrieveReport, automation.KindNavigation,
				fmt.Errorf("open documents tab: %w", err))
		}
	}
	if !sel.Has(SelReportLink) {
		return automation.ReportResult{Found: false}, nil
	}

	link := sel.Get(SelReportLink)
	var present bool
	err := s.run(ctx, chromedp.Poll(presencePollExpr(link), &present,
		chromedp.WithPollingTimeout(s.pollTimeout()/3),
		chromedp.WithPollingInterval(250*time.Millisecond),
	))
	if errors.Is(err, chromedp.ErrPollingTimeout) {
		return automation.ReportResult{Found: false}, nil
	}
	if err != nil {
		return automation.ReportResult{}, s.fail(automation.ActionRetrieveReport, automation.KindNavigation, err)
	}

	var (
		href     string
		hasHref  bool
		location string
	)
	if err := s.run(ctx,
		chromedp.Location(&location),
		chromedp.AttributeValue(link, "href", &href, &hasHref, chromedp.ByQuery),
	); err != nil {
		return automation.ReportResult{}, s.fail(automation.ActionRetrieveReport, automation.KindNavigation, err)
	}

	result := automation.ReportResult{Found: true}
	if hasHref && href != "" {
		result.URL = resolveURL(location, href)
	}

	s.armCapture()
	defer s.disarmCapture()
	if err := s.run(ctx, chromedp.Click(link, chromedp.ByQuery)); err != nil {
		// The link exists; a failed click still leaves the URL reference.
		s.l.Warnf(ctx, "automation.browser.CheckAndRetrieveReport: click on report link failed for %s: %s", s.profile.Name, s.scrub(err))
		return result, nil
	}

	select {
	case body := <-s.captured:
		result.Content = body.content
		result.ContentType = body.mimeType
	case <-time.After(s.pollTimeout() / 3):
	case <-ctx.Done():
	}
	return result, nil
}

func (s *session) SendMessage(ctx context.Context, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.require(automation.ActionSendMessage, stateSearched); err != nil {
		return err
	}

	sel := s.profile.Selectors
	if !sel.Has(SelMessageInput) {
		s.l.Debugf(ctx, "automation.browser.SendMessage: %s has no message composer, skipping", s.profile.Name)
		return nil
	}
	if !sel.Has(SelMessageSubmit) {
		return s.fail(automation.ActionSendMessage, automation.KindNavigation,
			fmt.Errorf("%w: %s", automation.ErrMissingSelector, SelMessageSubmit))
	}
	if err := s.openRecord(ctx); err != nil {
		return s.fail(automation.ActionSendMessage, automation.KindNavigation, err)
	}

	input := sel.Get(SelMessageInput)
	actions := []chromedp.Action{
		chromedp.WaitVisible(input, chromedp.ByQuery),
		chromedp.SendKeys(input, body, chromedp.ByQuery),
		chromedp.Click(sel.Get(SelMessageSubmit), chromedp.ByQuery),
	}
	if sel.Has(SelMessageConfirmation) {
		actions = append(actions, chromedp.WaitVisible(sel.Get(SelMessageConfirmation), chromedp.ByQuery))
	}
	if err := s.run(ctx, actions...); err != nil {
		return s.fail(automation.ActionSendMessage, automation.KindNavigation, err)
	}
	return nil
}

// Cleanup closes the tab and the browser process. It never panics and may be
// called in any state, any number of times.
func (s *session) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.l.Errorf(context.Background(), "automation.browser.Cleanup: recovered panic: %v", r)
		}
	}()

	if s.state == stateReleased {
		return
	}
	s.state = stateReleased

	if s.browserCtx != nil {
		if err := chromedp.Cancel(s.browserCtx); err != nil && !errors.Is(err, context.Canceled) {
			s.l.Warnf(context.Background(), "automation.browser.Cleanup: closing browser for %s: %s", s.profile.Name, s.scrub(err))
		}
	}
	if s.cancelTab != nil {
		s.cancelTab()
	}
	if s.cancelAlloc != nil {
		s.cancelAlloc()
	}
	s.browserCtx = nil
}

// openRecord clicks into the matched record once per search.
func (s *session) openRecord(ctx context.Context) error {
	if s.inRecord {
		return nil
	}
	sel := s.profile.Selectors
	if sel.Has(SelRecordLink) {
		if err := s.run(ctx,
			chromedp.Click(sel.Get(SelRecordLink), chromedp.ByQuery, chromedp.NodeVisible),
			chromedp.WaitReady("body", chromedp.ByQuery),
		); err != nil {
			return fmt.Errorf("open record: %w", err)
		}
	}
	s.inRecord = true
	return nil
}

// run executes actions in the tab, bounded by the step timeout and by ctx.
func (s *session) run(ctx context.Context, actions ...chromedp.Action) error {
	stepCtx, cancel := context.WithTimeout(s.browserCtx, s.cfg.StepTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(stepCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%v: %w", err, context.DeadlineExceeded)
	}
	return err
}

func (s *session) require(action string, allowed ...state) error {
	for _, st := range allowed {
		if s.state == st {
			return nil
		}
	}
	var err error
	switch s.state {
	case stateReleased:
		err = automation.ErrReleased
	case stateDisconnected:
		err = automation.ErrNotConnected
	default:
		err = automation.ErrNoRecordSelected
	}
	return automation.NewActionError(action, automation.KindNavigation, err)
}

func (s *session) fail(action string, kind automation.Kind, err error) error {
	return automation.NewActionError(action, kind, err, s.secrets...)
}

func (s *session) scrub(err error) string {
	return automation.NewActionError("", automation.KindNavigation, err, s.secrets...).Message
}

func (s *session) pollTimeout() time.Duration {
	return s.cfg.StepTimeout * 9 / 10
}

func (s *session) armCapture() {
	s.capMu.Lock()
	defer s.capMu.Unlock()
	s.pending = map[network.RequestID]string{}
	select {
	case <-s.captured:
	default:
	}
	s.armed = true
}

func (s *session) disarmCapture() {
	s.capMu.Lock()
	defer s.capMu.Unlock()
	s.armed = false
}

// onEvent runs on the chromedp event loop and must not block.
func (s *session) onEvent(browserCtx context.Context, ev any) {
	switch e := ev.(type) {
	case *network.EventResponseReceived:
		if e.Response == nil || !isReportMIME(e.Response.MimeType) {
			return
		}
		s.capMu.Lock()
		if s.armed {
			s.pending[e.RequestID] = e.Response.MimeType
		}
		s.capMu.Unlock()
	case *network.EventLoadingFinished:
		s.capMu.Lock()
		mime, ok := s.pending[e.RequestID]
		delete(s.pending, e.RequestID)
		s.capMu.Unlock()
		if ok {
			go s.fetchBody(browserCtx, e.RequestID, mime)
		}
	}
}

func (s *session) fetchBody(browserCtx context.Context, id network.RequestID, mime string) {
	c := chromedp.FromContext(browserCtx)
	if c == nil || c.Target == nil {
		return
	}
	ctx, cancel := context.WithTimeout(browserCtx, s.cfg.StepTimeout)
	defer cancel()

	body, err := network.GetResponseBody(id).Do(cdp.WithExecutor(ctx, c.Target))
	if err != nil {
		s.l.Debugf(ctx, "automation.browser.fetchBody: response body unavailable: %v", err)
		return
	}
	select {
	case s.captured <- capturedBody{content: body, mimeType: mime}:
	default:
	}
}
