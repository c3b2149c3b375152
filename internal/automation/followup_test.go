package automation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCapability struct {
	connectErr error
	search     SearchResult
	searchErr  error
	report     ReportResult
	reportErr  error
	sendErr    error

	calls []string
	sent  string
}

func (f *fakeCapability) Connect(ctx context.Context) error {
	f.calls = append(f.calls, ActionConnect)
	return f.connectErr
}

func (f *fakeCapability) Search(ctx context.Context, primaryKey, secondaryKey string) (SearchResult, error) {
	f.calls = append(f.calls, ActionSearch)
	return f.search, f.searchErr
}

func (f *fakeCapability) CheckAndRetrieveReport(ctx context.Context) (ReportResult, error) {
	f.calls = append(f.calls, ActionRetrieveReport)
	return f.report, f.reportErr
}

func (f *fakeCapability) SendMessage(ctx context.Context, body string) error {
	f.calls = append(f.calls, ActionSendMessage)
	f.sent = body
	return f.sendErr
}

func (f *fakeCapability) Cleanup() {}

func TestExecuteFollowUp(t *testing.T) {
	ctx := context.Background()

	t.Run("message sent", func(t *testing.T) {
		fc := &fakeCapability{search: SearchResult{Found: true}}
		res, err := ExecuteFollowUp(ctx, fc, "SIN-1", "AB-123-CD", "relance")
		require.NoError(t, err)
		assert.Equal(t, FollowUpMessageSent, res.Outcome)
		assert.Equal(t, "relance", fc.sent)
		assert.Equal(t, []string{ActionConnect, ActionSearch, ActionRetrieveReport, ActionSendMessage}, fc.calls)
	})

	t.Run("report short-circuits", func(t *testing.T) {
		fc := &fakeCapability{
			search: SearchResult{Found: true},
			report: ReportResult{Found: true, URL: "https://portal/r.pdf"},
		}
		res, err := ExecuteFollowUp(ctx, fc, "SIN-1", "", "relance")
		require.NoError(t, err)
		assert.Equal(t, FollowUpReportFound, res.Outcome)
		assert.Equal(t, "https://portal/r.pdf", res.Report.URL)
		assert.NotContains(t, fc.calls, ActionSendMessage)
	})

	t.Run("not found fails", func(t *testing.T) {
		fc := &fakeCapability{}
		_, err := ExecuteFollowUp(ctx, fc, "SIN-1", "", "relance")

		var ae *ActionError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, ActionSearch, ae.Action)
		assert.Equal(t, KindNotFound, ae.Kind)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{ActionConnect, ActionSearch}, fc.calls)
	})

	t.Run("connect failure aborts", func(t *testing.T) {
		fc := &fakeCapability{connectErr: errors.New("dial tcp: refused")}
		_, err := ExecuteFollowUp(ctx, fc, "SIN-1", "", "relance")

		assert.ErrorIs(t, err, ErrConnection)
		assert.Equal(t, []string{ActionConnect}, fc.calls)
	})

	t.Run("deadline becomes timeout", func(t *testing.T) {
		fc := &fakeCapability{search: SearchResult{Found: true}, sendErr: fmt.Errorf("wait submit: %w", context.DeadlineExceeded)}
		_, err := ExecuteFollowUp(ctx, fc, "SIN-1", "", "relance")

		var ae *ActionError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, ActionSendMessage, ae.Action)
		assert.Equal(t, KindTimeout, ae.Kind)
	})

	t.Run("capability action error kept", func(t *testing.T) {
		inner := &ActionError{Action: ActionConnect, Kind: KindTimeout, Message: "login form never appeared"}
		fc := &fakeCapability{connectErr: inner}
		_, err := ExecuteFollowUp(ctx, fc, "SIN-1", "", "relance")
		assert.Same(t, inner, err)
	})
}

func TestNewActionError_Redacts(t *testing.T) {
	err := NewActionError(ActionConnect, KindConnection,
		errors.New("login as agent with password=hunter22 failed: secret-pass-value rejected"),
		"secret-pass-value")

	assert.NotContains(t, err.Message, "hunter22")
	assert.NotContains(t, err.Message, "secret-pass-value")
	assert.Contains(t, err.Message, "[REDACTED]")
}
