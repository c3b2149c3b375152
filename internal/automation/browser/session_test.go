package browser

import (
	"context"
	"testing"

	"followup-srv/internal/automation"
	"followup-srv/internal/model"
	"followup-srv/pkg/log"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *model.SiteProfile {
	return &model.SiteProfile{
		ID:        "site-1",
		Name:      "Portail Expert",
		SearchURL: "https://portal.example/search",
		AuthMode:  model.AuthModeFormLogin,
		Active:    true,
		Credentials: model.Credentials{
			model.CredentialUsername: "agent",
			model.CredentialPassword: "very-secret-pw",
		},
		Selectors: model.SelectorMap{
			SelSearchClaimInput: "#claim",
			SelSearchPlateInput: "#plate",
			SelResultRow:        "table tr.result",
		},
	}
}

func TestSession_StateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("search before connect", func(t *testing.T) {
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
		_, err := s.Search(ctx, "SIN-1", "")
		assert.ErrorIs(t, err, automation.ErrNavigation)

		var ae *automation.ActionError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, automation.ActionSearch, ae.Action)
		assert.Contains(t, ae.Message, "not connected")
	})

	t.Run("report before search", func(t *testing.T) {
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
		s.state = stateConnected
		_, err := s.CheckAndRetrieveReport(ctx)

		var ae *automation.ActionError
		require.ErrorAs(t, err, &ae)
		assert.Contains(t, ae.Message, "no record selected")
	})

	t.Run("cleanup without connect is idempotent", func(t *testing.T) {
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
		assert.NotPanics(t, func() {
			s.Cleanup()
			s.Cleanup()
		})
		assert.Equal(t, stateReleased, s.state)
	})

	t.Run("connect after cleanup", func(t *testing.T) {
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
		s.Cleanup()
		err := s.Connect(ctx)

		var ae *automation.ActionError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, automation.KindConnection, ae.Kind)
		assert.Contains(t, ae.Message, "released")
	})

	t.Run("message without composer is a no-op", func(t *testing.T) {
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
		s.state = stateSearched
		assert.NoError(t, s.SendMessage(ctx, "relance"))
	})

	t.Run("composer without submit fails", func(t *testing.T) {
		p := testProfile()
		p.Selectors[SelMessageInput] = "#msg"
		s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, p)
		s.state = stateSearched

		err := s.SendMessage(ctx, "relance")
		assert.ErrorIs(t, err, automation.ErrNavigation)
	})
}

func TestFactory_New(t *testing.T) {
	f := NewFactory(log.NewNop(), Config{})
	_, err := f.New(nil)
	assert.Error(t, err)

	c, err := f.New(testProfile())
	require.NoError(t, err)
	c.Cleanup()
}

func TestFail_RedactsCredentials(t *testing.T) {
	s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
	err := s.fail(automation.ActionConnect, automation.KindConnection,
		assert.AnError)
	assert.NotContains(t, err.Error(), "very-secret-pw")

	err = s.fail(automation.ActionConnect, automation.KindConnection,
		&pageError{msg: "typed very-secret-pw into #password"})
	assert.NotContains(t, err.Error(), "very-secret-pw")
}

type pageError struct{ msg string }

func (e *pageError) Error() string { return e.msg }

func TestOnEvent_CapturesOnlyWhenArmed(t *testing.T) {
	s := newSession(log.NewNop(), Config{StepTimeout: DefaultStepTimeout}, testProfile())
	ev := &network.EventResponseReceived{
		RequestID: "r1",
		Response:  &network.Response{MimeType: "application/pdf"},
	}

	s.onEvent(context.Background(), ev)
	assert.Empty(t, s.pending)

	s.armCapture()
	s.onEvent(context.Background(), ev)
	s.onEvent(context.Background(), &network.EventResponseReceived{
		RequestID: "r2",
		Response:  &network.Response{MimeType: "text/html"},
	})
	assert.Equal(t, map[network.RequestID]string{"r1": "application/pdf"}, s.pending)
	s.disarmCapture()
}
