package usecase

import (
	"context"
	"testing"
	"time"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder"
	"followup-srv/internal/reminder/repository/memory"

	"followup-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShouldStop_Precedence(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		dossier  func() model.Dossier
		docs     []model.Document
		want     reminder.StopDecision
		wantStop int
	}{
		{
			name:    "no stop",
			dossier: func() model.Dossier { return awaitingDossier("d", 5) },
			want:    reminder.StopDecision{},
		},
		{
			name:    "earliest stopping document wins",
			dossier: func() model.Dossier { return awaitingDossier("d", 5) },
			docs: []model.Document{
				{ID: "x", DossierID: "d", Type: "photo", CreatedAt: testNow.Add(-3 * time.Hour)},
				{ID: "y", DossierID: "d", Type: model.DocumentTypePaymentProof, CreatedAt: testNow},
				{ID: "z", DossierID: "d", Type: model.DocumentTypeSettlementRecord, CreatedAt: testNow.Add(-time.Hour)},
			},
			want:     reminder.StopDecision{Stop: true, Reason: reminder.ReasonArtifactReceived, ArtifactType: model.DocumentTypeSettlementRecord},
			wantStop: 1,
		},
		{
			name: "status advanced",
			dossier: func() model.Dossier {
				d := awaitingDossier("d", 5)
				d.Status = model.DossierStatusInRepair
				return d
			},
			want:     reminder.StopDecision{Stop: true, Reason: reminder.ReasonStatusAdvanced},
			wantStop: 1,
		},
		{
			name: "timestamp already set leaves no new entry",
			dossier: func() model.Dossier {
				d := awaitingDossier("d", 5)
				d.ReportReceivedAt = ptr(testNow)
				return d
			},
			want: reminder.StopDecision{Stop: true, Reason: reminder.ReasonReportTimestamp},
		},
		{
			name: "disputed is not past report",
			dossier: func() model.Dossier {
				d := awaitingDossier("d", 5)
				d.Status = model.DossierStatusDisputed
				return d
			},
			want: reminder.StopDecision{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t)
			e.repo.PutDossier(tt.dossier())
			for _, doc := range tt.docs {
				e.repo.PutDocument(doc)
			}

			got, err := e.uc.ShouldStop(ctx, "d")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, e.entries("d", model.ChannelSystemStop), tt.wantStop)
		})
	}
}

func TestShouldStop_StatusAdvancedKeepsStatus(t *testing.T) {
	e := newEngine(t)
	d := awaitingDossier("d", 5)
	d.Status = model.DossierStatusInvoiced
	e.repo.PutDossier(d)

	_, err := e.uc.ShouldStop(context.Background(), "d")
	require.NoError(t, err)

	after := e.dossier(t, "d")
	assert.Equal(t, model.DossierStatusInvoiced, after.Status)
	assert.NotNil(t, after.ReportReceivedAt)
}

func TestShouldStop_Idempotent(t *testing.T) {
	e := newEngine(t)
	e.repo.PutDossier(awaitingDossier("d", 5))
	e.repo.PutDocument(model.Document{ID: "r", DossierID: "d", Type: model.DocumentTypeExpertReport, CreatedAt: testNow})

	for i := 0; i < 2; i++ {
		got, err := e.uc.ShouldStop(context.Background(), "d")
		require.NoError(t, err)
		assert.True(t, got.Stop)
	}

	assert.Len(t, e.entries("d", model.ChannelSystemStop), 1)
	after := e.dossier(t, "d")
	assert.Equal(t, model.DossierStatusReportReceived, after.Status)
	assert.True(t, testNow.Equal(*after.ReportReceivedAt))
}

func TestShouldStop_StatusWriteFailureStillStopsOnce(t *testing.T) {
	e := newEngine(t)
	e.repo.FailOn(memory.OpMarkReportReceived, errBoom)
	e.repo.PutDossier(awaitingDossier("d", 5))
	e.repo.PutDocument(model.Document{ID: "r", DossierID: "d", Type: model.DocumentTypeExpertReport, CreatedAt: testNow})

	for i := 0; i < 2; i++ {
		res, err := e.uc.RunCycle(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Stopped)
	}
	assert.Len(t, e.entries("d", model.ChannelSystemStop), 1)
	assert.Equal(t, model.DossierStatusAwaitingExpert, e.dossier(t, "d").Status)

	// The write is retried on the next evaluation once the store recovers.
	e.repo.FailOn(memory.OpMarkReportReceived, nil)
	_, err := e.uc.ShouldStop(context.Background(), "d")
	require.NoError(t, err)
	assert.Equal(t, model.DossierStatusReportReceived, e.dossier(t, "d").Status)
	assert.Len(t, e.entries("d", model.ChannelSystemStop), 1)
}

func TestShouldStop_Errors(t *testing.T) {
	e := newEngine(t)

	_, err := e.uc.ShouldStop(context.Background(), " ")
	assert.ErrorIs(t, err, reminder.ErrDossierRequired)

	_, err = e.uc.ShouldStop(context.Background(), "missing")
	assert.ErrorIs(t, err, reminder.ErrDossierNotFound)

	e.repo.PutDossier(awaitingDossier("d", 5))
	e.repo.FailOn(memory.OpListStopDocuments, errBoom)
	_, err = e.uc.ShouldStop(context.Background(), "d")
	assert.Error(t, err)
}

func TestShouldStop_UnreadableLedgerDefersStopEntry(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := newEngine(t)
	e.uc.l = log.NewWithCore(core)
	e.uc.recorder = unreadableLedger{Recorder: e.recorder}
	e.repo.FailOn(memory.OpMarkReportReceived, errBoom)
	e.repo.PutDossier(awaitingDossier("d", 5))
	e.repo.PutDocument(model.Document{ID: "r", DossierID: "d", Type: model.DocumentTypeExpertReport, CreatedAt: testNow})

	got, err := e.uc.ShouldStop(context.Background(), "d")
	require.NoError(t, err)
	assert.True(t, got.Stop)
	assert.Empty(t, e.entries("d", model.ChannelSystemStop))
	assert.Equal(t, 1, logs.FilterMessageSnippet("system_stop for dossier d deferred").Len())
}
