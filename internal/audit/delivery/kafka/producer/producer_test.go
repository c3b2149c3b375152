package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaDelivery "followup-srv/internal/audit/delivery/kafka"
	"followup-srv/internal/model"
	"followup-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKafka struct {
	key, value []byte
	err        error
}

func (f *fakeKafka) Publish(key, value []byte) error {
	f.key, f.value = key, value
	return f.err
}
func (f *fakeKafka) Close() error       { return nil }
func (f *fakeKafka) HealthCheck() error { return nil }

func TestPublishAttemptRecorded(t *testing.T) {
	at := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	attempt := model.ReminderAttempt{
		ID:        "a1",
		DossierID: "d1",
		Channel:   model.ChannelExpertEmail,
		Outcome:   model.OutcomeSent,
		Recipient: "expert@cabinet.fr",
		CreatedAt: at,
	}

	t.Run("keyed by dossier", func(t *testing.T) {
		k := &fakeKafka{}
		require.NoError(t, New(log.NewNop(), k).PublishAttemptRecorded(context.Background(), attempt))

		assert.Equal(t, "d1", string(k.key))
		var msg kafkaDelivery.AttemptRecordedMessage
		require.NoError(t, json.Unmarshal(k.value, &msg))
		assert.Equal(t, "expert_email", msg.Channel)
		assert.Equal(t, "sent", msg.Outcome)
		assert.True(t, at.Equal(msg.CreatedAt))
	})

	t.Run("broker error is wrapped", func(t *testing.T) {
		boom := errors.New("broker down")
		err := New(log.NewNop(), &fakeKafka{err: boom}).PublishAttemptRecorded(context.Background(), attempt)
		assert.ErrorIs(t, err, boom)
	})
}
