package postgre

import (
	"testing"

	"followup-srv/internal/audit/repository"
	"followup-srv/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildListAttemptsQuery(t *testing.T) {
	t.Run("dossier only", func(t *testing.T) {
		q, args := buildListAttemptsQuery(repository.ListAttemptsOptions{DossierID: "d1"})
		assert.Contains(t, q, "WHERE dossier_id = $1 ORDER BY created_at DESC, id DESC")
		assert.NotContains(t, q, "LIMIT")
		assert.Equal(t, []any{"d1"}, args)
	})

	t.Run("channel, limit and offset", func(t *testing.T) {
		q, args := buildListAttemptsQuery(repository.ListAttemptsOptions{
			DossierID: "d1",
			Channel:   model.ChannelSystemStop,
			Limit:     20,
			Offset:    40,
		})
		assert.Contains(t, q, "AND channel = $2")
		assert.Contains(t, q, "LIMIT $3 OFFSET $4")
		assert.Equal(t, []any{"d1", model.ChannelSystemStop, 20, 40}, args)
	})
}

func TestBuildCountAttemptsQuery(t *testing.T) {
	q, args := buildCountAttemptsQuery(repository.ListAttemptsOptions{
		DossierID: "d1",
		Channel:   model.ChannelClientSMS,
		Limit:     20,
		Offset:    40,
	})
	assert.Equal(t, "SELECT COUNT(*) FROM reminder_attempts WHERE dossier_id = $1 AND channel = $2", q)
	assert.Equal(t, []any{"d1", model.ChannelClientSMS}, args)
}
