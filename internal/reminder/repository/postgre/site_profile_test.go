package postgre

import (
	"context"
	"database/sql"
	"testing"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
	"followup-srv/pkg/encrypter"
	"followup-srv/pkg/log"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSiteProfile(t *testing.T) {
	enc, err := encrypter.New("site-credentials-test-passphrase")
	require.NoError(t, err)
	r := &implRepository{enc: enc, l: log.NewNop()}
	ctx := context.Background()

	sealed, err := enc.EncryptJSON(model.Credentials{model.CredentialUsername: "garage", model.CredentialPassword: "s3cret!"})
	require.NoError(t, err)

	t.Run("decrypts credentials and parses selectors", func(t *testing.T) {
		p, err := r.toSiteProfile(ctx, siteProfileRow{
			ID:                   "p1",
			Name:                 "Cabinet Expert",
			SearchURL:            "https://portal.example/search",
			AuthMode:             "form_login",
			CredentialsEncrypted: sql.NullString{String: sealed, Valid: true},
			Selectors:            []byte(`{"search_input":"#q","result_row":".row"}`),
			Active:               true,
		})
		require.NoError(t, err)
		assert.Equal(t, "garage", p.Credentials.Get(model.CredentialUsername))
		assert.Equal(t, "#q", p.Selectors.Get("search_input"))
		assert.True(t, p.AutomationAvailable())
	})

	t.Run("no credentials", func(t *testing.T) {
		p, err := r.toSiteProfile(ctx, siteProfileRow{ID: "p2", AuthMode: "none", Active: true, SearchURL: "https://x"})
		require.NoError(t, err)
		assert.True(t, p.Credentials.Empty())
		assert.NotNil(t, p.Selectors)
	})

	t.Run("tampered credentials", func(t *testing.T) {
		_, err := r.toSiteProfile(ctx, siteProfileRow{
			ID:                   "p3",
			CredentialsEncrypted: sql.NullString{String: "not-a-ciphertext", Valid: true},
		})
		assert.ErrorIs(t, err, repository.ErrCredentialsDecrypt)
	})

	t.Run("malformed selectors are dropped", func(t *testing.T) {
		p, err := r.toSiteProfile(ctx, siteProfileRow{ID: "p4", Selectors: []byte(`{oops`)})
		require.NoError(t, err)
		assert.Empty(t, p.Selectors)
	})
}
