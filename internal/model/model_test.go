package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDossier_DaysSinceAnchor(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	entry := now.Add(-20 * 24 * time.Hour)

	t.Run("entry date only", func(t *testing.T) {
		d := Dossier{EntryDate: entry}
		assert.Equal(t, 20, d.DaysSinceAnchor(now))
	})

	t.Run("later reminder wins", func(t *testing.T) {
		last := now.Add(-36 * time.Hour)
		d := Dossier{EntryDate: entry, LastExpertReminderAt: &last}
		assert.Equal(t, 1, d.DaysSinceAnchor(now))
	})

	t.Run("reminder before entry is ignored", func(t *testing.T) {
		last := entry.Add(-time.Hour)
		d := Dossier{EntryDate: entry, LastExpertReminderAt: &last}
		assert.Equal(t, entry, d.ReminderAnchor())
	})

	t.Run("future anchor", func(t *testing.T) {
		d := Dossier{EntryDate: now.Add(time.Hour)}
		assert.Equal(t, 0, d.DaysSinceAnchor(now))
	})
}

func TestDossierStatus(t *testing.T) {
	assert.True(t, DossierStatusAwaitingExpert.AwaitingReport())
	assert.True(t, DossierStatusExpertReminded.AwaitingReport())
	assert.False(t, DossierStatusNew.AwaitingReport())

	assert.True(t, DossierStatusPaid.PastReport())
	assert.False(t, DossierStatusDisputed.PastReport())
	assert.False(t, DossierStatusExpertReminded.PastReport())
}

func TestClientPreference_DefaultAllow(t *testing.T) {
	var missing *ClientPreference
	assert.True(t, missing.SMSAllowed())
	assert.True(t, missing.EmailAllowed())

	off := false
	p := &ClientPreference{EmailEnabled: &off}
	assert.True(t, p.SMSAllowed())
	assert.False(t, p.EmailAllowed())
}

func TestSiteProfile_AutomationAvailable(t *testing.T) {
	base := func() *SiteProfile {
		return &SiteProfile{SearchURL: "https://portal.example/search", Active: true, AuthMode: AuthModeNone}
	}

	assert.True(t, base().AutomationAvailable())

	p := base()
	p.Active = false
	assert.False(t, p.AutomationAvailable())

	p = base()
	p.SearchURL = " "
	assert.False(t, p.AutomationAvailable())

	p = base()
	p.AuthMode = AuthModeFormLogin
	assert.False(t, p.AutomationAvailable())
	p.Credentials = Credentials{CredentialUsername: "agent", CredentialPassword: "pw"}
	assert.True(t, p.AutomationAvailable())

	var nilProfile *SiteProfile
	assert.False(t, nilProfile.AutomationAvailable())
}

func TestSiteProfile_MarshalJSONHidesCredentials(t *testing.T) {
	p := SiteProfile{
		ID:          "p1",
		SearchURL:   "https://portal.example",
		AuthMode:    AuthModeFormLogin,
		Credentials: Credentials{CredentialPassword: "s3cret-value"},
	}
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret-value")

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, true, out["has_credentials"])
	_, hasBag := out["credentials"]
	assert.False(t, hasBag)
}

func TestParseReminderSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s := ParseReminderSettings(nil)
		assert.Equal(t, DefaultMinDaysBetweenReminders, s.MinDaysBetweenReminders)
		assert.True(t, s.PortalRemindersEnabled)
		assert.Empty(t, s.SenderEmail)
		assert.NotEmpty(t, s.Templates.ExpertEmail)
	})

	t.Run("overrides", func(t *testing.T) {
		s := ParseReminderSettings(map[string]string{
			SettingSenderEmail:            "relances@garage.fr",
			SettingMinDaysBetweenReminder: "2",
			SettingPortalRemindersEnabled: "false",
			SettingTemplateClientSMS:      "Hi {{.ClientName}}",
		})
		assert.Equal(t, "relances@garage.fr", s.SenderEmail)
		assert.Equal(t, 2, s.MinDaysBetweenReminders)
		assert.False(t, s.PortalRemindersEnabled)
		assert.Equal(t, "Hi {{.ClientName}}", s.Templates.ClientSMS)
	})

	t.Run("invalid values keep defaults", func(t *testing.T) {
		s := ParseReminderSettings(map[string]string{
			SettingMinDaysBetweenReminder: "-1",
			SettingClientSMSEnabled:       "maybe",
		})
		assert.Equal(t, DefaultMinDaysBetweenReminders, s.MinDaysBetweenReminders)
		assert.True(t, s.ClientSMSEnabled)
	})
}

func TestVehicle_SearchKey(t *testing.T) {
	assert.Equal(t, "AB-123-CD", (&Vehicle{Plate: "AB-123-CD", VIN: "VF1"}).SearchKey())
	assert.Equal(t, "VF1", (&Vehicle{VIN: "VF1"}).SearchKey())
	var v *Vehicle
	assert.Empty(t, v.SearchKey())
}

func TestChannelAndOutcome_Valid(t *testing.T) {
	assert.True(t, ChannelSystemStop.Valid())
	assert.False(t, Channel("fax").Valid())
	assert.True(t, OutcomeFailed.Valid())
	assert.False(t, Outcome("").Valid())
}
