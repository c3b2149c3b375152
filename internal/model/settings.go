package model

import (
	"strconv"
	"strings"
)

// Keys of the reminder_settings table.
const (
	SettingSenderEmail            = "sender_email"
	SettingMinDaysBetweenReminder = "min_days_between_reminders"
	SettingPortalRemindersEnabled = "portal_reminders_enabled"
	SettingClientSMSEnabled       = "client_sms_enabled"
	SettingTemplateExpertPortal   = "template_expert_portal"
	SettingTemplateExpertEmail    = "template_expert_email"
	SettingTemplateClientSMS      = "template_client_sms"
	SettingTemplateClientEmail    = "template_client_email"
	SettingSubjectExpertEmail     = "subject_expert_email"
	SettingSubjectClientEmail     = "subject_client_email"
)

// DefaultMinDaysBetweenReminders applies when the setting is absent or invalid.
const DefaultMinDaysBetweenReminders = 3

const (
	defaultTemplateExpertPortal = "Bonjour, nous restons dans l'attente de votre rapport d'expertise pour le dossier {{.DossierRef}} (sinistre {{.ClaimNumber}}, véhicule {{.Plate}}). Merci de nous le transmettre dès que possible."
	defaultTemplateExpertEmail  = "Bonjour {{.ExpertName}},\n\nNous restons dans l'attente de votre rapport d'expertise pour le dossier {{.DossierRef}} (sinistre {{.ClaimNumber}}, véhicule {{.Plate}}), ouvert depuis {{.DaysWaited}} jours.\n\nMerci de nous le transmettre dès que possible.\n\nCordialement"
	defaultTemplateClientSMS    = "Bonjour {{.ClientName}}, votre dossier {{.DossierRef}} attend toujours le rapport de l'expert ({{.DaysWaited}} jours). Nous l'avons relancé et revenons vers vous dès réception."
	defaultTemplateClientEmail  = "Bonjour {{.ClientName}},\n\nVotre dossier {{.DossierRef}} (véhicule {{.Plate}}) attend toujours le rapport de l'expert depuis {{.DaysWaited}} jours. Nous avons relancé l'expert et revenons vers vous dès réception.\n\nCordialement"
	defaultSubjectExpertEmail   = "Relance rapport d'expertise - dossier {{.DossierRef}}"
	defaultSubjectClientEmail   = "Suivi de votre dossier {{.DossierRef}}"
)

// ReminderTemplates holds the text/template sources per channel.
type ReminderTemplates struct {
	ExpertPortal string `json:"expert_portal"`
	ExpertEmail  string `json:"expert_email"`
	ClientSMS    string `json:"client_sms"`
	ClientEmail  string `json:"client_email"`
}

// ReminderSubjects holds the email subject templates.
type ReminderSubjects struct {
	ExpertEmail string `json:"expert_email"`
	ClientEmail string `json:"client_email"`
}

// ReminderSettings is loaded once per cycle and never mutated afterwards.
type ReminderSettings struct {
	SenderEmail             string            `json:"sender_email"`
	MinDaysBetweenReminders int               `json:"min_days_between_reminders"`
	PortalRemindersEnabled  bool              `json:"portal_reminders_enabled"`
	ClientSMSEnabled        bool              `json:"client_sms_enabled"`
	Templates               ReminderTemplates `json:"templates"`
	Subjects                ReminderSubjects  `json:"subjects"`
}

// DefaultReminderSettings returns the settings used for absent keys.
// The sender identity has no default.
func DefaultReminderSettings() ReminderSettings {
	return ReminderSettings{
		MinDaysBetweenReminders: DefaultMinDaysBetweenReminders,
		PortalRemindersEnabled:  true,
		ClientSMSEnabled:        true,
		Templates: ReminderTemplates{
			ExpertPortal: defaultTemplateExpertPortal,
			ExpertEmail:  defaultTemplateExpertEmail,
			ClientSMS:    defaultTemplateClientSMS,
			ClientEmail:  defaultTemplateClientEmail,
		},
		Subjects: ReminderSubjects{
			ExpertEmail: defaultSubjectExpertEmail,
			ClientEmail: defaultSubjectClientEmail,
		},
	}
}

// ParseReminderSettings overlays the recognized keys of kv on the defaults.
// Unknown keys are ignored; unparsable values keep the default.
func ParseReminderSettings(kv map[string]string) ReminderSettings {
	s := DefaultReminderSettings()
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(kv[key]); v != "" {
			*dst = v
		}
	}

	str(SettingSenderEmail, &s.SenderEmail)
	str(SettingTemplateExpertPortal, &s.Templates.ExpertPortal)
	str(SettingTemplateExpertEmail, &s.Templates.ExpertEmail)
	str(SettingTemplateClientSMS, &s.Templates.ClientSMS)
	str(SettingTemplateClientEmail, &s.Templates.ClientEmail)
	str(SettingSubjectExpertEmail, &s.Subjects.ExpertEmail)
	str(SettingSubjectClientEmail, &s.Subjects.ClientEmail)

	if v, ok := kv[SettingMinDaysBetweenReminder]; ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
			s.MinDaysBetweenReminders = n
		}
	}
	if v, ok := kv[SettingPortalRemindersEnabled]; ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			s.PortalRemindersEnabled = b
		}
	}
	if v, ok := kv[SettingClientSMSEnabled]; ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			s.ClientSMSEnabled = b
		}
	}
	return s
}
