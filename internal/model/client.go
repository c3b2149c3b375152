package model

import "strings"

// Client is the vehicle owner attached to a dossier.
type Client struct {
	ID        string `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Email     string `json:"email" db:"email"`
	Phone     string `json:"phone" db:"phone"`
}

// FullName joins the non-empty name parts.
func (c Client) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// ClientPreference holds per-client channel opt-outs. A nil field means allowed.
type ClientPreference struct {
	ClientID     string `json:"client_id" db:"client_id"`
	SMSEnabled   *bool  `json:"sms_enabled,omitempty" db:"sms_enabled"`
	EmailEnabled *bool  `json:"email_enabled,omitempty" db:"email_enabled"`
}

// SMSAllowed is false only when SMS was explicitly disabled. Safe on a nil receiver.
func (p *ClientPreference) SMSAllowed() bool {
	return p == nil || p.SMSEnabled == nil || *p.SMSEnabled
}

// EmailAllowed is false only when email was explicitly disabled. Safe on a nil receiver.
func (p *ClientPreference) EmailAllowed() bool {
	return p == nil || p.EmailEnabled == nil || *p.EmailEnabled
}
