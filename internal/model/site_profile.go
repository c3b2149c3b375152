package model

import (
	"encoding/json"
	"strings"
)

// AuthMode is how a portal session authenticates.
type AuthMode string

const (
	AuthModeNone      AuthMode = "none"
	AuthModeFormLogin AuthMode = "form_login"
	AuthModeAPIKey    AuthMode = "api_key"
)

// Credential keys.
const (
	CredentialUsername = "username"
	CredentialPassword = "password"
	CredentialAPIKey   = "api_key"
)

// Credentials is the opaque secret bag of a site profile.
type Credentials map[string]string

// Get returns the trimmed value for key.
func (c Credentials) Get(key string) string {
	return strings.TrimSpace(c[key])
}

// Empty reports whether no credential carries a value.
func (c Credentials) Empty() bool {
	for _, v := range c {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Secrets lists the non-empty values, used to scrub them out of error text.
func (c Credentials) Secrets() []string {
	out := make([]string, 0, len(c))
	for _, v := range c {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SelectorMap maps logical page elements to CSS selectors.
type SelectorMap map[string]string

// Get returns the trimmed selector for key, or "".
func (m SelectorMap) Get(key string) string {
	return strings.TrimSpace(m[key])
}

// Has reports whether key has a non-empty selector.
func (m SelectorMap) Has(key string) bool {
	return m.Get(key) != ""
}

// SiteProfile describes how to drive one expert portal.
// Credentials are decrypted on load and never serialized.
type SiteProfile struct {
	ID        string      `db:"id"`
	Name      string      `db:"name"`
	SearchURL string      `db:"search_url"`
	AuthMode  AuthMode    `db:"auth_mode"`
	Selectors SelectorMap `db:"-"`
	Active    bool        `db:"active"`

	Credentials Credentials `db:"-"`
}

// AutomationAvailable reports whether the portal can be driven: a search URL,
// the active flag, and credentials when the site uses a login form.
func (p *SiteProfile) AutomationAvailable() bool {
	if p == nil || !p.Active || strings.TrimSpace(p.SearchURL) == "" {
		return false
	}
	if p.AuthMode == AuthModeFormLogin && p.Credentials.Empty() {
		return false
	}
	return true
}

type siteProfileJSON struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	SearchURL      string      `json:"search_url"`
	AuthMode       AuthMode    `json:"auth_mode"`
	Selectors      SelectorMap `json:"selectors"`
	Active         bool        `json:"active"`
	HasCredentials bool        `json:"has_credentials"`
}

// MarshalJSON exposes has_credentials in place of the secret bag.
func (p SiteProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(siteProfileJSON{
		ID:             p.ID,
		Name:           p.Name,
		SearchURL:      p.SearchURL,
		AuthMode:       p.AuthMode,
		Selectors:      p.Selectors,
		Active:         p.Active,
		HasCredentials: !p.Credentials.Empty(),
	})
}
