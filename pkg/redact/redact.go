package redact

import (
	"regexp"
	"strings"
)

// Marker replaces every credential-shaped substring.
const Marker = "[REDACTED]"

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Order matters: key=value pairs run before the bare vendor formats so the key
// name is kept for readability.
var rules = []rule{
	// Authorization: Bearer <token> / Basic <b64>
	{regexp.MustCompile(`(?i)\b(bearer|basic)\s+[A-Za-z0-9\-._~+/]+=*`), "$1 " + Marker},
	// password=..., token: ..., "api_key":"..."
	{regexp.MustCompile(`(?i)("?(?:password|passwd|pwd|mot_de_passe|secret|token|access_token|refresh_token|api[_-]?key|apikey|client_secret|auth)"?\s*[:=]\s*"?)([^"\s&,;}]+)`), "${1}" + Marker},
	// user:pass@host in URLs
	{regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://[^/\s:@]+:)[^@\s/]+@`), "${1}" + Marker + "@"},
	// JWT
	{regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\b`), Marker},
	// Stripe
	{regexp.MustCompile(`\b(?:sk|pk|rk)_(?:live|test)_[A-Za-z0-9]{10,}\b`), Marker},
	// SendGrid
	{regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{16,}\.[A-Za-z0-9_-]{16,}\b`), Marker},
	// Resend
	{regexp.MustCompile(`\bre_[A-Za-z0-9]{16,}\b`), Marker},
	// Twilio account / API key SIDs
	{regexp.MustCompile(`\b(?:AC|SK)[0-9a-fA-F]{32}\b`), Marker},
	// AWS access key id
	{regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`), Marker},
	// Google API key
	{regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}\b`), Marker},
	// Generic OpenAI-style keys
	{regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}\b`), Marker},
}

// String masks credential-shaped substrings in s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

// Error returns the redacted message of err, or "" for nil.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Secrets masks the exact values given, then applies String. Used when the
// caller knows which secrets were in play (e.g. a portal credentials bag).
func Secrets(s string, secrets ...string) string {
	for _, v := range secrets {
		if len(v) < 4 {
			continue
		}
		s = strings.ReplaceAll(s, v, Marker)
	}
	return String(s)
}
