package sms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	pkgHTTP "followup-srv/pkg/http"
	"followup-srv/pkg/redact"
)

const (
	messagePath   = "/message"
	statusUnknown = "accepted"
	maxErrorBody  = 256
)

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.GatewayURL) == "" {
		return ErrGatewayURLRequired
	}
	return nil
}

func (s *gatewaySender) Send(ctx context.Context, to, body string) (Receipt, error) {
	if strings.TrimSpace(to) == "" {
		return Receipt{}, ErrRecipientRequired
	}
	if strings.TrimSpace(body) == "" {
		return Receipt{}, ErrEmptyBody
	}

	payload := sendPayload{
		TextMessage:  textMessage{Text: body},
		PhoneNumbers: []string{to},
	}
	raw, status, err := s.client.Post(ctx, s.endpoint(), payload, s.authHeaders())
	if err != nil {
		return Receipt{}, fmt.Errorf("sms: gateway call: %w", err)
	}
	if !pkgHTTP.IsSuccess(status) {
		return Receipt{}, fmt.Errorf("%w: status %d: %s", ErrRejected, status, truncate(redact.String(string(raw))))
	}

	var resp sendResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			s.l.Warnf(ctx, "pkg.sms.Send: unreadable gateway acknowledgement: %v", err)
		}
	}
	receipt := Receipt{MessageID: resp.ID, Status: resp.State}
	if receipt.Status == "" {
		receipt.Status = resp.Status
	}
	if receipt.Status == "" {
		receipt.Status = statusUnknown
	}
	return receipt, nil
}

func (s *gatewaySender) endpoint() string {
	base := strings.TrimRight(s.cfg.GatewayURL, "/")
	if strings.HasSuffix(base, messagePath) {
		return base
	}
	return base + messagePath
}

func (s *gatewaySender) authHeaders() map[string]string {
	if s.cfg.APIKey != "" {
		return pkgHTTP.BearerHeader(s.cfg.APIKey)
	}
	if s.cfg.Username == "" {
		return nil
	}
	token := base64.StdEncoding.EncodeToString([]byte(s.cfg.Username + ":" + s.cfg.Password))
	return map[string]string{"Authorization": "Basic " + token}
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	return s[:maxErrorBody]
}
