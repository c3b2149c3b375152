package sms

import (
	"errors"
	"time"

	pkgHTTP "followup-srv/pkg/http"
	"followup-srv/pkg/log"
)

// DefaultTimeout bounds one gateway call.
const DefaultTimeout = 10 * time.Second

var (
	ErrGatewayURLRequired = errors.New("sms: gateway url is required")
	ErrRecipientRequired  = errors.New("sms: recipient is required")
	ErrEmptyBody          = errors.New("sms: message body is empty")
	ErrRejected           = errors.New("sms: gateway rejected the message")
)

// Config holds the gateway settings. Username/Password use basic auth;
// APIKey, when set, is sent as a bearer token instead.
type Config struct {
	GatewayURL string
	Username   string
	Password   string
	APIKey     string
	Timeout    time.Duration
}

// Receipt is the gateway acknowledgement.
type Receipt struct {
	MessageID string
	Status    string
}

type gatewaySender struct {
	l      log.Logger
	cfg    Config
	client pkgHTTP.IClient
}

type sendPayload struct {
	TextMessage  textMessage `json:"textMessage"`
	PhoneNumbers []string    `json:"phoneNumbers"`
}

type textMessage struct {
	Text string `json:"text"`
}

type sendResponse struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Status string `json:"status"`
}
