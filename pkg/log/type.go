package log

import "go.uber.org/zap"

// ZapConfig configures the zap backend.
type ZapConfig struct {
	Level        string
	Mode         string // production | development | debug
	Encoding     string // json | console
	ColorEnabled bool
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// ctxKeyRequestID carries the request id set by the HTTP middleware.
type ctxKeyRequestID struct{}
