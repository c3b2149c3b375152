package middleware

import (
	"followup-srv/pkg/log"
)

type Middleware struct {
	l          log.Logger
	cronSecret string
}

func New(l log.Logger, cronSecret string) Middleware {
	return Middleware{
		l:          l,
		cronSecret: cronSecret,
	}
}
