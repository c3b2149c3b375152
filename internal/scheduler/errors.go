package scheduler

import "errors"

var (
	ErrTriggerURLRequired = errors.New("scheduler: trigger url is required")
	ErrSecretRequired     = errors.New("scheduler: cron secret is required")
	ErrUnauthorized       = errors.New("scheduler: trigger rejected the cron secret")
	ErrCycleFailed        = errors.New("scheduler: reminder cycle failed")
)
