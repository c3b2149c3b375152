package repository

import "errors"

var (
	ErrAttemptCreateFailed = errors.New("repository: failed to create reminder attempt")
	ErrAttemptListFailed   = errors.New("repository: failed to list reminder attempts")
	ErrAttemptDuplicate    = errors.New("repository: reminder attempt already exists")
)
