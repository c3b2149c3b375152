package audit

import "errors"

var (
	ErrPersistFailed   = errors.New("audit: failed to persist reminder attempt")
	ErrDossierRequired = errors.New("audit: dossier_id is required")
	ErrChannelRequired = errors.New("audit: channel is required")
	ErrOutcomeRequired = errors.New("audit: outcome is required")
	ErrInvalidChannel  = errors.New("audit: invalid channel")
	ErrListFailed      = errors.New("audit: failed to list reminder attempts")
)
