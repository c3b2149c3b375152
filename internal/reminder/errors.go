package reminder

import "errors"

var (
	ErrConfiguration   = errors.New("reminder: configuration error")
	ErrSettingsLoad    = errors.New("reminder: failed to load settings")
	ErrDossierList     = errors.New("reminder: failed to list dossiers")
	ErrDossierNotFound = errors.New("reminder: dossier not found")
	ErrDossierRequired = errors.New("reminder: dossier_id is required")
	ErrSiteBusy        = errors.New("reminder: portal session already running for this site")
)
