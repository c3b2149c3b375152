package repository

import "errors"

var (
	ErrNotFound             = errors.New("repository: record not found")
	ErrDossierListFailed    = errors.New("repository: failed to list dossiers")
	ErrDossierUpdateFailed  = errors.New("repository: failed to update dossier")
	ErrDocumentListFailed   = errors.New("repository: failed to list documents")
	ErrDocumentCreateFailed = errors.New("repository: failed to create document")
	ErrSettingsLoadFailed   = errors.New("repository: failed to load settings")
	ErrCredentialsDecrypt   = errors.New("repository: failed to decrypt site credentials")
	ErrQueryFailed          = errors.New("repository: query failed")
)
