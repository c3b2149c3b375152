package http

import (
	"errors"

	"followup-srv/internal/audit"
	pkgErrors "followup-srv/pkg/errors"
)

var (
	errInvalidQuery = pkgErrors.NewHTTPError(
		400, "Invalid query parameters",
	)
	errDossierRequired = pkgErrors.NewHTTPError(
		400, "dossier_id is required",
	)
	errInvalidChannel = pkgErrors.NewHTTPError(
		400, "Unknown reminder channel",
	)
	errListFailed = pkgErrors.NewHTTPError(
		500, "Failed to load reminder history",
	)
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, audit.ErrDossierRequired):
		return errDossierRequired
	case errors.Is(err, audit.ErrInvalidChannel):
		return errInvalidChannel
	case errors.Is(err, audit.ErrListFailed):
		return errListFailed
	default:
		return err
	}
}
