package postgre

import (
	"fmt"
	"strings"

	"followup-srv/internal/audit/repository"
)

const attemptColumns = `id, dossier_id, channel, recipient, message, outcome,
	external_ref, failure_detail, artifact_type, created_at`

const insertAttemptQuery = `
	INSERT INTO reminder_attempts (` + attemptColumns + `)
	VALUES (:id, :dossier_id, :channel, :recipient, :message, :outcome,
		:external_ref, :failure_detail, :artifact_type, :created_at)`

const hasAttemptQuery = `
	SELECT EXISTS (
		SELECT 1 FROM reminder_attempts
		WHERE dossier_id = $1 AND channel = $2
	)`

// buildListAttemptsQuery returns newest-first ledger rows for one dossier.
func buildListAttemptsQuery(opts repository.ListAttemptsOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + attemptColumns + " FROM reminder_attempts")
	args := writeAttemptFilter(&sb, opts)

	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if opts.Offset > 0 {
		args = append(args, opts.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}

// buildCountAttemptsQuery counts the rows buildListAttemptsQuery pages over.
func buildCountAttemptsQuery(opts repository.ListAttemptsOptions) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) FROM reminder_attempts")
	args := writeAttemptFilter(&sb, opts)
	return sb.String(), args
}

func writeAttemptFilter(sb *strings.Builder, opts repository.ListAttemptsOptions) []any {
	sb.WriteString(" WHERE dossier_id = $1")
	args := []any{opts.DossierID}
	if opts.Channel != "" {
		args = append(args, opts.Channel)
		fmt.Fprintf(sb, " AND channel = $%d", len(args))
	}
	return args
}
