package reminder

import (
	"context"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// RunCycle processes every dossier awaiting an expert report once. Only a
	// settings or dossier-list failure returns an error; the partial result is
	// returned alongside it.
	RunCycle(ctx context.Context) (CycleResult, error)
	// ShouldStop evaluates the stop conditions of one dossier and, on stop, applies
	// the report-received transition and the system_stop ledger entry once.
	ShouldStop(ctx context.Context, dossierID string) (StopDecision, error)
}

// SiteLock serializes portal sessions per site across processes.
type SiteLock interface {
	// Acquire returns ok=false when another holder owns the site.
	Acquire(ctx context.Context, siteID string) (release func(), ok bool, err error)
}
