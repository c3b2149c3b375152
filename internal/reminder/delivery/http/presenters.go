package http

import (
	"time"

	"followup-srv/internal/reminder"
)

type checkStopReq struct {
	DossierID string `uri:"dossier_id" binding:"required"`
}

type cycleResp struct {
	Success         bool                 `json:"success"`
	Error           string               `json:"error,omitempty"`
	Results         reminder.CycleResult `json:"results"`
	DossiersTraites int                  `json:"dossiers_traites"`
	Timestamp       string               `json:"timestamp"`
}

func newCycleResp(result reminder.CycleResult, errMsg string) cycleResp {
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return cycleResp{
		Success:         errMsg == "",
		Error:           errMsg,
		Results:         result,
		DossiersTraites: result.Processed,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}

type stopResp struct {
	DossierID    string `json:"dossier_id"`
	Stop         bool   `json:"stop"`
	Reason       string `json:"reason,omitempty"`
	ArtifactType string `json:"artifact_type,omitempty"`
}

func newStopResp(dossierID string, d reminder.StopDecision) stopResp {
	return stopResp{
		DossierID:    dossierID,
		Stop:         d.Stop,
		Reason:       d.Reason,
		ArtifactType: string(d.ArtifactType),
	}
}
