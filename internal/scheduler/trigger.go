package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	pkgHTTP "followup-srv/pkg/http"
	"followup-srv/pkg/redact"
)

// Fire runs one reminder cycle through the trigger endpoint.
func (t *Trigger) Fire(ctx context.Context) (Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	body, status, err := t.client.Post(ctx, t.cfg.TriggerURL, nil, pkgHTTP.BearerHeader(t.cfg.Secret))
	if err != nil {
		t.l.Errorf(ctx, "scheduler.Fire: Trigger call failed: %v", err)
		return Summary{}, fmt.Errorf("%w: %v", ErrCycleFailed, redact.Error(err))
	}

	summary := Summary{Status: status}
	if status == http.StatusUnauthorized {
		t.l.Errorf(ctx, "scheduler.Fire: Trigger rejected the cron secret")
		return summary, ErrUnauthorized
	}

	var resp cycleResp
	if err := json.Unmarshal(body, &resp); err != nil {
		t.l.Errorf(ctx, "scheduler.Fire: Unexpected trigger response (status %d): %v", status, err)
		return summary, fmt.Errorf("%w: status %d", ErrCycleFailed, status)
	}
	summary.Success = resp.Success
	summary.Processed = resp.Processed
	summary.Errors = len(resp.Results.Errors)
	summary.Error = redact.String(resp.Error)

	if !pkgHTTP.IsSuccess(status) || !resp.Success {
		t.l.Errorf(ctx, "scheduler.Fire: Cycle failed (status %d): %s", status, summary.Error)
		return summary, fmt.Errorf("%w: %s", ErrCycleFailed, summary.Error)
	}

	if summary.Errors > 0 {
		t.l.Warnf(ctx, "scheduler.Fire: Cycle done with %d dossier errors (%d processed)", summary.Errors, summary.Processed)
	} else {
		t.l.Infof(ctx, "scheduler.Fire: Cycle done (%d processed)", summary.Processed)
	}
	return summary, nil
}
