package automation

import (
	"context"
	"fmt"
)

// ExecuteFollowUp runs connect, search, report check and message in order.
// A record that cannot be found fails with KindNotFound. A report already present
// short-circuits with FollowUpReportFound and no message is sent. The first failing
// step aborts the rest. The caller owns c and must Cleanup it.
func ExecuteFollowUp(ctx context.Context, c Capability, primaryKey, secondaryKey, message string) (FollowUpResult, error) {
	if err := c.Connect(ctx); err != nil {
		return FollowUpResult{}, asActionError(ActionConnect, KindConnection, err)
	}

	sr, err := c.Search(ctx, primaryKey, secondaryKey)
	if err != nil {
		return FollowUpResult{}, asActionError(ActionSearch, KindNavigation, err)
	}
	if !sr.Found {
		return FollowUpResult{}, &ActionError{
			Action:  ActionSearch,
			Kind:    KindNotFound,
			Message: fmt.Sprintf("no record matches %s", describeKeys(primaryKey, secondaryKey)),
		}
	}

	rr, err := c.CheckAndRetrieveReport(ctx)
	if err != nil {
		return FollowUpResult{}, asActionError(ActionRetrieveReport, KindNavigation, err)
	}
	if rr.Found {
		return FollowUpResult{Outcome: FollowUpReportFound, Report: rr}, nil
	}

	if err := c.SendMessage(ctx, message); err != nil {
		return FollowUpResult{}, asActionError(ActionSendMessage, KindNavigation, err)
	}
	return FollowUpResult{Outcome: FollowUpMessageSent}, nil
}

func asActionError(action string, kind Kind, err error) *ActionError {
	return NewActionError(action, kind, err)
}

func describeKeys(primaryKey, secondaryKey string) string {
	switch {
	case primaryKey != "" && secondaryKey != "":
		return fmt.Sprintf("claim %q or vehicle %q", primaryKey, secondaryKey)
	case primaryKey != "":
		return fmt.Sprintf("claim %q", primaryKey)
	case secondaryKey != "":
		return fmt.Sprintf("vehicle %q", secondaryKey)
	}
	return "an empty key"
}
