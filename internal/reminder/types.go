package reminder

import (
	"fmt"

	"followup-srv/internal/model"
)

// Stop reasons written to system_stop ledger entries.
const (
	ReasonArtifactReceived = "artifact received"
	ReasonStatusAdvanced   = "status advanced"
	ReasonReportTimestamp  = "report timestamp set"
)

// StopDecision is the result of the stop-condition evaluation.
type StopDecision struct {
	Stop         bool               `json:"stop"`
	Reason       string             `json:"reason,omitempty"`
	ArtifactType model.DocumentType `json:"artifact_type,omitempty"`
}

type ChannelCounts struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// CycleResult is the transient aggregate of one cycle.
type CycleResult struct {
	ExpertPortal ChannelCounts `json:"expert_portal"`
	ExpertEmail  ChannelCounts `json:"expert_email"`
	ClientSMS    ChannelCounts `json:"client_sms"`
	ClientEmail  ChannelCounts `json:"client_email"`
	Stopped      int           `json:"stopped"`
	Skipped      int           `json:"skipped"`
	Processed    int           `json:"dossiers_traites"`
	Errors       []string      `json:"errors"`
}

// Count adds one outcome on channel.
func (r *CycleResult) Count(channel model.Channel, outcome model.Outcome) {
	var c *ChannelCounts
	switch channel {
	case model.ChannelExpertPortal:
		c = &r.ExpertPortal
	case model.ChannelExpertEmail:
		c = &r.ExpertEmail
	case model.ChannelClientSMS:
		c = &r.ClientSMS
	case model.ChannelClientEmail:
		c = &r.ClientEmail
	default:
		return
	}
	if outcome == model.OutcomeFailed {
		c.Failed++
		return
	}
	c.Sent++
}

// AddError appends a per-dossier error as "<reference>: <message>".
func (r *CycleResult) AddError(reference, message string) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s: %s", reference, message))
}

// TotalSent sums successful attempts across channels.
func (r CycleResult) TotalSent() int {
	return r.ExpertPortal.Sent + r.ExpertEmail.Sent + r.ClientSMS.Sent + r.ClientEmail.Sent
}
