package http

import (
	"context"
	"strings"
	"time"

	"followup-srv/internal/audit"
	"followup-srv/internal/model"
	"followup-srv/pkg/minio"
	"followup-srv/pkg/paginator"
)

const reportLinkExpiry = 15 * time.Minute

type listRemindersReq struct {
	DossierID string `uri:"dossier_id" form:"-" binding:"required"`
	Channel   string `form:"channel"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

func (r listRemindersReq) toInput() audit.ListInput {
	return audit.ListInput{
		DossierID: r.DossierID,
		Channel:   model.Channel(r.Channel),
		Paginate:  paginator.PaginateQuery{Page: r.Page, Limit: r.Limit},
	}
}

type reminderResp struct {
	ID            string `json:"id"`
	Channel       string `json:"channel"`
	Recipient     string `json:"recipient,omitempty"`
	Message       string `json:"message,omitempty"`
	Outcome       string `json:"outcome"`
	ExternalRef   string `json:"external_ref,omitempty"`
	FailureDetail string `json:"failure_detail,omitempty"`
	ArtifactType  string `json:"artifact_type,omitempty"`
	ReportURL     string `json:"report_url,omitempty"`
	CreatedAt     string `json:"created_at"`
}

type listRemindersResp struct {
	DossierID string                      `json:"dossier_id"`
	Reminders []reminderResp              `json:"reminders"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h *handler) newListRemindersResp(ctx context.Context, dossierID string, out audit.ListOutput) listRemindersResp {
	resp := listRemindersResp{
		DossierID: dossierID,
		Reminders: make([]reminderResp, len(out.Attempts)),
		Paginator: out.Paginator.ToResponse(),
	}
	for i, a := range out.Attempts {
		resp.Reminders[i] = reminderResp{
			ID:            a.ID,
			Channel:       string(a.Channel),
			Recipient:     a.Recipient,
			Message:       a.Message,
			Outcome:       string(a.Outcome),
			ExternalRef:   a.ExternalRef,
			FailureDetail: a.FailureDetail,
			ArtifactType:  a.ArtifactType,
			ReportURL:     h.reportURL(ctx, a),
			CreatedAt:     a.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}

// reportURL signs a download link for a report kept in object storage. Portal
// URLs are already links and are returned as they are in external_ref.
func (h *handler) reportURL(ctx context.Context, a model.ReminderAttempt) string {
	if h.reports == nil || h.reportBucket == "" || a.ArtifactType != string(model.DocumentTypeExpertReport) {
		return ""
	}
	if a.ExternalRef == "" || strings.HasPrefix(a.ExternalRef, "http://") || strings.HasPrefix(a.ExternalRef, "https://") {
		return ""
	}
	link, err := h.reports.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: h.reportBucket,
		ObjectName: a.ExternalRef,
		Expiry:     reportLinkExpiry,
	})
	if err != nil {
		h.l.Warnf(ctx, "audit.delivery.http.reportURL: Failed to sign report %s: %v", a.ExternalRef, err)
		return ""
	}
	return link.URL
}
