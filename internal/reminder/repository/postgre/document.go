package postgre

import (
	"context"

	"followup-srv/internal/model"
	"followup-srv/internal/reminder/repository"
)

// ListStopDocuments - Reminder-stopping documents, oldest first.
func (r *implRepository) ListStopDocuments(ctx context.Context, dossierID string) ([]model.Document, error) {
	docs := []model.Document{}
	if err := r.db.SelectContext(ctx, &docs, listStopDocumentsQuery, dossierID); err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.ListStopDocuments: Failed to select documents: %v", err)
		return nil, repository.ErrDocumentListFailed
	}
	return docs, nil
}

// CreateDocument - Register a document on a dossier.
func (r *implRepository) CreateDocument(ctx context.Context, opts repository.CreateDocumentOptions) (model.Document, error) {
	doc := model.Document{
		ID:         opts.ID,
		DossierID:  opts.DossierID,
		Type:       opts.Type,
		StorageKey: opts.StorageKey,
		CreatedAt:  opts.CreatedAt,
	}
	if _, err := r.db.NamedExecContext(ctx, insertDocumentQuery, doc); err != nil {
		r.l.Errorf(ctx, "reminder.repository.postgre.CreateDocument: Failed to insert document: %v", err)
		return model.Document{}, repository.ErrDocumentCreateFailed
	}
	return doc, nil
}
