package driven

import (
	"context"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// PublishRecordStore persists publish history.
type PublishRecordStore interface {
	// Save stores a record.
	Save(ctx context.Context, record domain.PublishRecord) error

	// List returns records newest first. An empty campaignID matches all
	// campaigns; limit <= 0 means no limit.
	List(ctx context.Context, campaignID string, limit int) ([]domain.PublishRecord, error)

	// ListByUpload returns the records written for one upload id.
	ListByUpload(ctx context.Context, uploadID string) ([]domain.PublishRecord, error)
}
