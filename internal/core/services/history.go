package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads publish history.
type HistoryService struct {
	store driven.PublishRecordStore
}

// NewHistoryService creates a history service. A nil store means history
// is disabled.
func NewHistoryService(store driven.PublishRecordStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns records newest first, optionally filtered by campaign.
func (s *HistoryService) List(ctx context.Context, campaignID string, limit int) ([]domain.PublishRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	records, err := s.store.List(ctx, campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("list publish records: %w", err)
	}
	return records, nil
}

// Upload returns the records of one upload, or ErrNotFound if there are none.
func (s *HistoryService) Upload(ctx context.Context, uploadID string) ([]domain.PublishRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	records, err := s.store.ListByUpload(ctx, uploadID)
	if err != nil {
		return nil, fmt.Errorf("list upload %s: %w", uploadID, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("upload %s: %w", uploadID, domain.ErrNotFound)
	}
	return records, nil
}
