package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure PublishRecordStore implements the interface.
var _ driven.PublishRecordStore = (*PublishRecordStore)(nil)

// PublishRecordStore is an in-memory implementation of driven.PublishRecordStore.
type PublishRecordStore struct {
	mu      sync.RWMutex
	records []domain.PublishRecord
}

// NewPublishRecordStore creates a new in-memory publish record store.
func NewPublishRecordStore() *PublishRecordStore {
	return &PublishRecordStore{}
}

// Save appends a record.
func (s *PublishRecordStore) Save(_ context.Context, rec domain.PublishRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// List returns records newest first. An empty campaignID matches every
// campaign and a limit of zero or less returns everything.
func (s *PublishRecordStore) List(_ context.Context, campaignID string, limit int) ([]domain.PublishRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.PublishRecord, 0, len(s.records))
	for _, rec := range s.records {
		if campaignID == "" || rec.CampaignID == campaignID {
			result = append(result, rec)
		}
	}
	sortNewestFirst(result)

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListByUpload returns the records of one upload in publish order.
func (s *PublishRecordStore) ListByUpload(_ context.Context, uploadID string) ([]domain.PublishRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.PublishRecord
	for _, rec := range s.records {
		if rec.UploadID == uploadID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func sortNewestFirst(records []domain.PublishRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
