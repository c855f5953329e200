package mcp

import (
	"context"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// mockPublishService is a mock implementation of driving.PublishService.
type mockPublishService struct {
	validateErr error
	validated   []domain.Package
}

func (m *mockPublishService) Validate(_ context.Context, pkg domain.Package) error {
	m.validated = append(m.validated, pkg)
	return m.validateErr
}

func (m *mockPublishService) Publish(
	_ context.Context,
	_ domain.Package,
	_, _ string,
) (*domain.UploadManifest, error) {
	return nil, domain.ErrNotImplemented
}

// mockMarkupService is a mock implementation of driving.MarkupService.
type mockMarkupService struct {
	rewrite func(domain.Exporter, string) string
	key     string
}

func (m *mockMarkupService) Rewrite(exporter domain.Exporter, markup string) string {
	if m.rewrite != nil {
		return m.rewrite(exporter, markup)
	}
	return markup
}

func (m *mockMarkupService) ObjectKey(_, _, _, _, _ string) string {
	return m.key
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	records []domain.PublishRecord
	err     error
}

func (m *mockHistoryService) List(_ context.Context, _ string, _ int) ([]domain.PublishRecord, error) {
	return m.records, m.err
}

func (m *mockHistoryService) Upload(_ context.Context, uploadID string) ([]domain.PublishRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.PublishRecord
	for _, rec := range m.records {
		if rec.UploadID == uploadID {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}
