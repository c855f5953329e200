package driving

import (
	"context"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// PublishService validates and publishes a single extracted package.
type PublishService interface {
	// Validate applies the exporter's validation policy to the package.
	Validate(ctx context.Context, pkg domain.Package) error

	// Publish uploads every file of the package and returns the manifest.
	// It fails fast: the first failing file aborts the rest, already written
	// objects are left in place, and no partial manifest is returned.
	Publish(ctx context.Context, pkg domain.Package, campaignID, uploadID string) (*domain.UploadManifest, error)
}

// IngestService runs a whole upload request: extract, validate and publish
// every archive sequentially under one upload id.
type IngestService interface {
	Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error)
}

// HistoryService reads publish history.
type HistoryService interface {
	// List returns records newest first, optionally filtered by campaign.
	List(ctx context.Context, campaignID string, limit int) ([]domain.PublishRecord, error)

	// Upload returns the records of one upload id.
	Upload(ctx context.Context, uploadID string) ([]domain.PublishRecord, error)
}

// MarkupService exposes the per-file transformations of the publish step
// without touching storage.
type MarkupService interface {
	// Rewrite applies the exporter's clickthrough rewrite to markup.
	Rewrite(exporter domain.Exporter, markup string) string

	// ObjectKey derives the storage key a file would be published under.
	ObjectKey(filePath, packageDir, campaignID, basename, uploadID string) string
}
