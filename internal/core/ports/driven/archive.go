package driven

import "context"

// ArchiveExtractor unpacks an uploaded archive into a destination directory.
// Failures are returned as *domain.ExtractionError.
type ArchiveExtractor interface {
	Extract(ctx context.Context, archivePath, destDir string) error
}
