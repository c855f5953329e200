package driven

import (
	"context"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// ObjectStore writes objects to an object-storage backend.
// Implementations are process-wide and safe for reuse across packages.
type ObjectStore interface {
	// Name identifies the backend in errors and logs (e.g., "s3", "gcs").
	Name() string

	// Put writes obj under obj.Key, replacing any existing object.
	Put(ctx context.Context, obj domain.StoredObject) error
}
