package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// DeriveKey computes the storage key for a file of a package:
//
//	{campaignID}/{basename}_{uploadID}/{relativePath}
//
// relativePath is filePath without the packageDir prefix. When its first
// segment equals basename (archives that re-nest their own name as a top
// level folder) that segment is dropped once. DeriveKey is pure and never
// touches the filesystem.
func DeriveKey(filePath, packageDir, campaignID, basename, uploadID string) string {
	rel := domain.NewFileEntry(packageDir, filePath).RelativePath

	if first, rest, ok := strings.Cut(rel, "/"); ok && first == basename {
		rel = rest
	}

	return campaignID + "/" + basename + "_" + uploadID + "/" + rel
}

// NewUploadID returns a fresh identifier for one upload request.
func NewUploadID() string {
	return uuid.New().String()
}
