package gwd

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

const (
	// GeneratorMarker must appear in the root markup of a GWD export.
	GeneratorMarker = `name="generator" content="Google Web Designer`

	// AssetReferenceMarker in the root markup requires an assets folder.
	AssetReferenceMarker = `src="assets/`

	assetsFolder = "assets/"
)

// Ensure Validator implements the interface.
var _ driven.PackageValidator = (*Validator)(nil)

// Validator checks the structure of a GWD package.
type Validator struct {
	lister driven.FileLister
	reader driven.FileReader
}

// NewValidator creates a GWD validator reading through lister and reader.
func NewValidator(lister driven.FileLister, reader driven.FileReader) *Validator {
	return &Validator{
		lister: lister,
		reader: reader,
	}
}

// Validate accepts the package in dir or returns a *domain.ValidationError.
// Unlike the Conversio policy, the archive basename is not compared with
// the root markup file name.
func (v *Validator) Validate(ctx context.Context, _, dir string) error {
	files, err := v.lister.ListFiles(ctx, dir)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	root, ok := domain.FindRootMarkup(files)
	if !ok {
		return domain.ErrMissingRootHTML
	}

	content, err := v.reader.ReadText(ctx, root)
	if err != nil {
		return fmt.Errorf("read root markup %s: %w", root, err)
	}

	if content == "" {
		return domain.ErrEmptyRootHTML
	}

	if !strings.Contains(content, GeneratorMarker) {
		return domain.ErrMissingGWDMetadata
	}

	if strings.Contains(content, AssetReferenceMarker) && !hasAssets(files) {
		return domain.ErrMissingAssetsFolder
	}

	return nil
}

func hasAssets(files []string) bool {
	for _, f := range files {
		if strings.Contains(f, assetsFolder) {
			return true
		}
	}
	return false
}
