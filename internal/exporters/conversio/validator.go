package conversio

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.PackageValidator = (*Validator)(nil)

// Validator checks the structure of a Conversio package.
type Validator struct {
	lister driven.FileLister
	reader driven.FileReader
}

// NewValidator creates a Conversio validator reading through lister and reader.
func NewValidator(lister driven.FileLister, reader driven.FileReader) *Validator {
	return &Validator{
		lister: lister,
		reader: reader,
	}
}

// Validate accepts the package in dir or returns a *domain.ValidationError.
// The archive basename must contain the root markup file's basename.
func (v *Validator) Validate(ctx context.Context, basename, dir string) error {
	files, err := v.lister.ListFiles(ctx, dir)
	if err != nil {
		return fmt.Errorf("list files: %w", err)
	}

	root, ok := domain.FindRootMarkup(files)
	if !ok {
		return domain.ErrMissingRootHTML
	}

	rootBasename := RootBasename(root, dir)
	if !strings.Contains(basename, rootBasename) {
		return domain.NewBasenameMismatch(basename, rootBasename)
	}

	content, err := v.reader.ReadText(ctx, root)
	if err != nil {
		return fmt.Errorf("read root markup %s: %w", root, err)
	}

	if content == "" {
		return domain.ErrEmptyRootHTML
	}

	return nil
}

// RootBasename derives the name the archive must contain from the root
// markup path: the package directory prefix is dropped, then everything
// from ".html" on, then every path segment after the first.
//
//	"banner.html"            -> "banner"
//	"<dir>/banner/index.html" -> "banner"
func RootBasename(root, dir string) string {
	rel := root
	if dir != "" {
		rel = strings.TrimPrefix(rel, strings.TrimSuffix(dir, "/")+"/")
	}
	rel, _, _ = strings.Cut(rel, domain.MarkupMarker)
	rel, _, _ = strings.Cut(rel, "/")
	return rel
}
