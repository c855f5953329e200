// Package archive unpacks uploaded creative archives onto local disk.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure ZipExtractor implements the interface.
var _ driven.ArchiveExtractor = (*ZipExtractor)(nil)

var (
	errUnsafePath = errors.New("entry escapes destination directory")
	errTooLarge   = errors.New("extracted content exceeds limit")
)

// ZipExtractor extracts .zip archives.
type ZipExtractor struct {
	maxExtractedBytes int64
}

// NewZipExtractor creates an extractor. maxExtractedBytes caps the total
// uncompressed size written for one archive; zero means no cap.
func NewZipExtractor(maxExtractedBytes int64) *ZipExtractor {
	return &ZipExtractor{maxExtractedBytes: maxExtractedBytes}
}

// Extract unpacks archivePath into destDir, creating it if needed.
// Any failure is returned as *domain.ExtractionError naming the archive.
func (x *ZipExtractor) Extract(ctx context.Context, archivePath, destDir string) error {
	if err := x.extract(ctx, archivePath, destDir); err != nil {
		return &domain.ExtractionError{Path: archivePath, Err: err}
	}
	return nil
}

func (x *ZipExtractor) extract(ctx context.Context, archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if errors.Is(err, zip.ErrInsecurePath) {
		r.Close()
		return errUnsafePath
	}
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	remaining := x.maxExtractedBytes
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		target, err := safeJoin(destDir, f.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			// Symlinks and other special entries are not part of a creative.
			continue
		}

		written, err := writeEntry(f, target, remaining, x.maxExtractedBytes > 0)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}
		remaining -= written
	}

	return nil
}

// safeJoin resolves an archive entry name under destDir, rejecting names
// that would land outside it.
func safeJoin(destDir, name string) (string, error) {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", errUnsafePath
	}
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errUnsafePath
	}
	return target, nil
}

func writeEntry(f *zip.File, target string, remaining int64, limited bool) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return 0, err
	}

	src, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}

	var reader io.Reader = src
	if limited {
		// One extra byte tells an entry that fits exactly from one that overflows.
		reader = io.LimitReader(src, remaining+1)
	}

	n, err := io.Copy(dst, reader)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, err
	}
	if limited && n > remaining {
		return n, errTooLarge
	}
	return n, nil
}
