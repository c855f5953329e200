// Package filesystem lists and reads extracted package files on local disk.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure Files implements the interfaces.
var (
	_ driven.FileLister = (*Files)(nil)
	_ driven.FileReader = (*Files)(nil)
)

// Files is a local-disk driven.FileLister and driven.FileReader.
type Files struct{}

// NewFiles creates a local-disk file adapter.
func NewFiles() *Files {
	return &Files{}
}

// ListFiles returns every regular file under dir, recursively, in lexical
// order. Directories are not included.
func (f *Files) ListFiles(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// ReadText reads path as UTF-8 text.
func (f *Files) ReadText(ctx context.Context, path string) (string, error) {
	data, err := f.ReadBytes(ctx, path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadBytes reads path verbatim.
func (f *Files) ReadBytes(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
