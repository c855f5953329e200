package driven

import "context"

// FileLister lists every file under a directory, recursively, as a flat
// sequence of paths. The order is the traversal order and must be stable
// for an unchanged tree: validation and publishing both rely on it to
// agree on the root markup file.
type FileLister interface {
	ListFiles(ctx context.Context, dir string) ([]string, error)
}

// FileReader reads file contents.
type FileReader interface {
	// ReadText reads a file as UTF-8 text.
	ReadText(ctx context.Context, path string) (string, error)

	// ReadBytes reads a file as opaque binary content.
	ReadBytes(ctx context.Context, path string) ([]byte, error)
}
