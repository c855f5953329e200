package domain

import (
	"path/filepath"
	"strings"
)

// MarkupMarker is the substring that identifies a markup (root candidate) file.
const MarkupMarker = ".html"

// Package is an extracted creative bundle.
// The extraction step owns the directory tree; the pipeline only reads it.
type Package struct {
	// Basename is derived from the uploaded archive's filename at intake
	// and never changes afterwards.
	Basename string

	// RootDirectory is the directory the archive was extracted into.
	RootDirectory string

	// Exporter selects the validation and rewrite policies.
	Exporter Exporter
}

// FileEntry is one file within a package's extracted tree.
// It is derived from a listing and never stored.
type FileEntry struct {
	// Path is the path as returned by the lister.
	Path string

	// RelativePath is Path relative to the package root, slash separated.
	RelativePath string
}

// NewFileEntry derives a FileEntry for path under root. An empty root
// leaves the path as is, apart from slash conversion.
func NewFileEntry(root, path string) FileEntry {
	rel := filepath.ToSlash(path)
	if dir := strings.TrimSuffix(filepath.ToSlash(root), "/"); dir != "" {
		rel = strings.TrimPrefix(rel, dir+"/")
	}
	return FileEntry{
		Path:         path,
		RelativePath: rel,
	}
}

// IsMarkup reports whether a listed path is a markup file.
func IsMarkup(path string) bool {
	return strings.Contains(path, MarkupMarker)
}

// FindRootMarkup returns the first listed path that contains ".html".
// Listing order is preserved as given; no sort is applied, so every
// caller that needs "the" root must pass the same listing.
func FindRootMarkup(files []string) (string, bool) {
	for _, f := range files {
		if IsMarkup(f) {
			return f, true
		}
	}
	return "", false
}

// ArchiveBasename derives a package basename from an uploaded archive name:
// the file name without directory and extension. Parenthetical duplicate
// counters such as " (1)" are kept.
func ArchiveBasename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
