package services

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

// Ensure Publisher implements the interfaces.
var (
	_ driving.PublishService = (*Publisher)(nil)
	_ driving.MarkupService  = (*Publisher)(nil)
)

// Publisher is the upload orchestrator. It lists a validated package,
// rewrites its markup files, derives storage keys and writes every file to
// the primary backend and, when configured, to a secondary backend.
//
// Files are processed strictly one at a time in listing order. The first
// failure aborts the package; objects written before it are not removed.
type Publisher struct {
	lister    driven.FileLister
	reader    driven.FileReader
	policies  driven.ExporterPolicies
	primary   driven.ObjectStore
	secondary driven.ObjectStore
	log       *logger.Logger
}

// NewPublisher creates a publisher. secondary is optional; pass nil when
// the mirror backend is disabled.
func NewPublisher(
	lister driven.FileLister,
	reader driven.FileReader,
	policies driven.ExporterPolicies,
	primary driven.ObjectStore,
	secondary driven.ObjectStore,
) *Publisher {
	return &Publisher{
		lister:    lister,
		reader:    reader,
		policies:  policies,
		primary:   primary,
		secondary: secondary,
		log:       logger.Named("publish"),
	}
}

// Validate applies the exporter's validation policy to the package.
// Validation errors are returned as is.
func (p *Publisher) Validate(ctx context.Context, pkg domain.Package) error {
	if p.policies == nil {
		return domain.ErrNotImplemented
	}
	return p.policies.Validator(pkg.Exporter).Validate(ctx, pkg.Basename, pkg.RootDirectory)
}

// Publish uploads every file of pkg and returns the manifest in listing order.
func (p *Publisher) Publish(
	ctx context.Context,
	pkg domain.Package,
	campaignID, uploadID string,
) (*domain.UploadManifest, error) {
	if p.lister == nil || p.reader == nil || p.policies == nil || p.primary == nil {
		return nil, domain.ErrNotImplemented
	}
	if campaignID == "" || uploadID == "" || pkg.Basename == "" || pkg.RootDirectory == "" {
		return nil, fmt.Errorf("%w: campaign id, upload id, basename and directory are required", domain.ErrInvalidInput)
	}

	files, err := p.lister.ListFiles(ctx, pkg.RootDirectory)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	rewriter := p.policies.Rewriter(pkg.Exporter)
	manifest := &domain.UploadManifest{
		CampaignID: campaignID,
		UploadID:   uploadID,
		Basename:   pkg.Basename,
		Entries:    make([]domain.ManifestEntry, 0, len(files)),
	}

	for _, path := range files {
		body, err := p.read(ctx, path, rewriter)
		if err != nil {
			return nil, &domain.PublishError{Path: path, Err: err}
		}

		obj := domain.StoredObject{
			Key:         DeriveKey(path, pkg.RootDirectory, campaignID, pkg.Basename, uploadID),
			Body:        body,
			ContentType: ContentTypeFor(path),
		}

		if err := p.write(ctx, path, obj); err != nil {
			return nil, err
		}

		manifest.Entries = append(manifest.Entries, domain.ManifestEntry{Key: obj.Key})
	}

	p.log.Info("published %s: %d objects under %s/%s_%s/",
		pkg.Basename, len(manifest.Entries), campaignID, pkg.Basename, uploadID)

	return manifest, nil
}

// read returns the content to upload for path. Markup files are read as
// text and passed through the rewriter exactly once; anything else is
// uploaded byte for byte.
func (p *Publisher) read(ctx context.Context, path string, rewriter driven.ClickthroughRewriter) ([]byte, error) {
	if !domain.IsMarkup(path) {
		return p.reader.ReadBytes(ctx, path)
	}

	text, err := p.reader.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	return []byte(rewriter.Rewrite(text)), nil
}

// write mirrors obj to the secondary backend, then writes it publicly
// readable to the primary. Either failure aborts the package.
func (p *Publisher) write(ctx context.Context, path string, obj domain.StoredObject) error {
	if p.secondary != nil {
		mirror := obj
		mirror.Visibility = domain.VisibilityDefault
		if err := p.secondary.Put(ctx, mirror); err != nil {
			return &domain.PublishError{Path: path, Backend: p.secondary.Name(), Err: err}
		}
		p.log.Debug("%s -> %s (%s)", obj.Key, p.secondary.Name(), obj.ContentType)
	}

	obj.Visibility = domain.VisibilityPublicRead
	if err := p.primary.Put(ctx, obj); err != nil {
		return &domain.PublishError{Path: path, Backend: p.primary.Name(), Err: err}
	}
	p.log.Debug("%s -> %s (%s)", obj.Key, p.primary.Name(), obj.ContentType)

	return nil
}

// Rewrite applies the exporter's clickthrough rewrite to markup.
func (p *Publisher) Rewrite(exporter domain.Exporter, markup string) string {
	if p.policies == nil {
		return markup
	}
	return p.policies.Rewriter(exporter).Rewrite(markup)
}

// ObjectKey derives the storage key filePath would be published under.
func (p *Publisher) ObjectKey(filePath, packageDir, campaignID, basename, uploadID string) string {
	return DeriveKey(filePath, packageDir, campaignID, basename, uploadID)
}

// ContentTypeFor returns the MIME type for a file extension, or
// application/octet-stream when the extension is unknown.
func ContentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return domain.DefaultContentType
}
