package services

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

// Ensure Ingester implements the interface.
var _ driving.IngestService = (*Ingester)(nil)

// Ingester handles one upload request end to end: intake checks,
// extraction, then validation and publishing of each package in order.
type Ingester struct {
	extractor       driven.ArchiveExtractor
	publisher       driving.PublishService
	records         driven.PublishRecordStore
	maxArchiveBytes int64
	newID           func() string
	now             func() time.Time
	log             *logger.Logger
}

// NewIngester creates an ingester. records is optional; when nil no
// history is kept. A maxArchiveBytes of zero disables the size check.
func NewIngester(
	extractor driven.ArchiveExtractor,
	publisher driving.PublishService,
	records driven.PublishRecordStore,
	maxArchiveBytes int64,
) *Ingester {
	return &Ingester{
		extractor:       extractor,
		publisher:       publisher,
		records:         records,
		maxArchiveBytes: maxArchiveBytes,
		newID:           NewUploadID,
		now:             time.Now,
		log:             logger.Named("ingest"),
	}
}

// Ingest runs a request. Every archive is checked and extracted before any
// package is published; the first failure aborts the remaining packages.
// Validation errors are returned unwrapped so callers can show them as is.
//
//nolint:gocyclo // Orchestration function with necessary sequential steps
func (i *Ingester) Ingest(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	if i.extractor == nil || i.publisher == nil {
		return nil, domain.ErrNotImplemented
	}

	// 1. Intake checks
	if len(req.Archives) == 0 {
		return nil, domain.ErrNoFiles
	}
	if req.CampaignID == "" || req.WorkDir == "" {
		return nil, fmt.Errorf("%w: campaign id and work directory are required", domain.ErrInvalidInput)
	}

	packages := make([]domain.Package, 0, len(req.Archives))
	seen := make(map[string]bool, len(req.Archives))
	for _, archive := range req.Archives {
		if err := i.checkArchive(archive); err != nil {
			return nil, err
		}

		basename := domain.ArchiveBasename(archive)
		if seen[basename] {
			return nil, fmt.Errorf("%w: duplicate archive name %q", domain.ErrInvalidInput, basename)
		}
		seen[basename] = true

		packages = append(packages, domain.Package{
			Basename:      basename,
			RootDirectory: filepath.Join(req.WorkDir, basename),
			Exporter:      req.Exporter,
		})
	}

	uploadID := req.UploadID
	if uploadID == "" {
		uploadID = i.newID()
	}

	// 2. Extract everything up front
	for n, pkg := range packages {
		if err := i.extractor.Extract(ctx, req.Archives[n], pkg.RootDirectory); err != nil {
			return nil, err
		}
	}

	result := &domain.IngestResult{
		UploadID:    uploadID,
		CampaignID:  req.CampaignID,
		ZipBaseName: packages[0].Basename,
		Packages:    make([]domain.PackageResult, 0, len(packages)),
	}

	i.log.Info("upload %s: %d package(s) for campaign %s", uploadID, len(packages), req.CampaignID)

	// 3. Validate and publish one package at a time
	for _, pkg := range packages {
		if err := i.publisher.Validate(ctx, pkg); err != nil {
			i.log.Warn("package %s rejected: %v", pkg.Basename, err)
			return nil, err
		}

		manifest, err := i.publisher.Publish(ctx, pkg, req.CampaignID, uploadID)
		if err != nil {
			return nil, fmt.Errorf("publish %s: %w", pkg.Basename, err)
		}

		result.Packages = append(result.Packages, domain.PackageResult{Package: pkg, Manifest: manifest})

		rootKey, ok := manifest.RootKey()
		result.RootKey, result.RootBaseName = rootKey, ""
		if ok {
			result.RootBaseName = strings.TrimSuffix(path.Base(rootKey), domain.MarkupMarker)
		}

		i.record(ctx, domain.PublishRecord{
			UploadID:    uploadID,
			CampaignID:  req.CampaignID,
			Basename:    pkg.Basename,
			Exporter:    pkg.Exporter.Effective(),
			ObjectCount: len(manifest.Entries),
			RootKey:     rootKey,
			CreatedAt:   i.now(),
		})
	}

	return result, nil
}

// checkArchive applies the intake rules to one uploaded file.
func (i *Ingester) checkArchive(archive string) error {
	if !strings.EqualFold(filepath.Ext(archive), ".zip") {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Base(archive))
	}

	info, err := os.Stat(archive)
	if err != nil {
		return fmt.Errorf("stat %s: %w", archive, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", domain.ErrUnsupportedFileType, filepath.Base(archive))
	}
	if i.maxArchiveBytes > 0 && info.Size() > i.maxArchiveBytes {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d",
			domain.ErrArchiveTooLarge, filepath.Base(archive), info.Size(), i.maxArchiveBytes)
	}
	return nil
}

// record saves history. Failures are logged and otherwise ignored.
func (i *Ingester) record(ctx context.Context, rec domain.PublishRecord) {
	if i.records == nil {
		return
	}
	if err := i.records.Save(ctx, rec); err != nil {
		i.log.Warn("failed to record publish of %s: %v", rec.Basename, err)
	}
}
