package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/archive"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/config/file"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/filesystem"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/objectstore"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/objectstore/gcs"
	memstore "github.com/custodia-labs/creative-publisher/internal/adapters/driven/objectstore/memory"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/objectstore/s3"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/creative-publisher/internal/adapters/driving/cli"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/core/services"
	"github.com/custodia-labs/creative-publisher/internal/exporters"
	"github.com/custodia-labs/creative-publisher/internal/logger"
)

// extractionFactor bounds the extracted size of an archive relative to the
// archive size limit.
const extractionFactor = 10

// buildServices wires adapters into services for one invocation.
//
//nolint:gocyclo // Wiring function with necessary sequential steps
func buildServices(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	log := logger.Named("wire")

	// 1. Configuration
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	// 2. Package access and exporter policies
	files := filesystem.NewFiles()
	registry := exporters.NewDefaultRegistry(files, files)
	extractor := archive.NewZipExtractor(settings.Upload.MaxArchiveBytes * extractionFactor)

	// 3. Publish history
	var (
		records driven.PublishRecordStore
		closers []func() error
	)
	if settings.HistoryEnabled {
		store, err := sqlite.NewStore(filepath.Join(filepath.Dir(configStore.Path()), "data"))
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		records = store.PublishRecordStore()
		closers = append(closers, store.Close)
	}

	// 4. Dry-run pipeline, also used for validation and markup previews
	dryRunStore := memstore.NewObjectStore("dry-run")
	dryRunPublisher := services.NewPublisher(files, files, registry, dryRunStore, nil)

	out := &cli.Services{
		Settings:     settingsService,
		Publish:      dryRunPublisher,
		Markup:       dryRunPublisher,
		DryRunIngest: services.NewIngester(extractor, dryRunPublisher, nil, settings.Upload.MaxArchiveBytes),
		WorkDir:      settings.WorkDir,
		Close: func() error {
			var errs []error
			for _, c := range closers {
				errs = append(errs, c())
			}
			return errors.Join(errs...)
		},
	}

	if records != nil {
		out.History = services.NewHistoryService(records)
	}

	// 5. Live pipeline
	if !settings.S3.IsConfigured() {
		log.Debug("s3.bucket not set; live publishing disabled")
		return out, nil
	}

	primary, err := s3.NewObjectStore(ctx, settings.S3)
	if err != nil {
		out.Close() //nolint:errcheck
		return nil, fmt.Errorf("creating s3 store: %w", err)
	}

	var secondary driven.ObjectStore
	if settings.GCS.IsActive() {
		store, err := gcs.NewObjectStore(ctx, settings.GCS)
		if err != nil {
			out.Close() //nolint:errcheck
			return nil, fmt.Errorf("creating gcs store: %w", err)
		}
		secondary = objectstore.NewThrottled(store, settings.Upload.RequestsPerSecond, settings.Upload.Burst)
	}

	publisher := services.NewPublisher(
		files,
		files,
		registry,
		objectstore.NewThrottled(primary, settings.Upload.RequestsPerSecond, settings.Upload.Burst),
		secondary,
	)
	out.Publish = publisher
	out.Markup = publisher
	out.Ingest = services.NewIngester(extractor, publisher, records, settings.Upload.MaxArchiveBytes)

	return out, nil
}
