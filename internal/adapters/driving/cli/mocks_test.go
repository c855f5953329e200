package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// mockIngestService implements driving.IngestService for testing.
type mockIngestService struct {
	requests    []domain.IngestRequest
	workDirSeen bool
	result      *domain.IngestResult
	err         error
}

func (m *mockIngestService) Ingest(_ context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	m.requests = append(m.requests, req)
	if _, err := os.Stat(req.WorkDir); err == nil {
		m.workDirSeen = true
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.IngestResult{UploadID: "u-1", CampaignID: req.CampaignID}, nil
}

// mockPublishService implements driving.PublishService for testing.
type mockPublishService struct {
	validated []domain.Package
	err       error
}

func (m *mockPublishService) Validate(_ context.Context, pkg domain.Package) error {
	m.validated = append(m.validated, pkg)
	return m.err
}

func (m *mockPublishService) Publish(
	_ context.Context,
	_ domain.Package,
	_, _ string,
) (*domain.UploadManifest, error) {
	return nil, domain.ErrNotImplemented
}

// mockMarkupService implements driving.MarkupService for testing.
type mockMarkupService struct {
	exporters []domain.Exporter
}

func (m *mockMarkupService) Rewrite(exporter domain.Exporter, markup string) string {
	m.exporters = append(m.exporters, exporter)
	return strings.ToUpper(markup)
}

func (m *mockMarkupService) ObjectKey(_, _, campaignID, basename, uploadID string) string {
	return campaignID + "/" + basename + "_" + uploadID
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	records    []domain.PublishRecord
	err        error
	campaignID string
	limit      int
}

func (m *mockHistoryService) List(_ context.Context, campaignID string, limit int) ([]domain.PublishRecord, error) {
	m.campaignID = campaignID
	m.limit = limit
	return m.records, m.err
}

func (m *mockHistoryService) Upload(_ context.Context, uploadID string) ([]domain.PublishRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.PublishRecord
	for _, rec := range m.records {
		if rec.UploadID == uploadID {
			out = append(out, rec)
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.Settings
	values   map[string]string
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		return domain.DefaultSettings(), nil
	}
	return m.settings, nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

// resetFlags restores every flag of cmd to its default, since cobra keeps
// values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// setupServices swaps in the given services and returns a restore function.
func setupServices(s *Services) func() {
	old := Services{
		Settings:     settingsService,
		Publish:      publishService,
		Markup:       markupService,
		Ingest:       ingestService,
		DryRunIngest: dryRunIngestService,
		History:      historyService,
		WorkDir:      workDir,
	}
	oldBootstrap := bootstrap
	bootstrap = nil
	SetServices(s)
	return func() {
		SetServices(&old)
		bootstrap = oldBootstrap
	}
}
