package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// stubIngestService records requests and checks the work directory exists.
type stubIngestService struct {
	mu       sync.Mutex
	requests []domain.IngestRequest
	workDirs []bool
	err      error
}

func (s *stubIngestService) Ingest(_ context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, statErr := os.Stat(req.WorkDir)
	s.requests = append(s.requests, req)
	s.workDirs = append(s.workDirs, statErr == nil)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.IngestResult{UploadID: "u-1", CampaignID: req.CampaignID}, nil
}

type outcome struct {
	archive string
	result  *domain.IngestResult
	err     error
}

func startWatcher(t *testing.T, ingest *stubIngestService) (string, string, <-chan outcome) {
	t.Helper()
	inbox := t.TempDir()
	workDir := t.TempDir()
	results := make(chan outcome, 8)

	w := New(inbox, ingest, Options{
		CampaignID: "c1",
		Exporter:   domain.ExporterConversio,
		WorkDir:    workDir,
		Settle:     50 * time.Millisecond,
		OnResult: func(archive string, result *domain.IngestResult, err error) {
			results <- outcome{archive: archive, result: result, err: err}
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// Give the watcher time to register the inbox.
	time.Sleep(50 * time.Millisecond)
	return inbox, workDir, results
}

func waitOutcome(t *testing.T, results <-chan outcome) outcome {
	t.Helper()
	select {
	case o := <-results:
		return o
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for ingest")
		return outcome{}
	}
}

func TestWatcher_IngestsNewArchive(t *testing.T) {
	ingest := &stubIngestService{}
	inbox, workDir, results := startWatcher(t, ingest)

	archive := filepath.Join(inbox, "banner.zip")
	require.NoError(t, os.WriteFile(archive, []byte("PK"), 0o600))

	o := waitOutcome(t, results)
	require.NoError(t, o.err)
	assert.Equal(t, archive, o.archive)
	assert.Equal(t, "u-1", o.result.UploadID)

	ingest.mu.Lock()
	defer ingest.mu.Unlock()
	require.Len(t, ingest.requests, 1)
	req := ingest.requests[0]
	assert.Equal(t, "c1", req.CampaignID)
	assert.Equal(t, domain.ExporterConversio, req.Exporter)
	assert.Equal(t, []string{archive}, req.Archives)
	assert.Equal(t, workDir, filepath.Dir(req.WorkDir))
	assert.True(t, ingest.workDirs[0], "work directory exists during ingest")

	_, err := os.Stat(req.WorkDir)
	assert.True(t, os.IsNotExist(err), "work directory removed afterwards")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	ingest := &stubIngestService{}
	inbox, _, results := startWatcher(t, ingest)

	require.NoError(t, os.WriteFile(filepath.Join(inbox, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, ".partial.zip"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(inbox, "ad.ZIP"), []byte("PK"), 0o600))

	o := waitOutcome(t, results)
	assert.Equal(t, "ad.ZIP", filepath.Base(o.archive))

	select {
	case extra := <-results:
		t.Fatalf("unexpected ingest of %s", extra.archive)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_ReportsIngestErrors(t *testing.T) {
	boom := errors.New("upload failed")
	ingest := &stubIngestService{err: boom}
	inbox, _, results := startWatcher(t, ingest)

	require.NoError(t, os.WriteFile(filepath.Join(inbox, "banner.zip"), []byte("PK"), 0o600))

	o := waitOutcome(t, results)
	assert.ErrorIs(t, o.err, boom)
	assert.Nil(t, o.result)
}

func TestWatcher_RequiresIngestService(t *testing.T) {
	w := New(t.TempDir(), nil, Options{})
	err := w.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatcher_MissingInbox(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), &stubIngestService{}, Options{})
	err := w.Run(context.Background())
	assert.Error(t, err)
}

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.zip": now.Add(-3 * time.Second),
		"a.zip": now.Add(-5 * time.Second),
		"c.zip": now.Add(-100 * time.Millisecond),
	}

	ready := settled(pending, now, time.Second)
	assert.Equal(t, []string{"a.zip", "b.zip"}, ready)
}

func TestIsArchive(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/in/banner.zip", true},
		{"/in/banner (1).ZIP", true},
		{"/in/.banner.zip", false},
		{"/in/banner.zip.part", false},
		{"/in/banner.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsArchive(tt.path))
		})
	}
}
