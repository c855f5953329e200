package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

func TestExtractUploadID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid uploads URI",
			uri:      "crpub://uploads/u-123",
			expected: "u-123",
		},
		{
			name:     "invalid prefix",
			uri:      "file://uploads/u-123",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "crpub://uploads/u-123/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractUploadID(tt.uri))
		})
	}
}

func newResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func newHistoryServer(t *testing.T, history *mockHistoryService) *Server {
	t.Helper()
	ports := &Ports{
		Publish: &mockPublishService{},
		Markup:  &mockMarkupService{},
	}
	if history != nil {
		ports.History = history
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func sampleRecords() []domain.PublishRecord {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []domain.PublishRecord{
		{
			UploadID:    "u-2",
			CampaignID:  "c1",
			Basename:    "leaderboard",
			Exporter:    domain.ExporterConversio,
			ObjectCount: 4,
			RootKey:     "c1/leaderboard/u-2/index.html",
			CreatedAt:   created.Add(time.Hour),
		},
		{
			UploadID:    "u-1",
			CampaignID:  "c1",
			Basename:    "banner",
			ObjectCount: 3,
			RootKey:     "c1/banner/u-1/banner.html",
			CreatedAt:   created,
		},
	}
}

func TestHandleHistoryResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists records", func(t *testing.T) {
		server := newHistoryServer(t, &mockHistoryService{records: sampleRecords()})

		result, err := server.handleHistoryResource(ctx, newResourceRequest("crpub://history"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var infos []recordInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 2)
		assert.Equal(t, "u-2", infos[0].UploadID)
		assert.Equal(t, "conversio", infos[0].Exporter)
		assert.Equal(t, "gwd", infos[1].Exporter)
		assert.Equal(t, "2026-03-01T12:00:00Z", infos[1].CreatedAt)
	})

	t.Run("no history service returns empty list", func(t *testing.T) {
		server := newHistoryServer(t, nil)

		result, err := server.handleHistoryResource(ctx, newResourceRequest("crpub://history"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("service error", func(t *testing.T) {
		boom := errors.New("db closed")
		server := newHistoryServer(t, &mockHistoryService{err: boom})

		_, err := server.handleHistoryResource(ctx, newResourceRequest("crpub://history"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestHandleUploadResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns upload records", func(t *testing.T) {
		server := newHistoryServer(t, &mockHistoryService{records: sampleRecords()})

		result, err := server.handleUploadResource(ctx, newResourceRequest("crpub://uploads/u-1"))
		require.NoError(t, err)

		var infos []recordInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
		require.Len(t, infos, 1)
		assert.Equal(t, "banner", infos[0].Basename)
	})

	t.Run("unknown upload", func(t *testing.T) {
		server := newHistoryServer(t, &mockHistoryService{records: sampleRecords()})

		_, err := server.handleUploadResource(ctx, newResourceRequest("crpub://uploads/missing"))
		assert.Error(t, err)
	})

	t.Run("invalid URI", func(t *testing.T) {
		server := newHistoryServer(t, &mockHistoryService{})

		_, err := server.handleUploadResource(ctx, newResourceRequest("crpub://uploads/"))
		assert.Error(t, err)
	})

	t.Run("no history service", func(t *testing.T) {
		server := newHistoryServer(t, nil)

		_, err := server.handleUploadResource(ctx, newResourceRequest("crpub://uploads/u-1"))
		assert.Error(t, err)
	})
}
