package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for publisher resources.
	uriScheme = "crpub://"

	// historyLimit caps the history resource.
	historyLimit = 50
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history",
		Name:        "history",
		Description: "Most recent published packages, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "uploads/{uploadId}",
		Name:        "upload",
		Description: "Packages published under one upload id",
		MIMEType:    "application/json",
	}, s.handleUploadResource)
}

// recordInfo is the JSON shape of a publish record.
type recordInfo struct {
	UploadID    string `json:"upload_id"`
	CampaignID  string `json:"campaign_id"`
	Basename    string `json:"basename"`
	Exporter    string `json:"exporter"`
	ObjectCount int    `json:"object_count"`
	RootKey     string `json:"root_key,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// handleHistoryResource returns recent publish records.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	records, err := s.ports.History.List(ctx, "", historyLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	return marshalRecords(req.Params.URI, records)
}

// handleUploadResource returns the records of one upload.
func (s *Server) handleUploadResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.History == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	uploadID := extractUploadID(req.Params.URI)
	if uploadID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.History.Upload(ctx, uploadID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting upload: %w", err)
	}

	return marshalRecords(req.Params.URI, records)
}

func marshalRecords(uri string, records []domain.PublishRecord) (*mcp.ReadResourceResult, error) {
	infos := make([]recordInfo, len(records))
	for i, rec := range records {
		infos[i] = recordInfo{
			UploadID:    rec.UploadID,
			CampaignID:  rec.CampaignID,
			Basename:    rec.Basename,
			Exporter:    rec.Exporter.Effective().String(),
			ObjectCount: rec.ObjectCount,
			RootKey:     rec.RootKey,
			CreatedAt:   rec.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling records: %w", err)
	}

	return jsonResult(uri, string(data)), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}

// extractUploadID extracts the upload ID from a URI like crpub://uploads/{uploadId}.
func extractUploadID(uri string) string {
	const prefix = uriScheme + "uploads/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
