package mcp

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// ValidatePackageInput is the input schema for the validate_package tool.
type ValidatePackageInput struct {
	Directory string `json:"directory" jsonschema:"path of the extracted package directory"`
	Basename  string `json:"basename,omitempty" jsonschema:"archive basename; defaults to the directory name"`
	Exporter  string `json:"exporter,omitempty" jsonschema:"gwd or conversio; anything else is treated as gwd"`
}

// ValidatePackageOutput is the output schema for the validate_package tool.
type ValidatePackageOutput struct {
	Valid    bool   `json:"valid"`
	Exporter string `json:"exporter"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

// RewriteMarkupInput is the input schema for the rewrite_markup tool.
type RewriteMarkupInput struct {
	Markup   string `json:"markup" jsonschema:"HTML document to rewrite"`
	Exporter string `json:"exporter,omitempty" jsonschema:"gwd or conversio; anything else is treated as gwd"`
}

// RewriteMarkupOutput is the output schema for the rewrite_markup tool.
type RewriteMarkupOutput struct {
	Markup  string `json:"markup"`
	Changed bool   `json:"changed"`
}

// DeriveKeyInput is the input schema for the derive_key tool.
type DeriveKeyInput struct {
	FilePath   string `json:"file_path" jsonschema:"absolute path of the file inside the package"`
	PackageDir string `json:"package_dir" jsonschema:"package root directory"`
	CampaignID string `json:"campaign_id" jsonschema:"campaign identifier"`
	Basename   string `json:"basename" jsonschema:"package basename"`
	UploadID   string `json:"upload_id" jsonschema:"upload identifier"`
}

// DeriveKeyOutput is the output schema for the derive_key tool.
type DeriveKeyOutput struct {
	Key string `json:"key"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_package",
		Description: "Check an extracted creative package against its exporter's rules",
	}, s.handleValidatePackage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rewrite_markup",
		Description: "Preview the clickthrough rewrite applied to a markup file at publish time",
	}, s.handleRewriteMarkup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "derive_key",
		Description: "Derive the storage key a package file is published under",
	}, s.handleDeriveKey)
}

// handleValidatePackage handles the validate_package tool invocation.
// A rejected package is a successful call with valid=false.
func (s *Server) handleValidatePackage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidatePackageInput,
) (*mcp.CallToolResult, ValidatePackageOutput, error) {
	if input.Directory == "" {
		return nil, ValidatePackageOutput{}, fmt.Errorf("%w: directory is required", domain.ErrInvalidInput)
	}

	basename := input.Basename
	if basename == "" {
		basename = filepath.Base(filepath.Clean(input.Directory))
	}
	exporter := domain.ParseExporter(input.Exporter)

	output := ValidatePackageOutput{Exporter: exporter.Effective().String()}

	err := s.ports.Publish.Validate(ctx, domain.Package{
		Basename:      basename,
		RootDirectory: input.Directory,
		Exporter:      exporter,
	})

	var verr *domain.ValidationError
	switch {
	case err == nil:
		output.Valid = true
	case errors.As(err, &verr):
		output.Code = string(verr.Code)
		output.Message = verr.Message
	default:
		return nil, ValidatePackageOutput{}, err
	}

	return nil, output, nil
}

// handleRewriteMarkup handles the rewrite_markup tool invocation.
func (s *Server) handleRewriteMarkup(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RewriteMarkupInput,
) (*mcp.CallToolResult, RewriteMarkupOutput, error) {
	rewritten := s.ports.Markup.Rewrite(domain.ParseExporter(input.Exporter), input.Markup)

	return nil, RewriteMarkupOutput{
		Markup:  rewritten,
		Changed: rewritten != input.Markup,
	}, nil
}

// handleDeriveKey handles the derive_key tool invocation.
func (s *Server) handleDeriveKey(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DeriveKeyInput,
) (*mcp.CallToolResult, DeriveKeyOutput, error) {
	if input.FilePath == "" || input.CampaignID == "" || input.Basename == "" || input.UploadID == "" {
		return nil, DeriveKeyOutput{}, fmt.Errorf(
			"%w: file_path, campaign_id, basename and upload_id are required", domain.ErrInvalidInput)
	}

	key := s.ports.Markup.ObjectKey(input.FilePath, input.PackageDir, input.CampaignID, input.Basename, input.UploadID)
	return nil, DeriveKeyOutput{Key: key}, nil
}
