package mcp

import (
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Publish validates packages.
	Publish driving.PublishService

	// Markup rewrites markup and derives keys.
	Markup driving.MarkupService

	// History exposes publish history as resources. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Publish == nil {
		return ErrMissingPublishService
	}
	if p.Markup == nil {
		return ErrMissingMarkupService
	}
	return nil
}
