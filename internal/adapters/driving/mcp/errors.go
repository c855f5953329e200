// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the creative publisher. It lets AI assistants check packages, preview
// clickthrough rewrites and derive storage keys without publishing.
package mcp

import "errors"

var (
	// ErrMissingPublishService is returned when the publish service is not provided.
	ErrMissingPublishService = errors.New("mcp: publish service is required")

	// ErrMissingMarkupService is returned when the markup service is not provided.
	ErrMissingMarkupService = errors.New("mcp: markup service is required")
)
