// Package domain defines the core entities of the creative publisher.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Package: An extracted creative archive awaiting validation/publish
//   - Exporter: The authoring tool that produced a package
//   - StoredObject: One file addressed for an object-storage backend
//   - UploadManifest: The ordered keys produced by one publish
//   - PublishRecord: A persisted summary of a completed publish
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
