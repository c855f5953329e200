// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FileLister / FileReader: Read an extracted package tree
//   - PackageValidator: Accept or reject a package (one per exporter)
//   - ClickthroughRewriter: Rewrite clickthrough URLs in markup (one per exporter)
//   - ExporterPolicies: Dispatch table from exporter to validator/rewriter
//   - ObjectStore: Primary object-storage backend
//   - ArchiveExtractor: Unpack uploaded archives
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ObjectStore (secondary): Best-effort mirror backend
//   - PublishRecordStore: Publish history. Without it nothing is recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or exporter package
package driven
