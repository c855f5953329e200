// Package exporters provides the per-exporter validation and clickthrough
// rewriting policies and the dispatch table that selects between them.
//
// Each exporter lives in its own sub-package (gwd, conversio) and is
// registered with a Registry at startup. Adding an exporter is a new
// sub-package plus one Register call.
package exporters
