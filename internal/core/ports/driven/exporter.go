package driven

import (
	"context"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
)

// PackageValidator accepts or rejects an extracted package.
// A nil error means the package may be published. Rejections are
// *domain.ValidationError values and are returned unwrapped.
type PackageValidator interface {
	Validate(ctx context.Context, basename, dir string) error
}

// ClickthroughRewriter rewrites clickthrough URL literals in markup into the
// redirect expression. It is a pure transform with no failure modes.
//
// Rewriting is not idempotent: a second pass may wrap an already rewritten
// literal again. Callers apply it at most once per file per upload.
type ClickthroughRewriter interface {
	Rewrite(markup string) string
}

// ExporterPolicies resolves the validator and rewriter for an exporter.
// Unknown or unspecified exporters resolve to the GWD policies.
type ExporterPolicies interface {
	Validator(exporter domain.Exporter) PackageValidator
	Rewriter(exporter domain.Exporter) ClickthroughRewriter
}
