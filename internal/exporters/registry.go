package exporters

import (
	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
	"github.com/custodia-labs/creative-publisher/internal/exporters/conversio"
	"github.com/custodia-labs/creative-publisher/internal/exporters/gwd"
)

// Ensure Registry implements the interface.
var _ driven.ExporterPolicies = (*Registry)(nil)

// Policy bundles the validator and rewriter of one exporter.
type Policy struct {
	Validator driven.PackageValidator
	Rewriter  driven.ClickthroughRewriter
}

// Registry maps exporters to their policies. Lookups for exporters that
// were never registered fall back to the fallback exporter's policy.
type Registry struct {
	policies map[domain.Exporter]Policy
	fallback domain.Exporter
}

// NewRegistry creates an empty registry falling back to fallback.
func NewRegistry(fallback domain.Exporter) *Registry {
	return &Registry{
		policies: make(map[domain.Exporter]Policy),
		fallback: fallback,
	}
}

// NewDefaultRegistry registers the GWD and Conversio policies, with GWD
// as the fallback for unrecognised or absent exporters.
func NewDefaultRegistry(lister driven.FileLister, reader driven.FileReader) *Registry {
	r := NewRegistry(domain.ExporterGWD)
	r.Register(domain.ExporterGWD, Policy{
		Validator: gwd.NewValidator(lister, reader),
		Rewriter:  gwd.NewRewriter(),
	})
	r.Register(domain.ExporterConversio, Policy{
		Validator: conversio.NewValidator(lister, reader),
		Rewriter:  conversio.NewRewriter(),
	})
	return r
}

// Register adds or replaces the policy for an exporter.
func (r *Registry) Register(exporter domain.Exporter, policy Policy) {
	r.policies[exporter] = policy
}

// Policy returns the policy that applies to exporter.
func (r *Registry) Policy(exporter domain.Exporter) Policy {
	if p, ok := r.policies[exporter]; ok {
		return p
	}
	return r.policies[r.fallback]
}

// Validator returns the validator that applies to exporter.
func (r *Registry) Validator(exporter domain.Exporter) driven.PackageValidator {
	return r.Policy(exporter).Validator
}

// Rewriter returns the rewriter that applies to exporter.
func (r *Registry) Rewriter(exporter domain.Exporter) driven.ClickthroughRewriter {
	return r.Policy(exporter).Rewriter
}
