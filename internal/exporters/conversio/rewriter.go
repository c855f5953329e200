package conversio

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.ClickthroughRewriter = (*Rewriter)(nil)

// clickTagAssignment is a clickTag declaration initialised with a URL.
// Only the identifier is case-insensitive. Group 1 is everything up to the
// literal, group 2 a double-quoted URL and group 3 a single-quoted one.
var clickTagAssignment = regexp.MustCompile(
	`(\b(?:var|let|const)\s+(?i:clicktag)\s*=\s*)(?:"(https?://[^"\s]*)"|'(https?://[^'\s]*)')`,
)

// Rewriter routes clickTag URLs through the ad server redirect.
type Rewriter struct{}

// NewRewriter creates a Conversio clickthrough rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite replaces the URL of every clickTag declaration with the redirect
// expression followed by the URL in double quotes. A URL that itself holds a
// double quote keeps its single quotes. The keyword, identifier casing and
// whitespace around "=" are kept as written.
func (r *Rewriter) Rewrite(markup string) string {
	return clickTagAssignment.ReplaceAllStringFunc(markup, func(decl string) string {
		m := clickTagAssignment.FindStringSubmatch(decl)
		if m == nil {
			return decl
		}
		literal := `"` + m[2] + `"`
		if m[2] == "" {
			literal = `"` + m[3] + `"`
			if strings.Contains(m[3], `"`) {
				literal = `'` + m[3] + `'`
			}
		}
		return m[1] + domain.RedirectTo(literal)
	})
}
