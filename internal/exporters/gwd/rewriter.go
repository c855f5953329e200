package gwd

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/creative-publisher/internal/core/domain"
	"github.com/custodia-labs/creative-publisher/internal/core/ports/driven"
)

// Ensure Rewriter implements the interface.
var _ driven.ClickthroughRewriter = (*Rewriter)(nil)

var (
	// exitCall finds the start of an exit(...) call; the argument list is
	// delimited by scanning for the balancing parenthesis.
	exitCall = regexp.MustCompile(`\.exit\(`)

	// urlArgument is a quoted absolute URL immediately followed by a comma.
	urlArgument = regexp.MustCompile(`'https?://[^'\s]*',|"https?://[^"\s]*",`)
)

// Rewriter routes exit-call clickthrough URLs through the ad server redirect.
type Rewriter struct{}

// NewRewriter creates a GWD clickthrough rewriter.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite replaces every URL argument of every exit call with the redirect
// expression followed by the original literal. Quote style and the trailing
// comma are kept. Calls without a URL argument are left untouched.
func (r *Rewriter) Rewrite(markup string) string {
	starts := exitCall.FindAllStringIndex(markup, -1)
	if len(starts) == 0 {
		return markup
	}

	var b strings.Builder
	b.Grow(len(markup))

	last := 0
	for _, loc := range starts {
		if loc[0] < last {
			// Inside a call that was already rewritten.
			continue
		}
		end := closingParen(markup, loc[1])
		if end < 0 {
			continue
		}
		b.WriteString(markup[last:loc[0]])
		b.WriteString(urlArgument.ReplaceAllStringFunc(markup[loc[0]:end], domain.RedirectTo))
		last = end
	}
	b.WriteString(markup[last:])

	return b.String()
}

// closingParen returns the index just past the parenthesis that closes a
// call whose argument list starts at from, or -1 if it is never closed.
// Parentheses inside string literals are ignored.
func closingParen(s string, from int) int {
	depth := 1
	for i := from; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '"', '`':
			j := closingQuote(s, i+1, c)
			if j < 0 {
				return -1
			}
			i = j
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// closingQuote returns the index of the unescaped quote q at or after from.
func closingQuote(s string, from int, q byte) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}
