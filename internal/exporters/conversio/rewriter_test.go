package conversio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const redirect = "decodeURIComponent(window.location.href.split('?adserver=')[1]) + "

func TestRewriter_ClickTagDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "var with spaces",
			input: `var clickTag = "http://example.com/"`,
			want:  `var clickTag = ` + redirect + `"http://example.com/"`,
		},
		{
			name:  "let",
			input: `let clickTag = "http://example.com/"`,
			want:  `let clickTag = ` + redirect + `"http://example.com/"`,
		},
		{
			name:  "const",
			input: `const clickTag = "https://example.com/"`,
			want:  `const clickTag = ` + redirect + `"https://example.com/"`,
		},
		{
			name:  "mixed case identifier",
			input: `var ClickTAG = "http://example.com/"`,
			want:  `var ClickTAG = ` + redirect + `"http://example.com/"`,
		},
		{
			name:  "no whitespace around operator",
			input: `var clickTag="http://example.com/";`,
			want:  `var clickTag=` + redirect + `"http://example.com/";`,
		},
		{
			name:  "extra whitespace preserved",
			input: `var clickTag  =  "http://example.com/";`,
			want:  `var clickTag  =  ` + redirect + `"http://example.com/";`,
		},
		{
			name:  "single quotes become double quotes",
			input: `var clickTag = 'http://example.com/?a=1';`,
			want:  `var clickTag = ` + redirect + `"http://example.com/?a=1";`,
		},
		{
			name:  "double-quoted URL holding a single quote",
			input: `var clickTag = "http://x.com/?a='b'";`,
			want:  `var clickTag = ` + redirect + `"http://x.com/?a='b'";`,
		},
		{
			name:  "single-quoted URL holding a double quote keeps its quotes",
			input: `var clickTag = 'http://x.com/?a="b"';`,
			want:  `var clickTag = ` + redirect + `'http://x.com/?a="b"';`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRewriter().Rewrite(tt.input))
		})
	}
}

func TestRewriter_InsideMarkup(t *testing.T) {
	raw := `<html><head><script>
	var clickTag = "http://www.example.com/landing";
	</script></head><body></body></html>`
	want := `<html><head><script>
	var clickTag = ` + redirect + `"http://www.example.com/landing";
	</script></head><body></body></html>`

	assert.Equal(t, want, NewRewriter().Rewrite(raw))
}

func TestRewriter_NoMatchIsNoop(t *testing.T) {
	tests := []string{
		``,
		`<p>no script</p>`,
		`clickTag = "http://example.com/"`,
		`var clickTag = ""`,
		`var clickTagUrl = "http://example.com/"`,
		`var otherTag = "http://example.com/"`,
		`window.open(clickTag);`,
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, NewRewriter().Rewrite(input))
		})
	}
}

func TestRewriter_ReapplicationIsNoop(t *testing.T) {
	r := NewRewriter()
	once := r.Rewrite(`<script>var clickTag = 'http://example.com/';</script>`)

	assert.Equal(t, `<script>var clickTag = `+redirect+`"http://example.com/";</script>`, once)
	assert.Equal(t, once, r.Rewrite(once))
}
