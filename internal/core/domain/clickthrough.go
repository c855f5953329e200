package domain

// RedirectExpression decodes the ad server's click macro from the current
// location. Rewritten clickthroughs concatenate it with the original URL.
const RedirectExpression = "decodeURIComponent(window.location.href.split('?adserver=')[1])"

// RedirectTo returns the expression that replaces a quoted URL literal.
// literal keeps its quotes and any trailing punctuation.
func RedirectTo(literal string) string {
	return RedirectExpression + " + " + literal
}
