package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// headingID matches the anchors produced by the slugger, which may contain
// letters outside ASCII.
var headingID = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// Sanitizer strips markup that user content must not carry, keeping the
// classes and attributes produced by HTML and the chroma highlighter.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer based on bluemonday's UGC policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("data-lang").OnElements("div")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("loading").Matching(regexp.MustCompile(`^(lazy|eager)$`)).OnElements("img")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("id").Matching(headingID).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return &Sanitizer{policy: p}
}

// Sanitize returns a cleaned copy of an HTML fragment.
func (s *Sanitizer) Sanitize(fragment string) string {
	return s.policy.Sanitize(fragment)
}
