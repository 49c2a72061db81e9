// Package inline resolves the inline formatting of a single line of redmark
// text into a tree of spans.
//
// Six constructs are recognized, each bound tighter than the next:
//
//	![alt](url)   image
//	[text](url)   link
//	$tex$         math
//	`code`        code
//	**text**      bold
//	*text*        italic
//
// A construct only matches inside text left unclaimed by tighter ones, so a
// "*" inside a link label or a code span never starts emphasis. Bold and
// italic interiors are resolved again with the full table. Anything that does
// not form a complete construct stays literal.
package inline

import (
	"sort"
	"strings"
)

// Span is one node of resolved inline content.
type Span interface {
	span()
}

// Text is literal text.
type Text struct {
	Value string
}

// Bold is strong emphasis around nested spans.
type Bold struct {
	Children []Span
}

// Italic is emphasis around nested spans.
type Italic struct {
	Children []Span
}

// Code is an opaque code span.
type Code struct {
	Value string
}

// Math is an opaque TeX expression.
type Math struct {
	Value string
}

// Link is a hyperlink with a plain-text label.
type Link struct {
	Text string
	URL  string
}

// Image is an embedded image reference.
type Image struct {
	Alt string
	URL string
}

func (Text) span()   {}
func (Bold) span()   {}
func (Italic) span() {}
func (Code) span()   {}
func (Math) span()   {}
func (Link) span()   {}
func (Image) span()  {}

// Rule names an inline construct.
type Rule int

const (
	RuleImage Rule = iota
	RuleLink
	RuleMath
	RuleCode
	RuleBold
	RuleItalic
)

func (r Rule) String() string {
	switch r {
	case RuleImage:
		return "image"
	case RuleLink:
		return "link"
	case RuleMath:
		return "math"
	case RuleCode:
		return "code"
	case RuleBold:
		return "bold"
	case RuleItalic:
		return "italic"
	}
	return "unknown"
}

// matcher tries to match its construct starting exactly at s[i] without
// reading past hi. It returns the end offset and the resolved span.
type matcher func(s string, i, hi int) (end int, sp Span, ok bool)

type rule struct {
	name  Rule
	match matcher
}

// precedence lists the rules from tightest to loosest binding. It is filled
// in init because the emphasis matchers call back into Parse.
var precedence []rule

func init() {
	precedence = []rule{
		{RuleImage, matchImage},
		{RuleLink, matchLink},
		{RuleMath, delimited('$', func(v string) Span { return Math{Value: v} })},
		{RuleCode, delimited('`', func(v string) Span { return Code{Value: v} })},
		{RuleBold, matchBold},
		{RuleItalic, delimited('*', func(v string) Span { return Italic{Children: Parse(v)} })},
	}
}

// Precedence returns the rules from tightest to loosest binding.
func Precedence() []Rule {
	out := make([]Rule, len(precedence))
	for i, r := range precedence {
		out[i] = r.name
	}
	return out
}

type claim struct {
	start, end int
	span       Span
}

type gap struct {
	lo, hi int
}

// Parse resolves the inline spans of text. Adjacent literal text is always
// merged into a single Text node. Parse of "" returns nil.
func Parse(text string) []Span {
	if text == "" {
		return nil
	}

	gaps := []gap{{0, len(text)}}
	var claims []claim
	for _, r := range precedence {
		var next []gap
		for _, g := range gaps {
			next = append(next, scan(text, g, r.match, &claims)...)
		}
		gaps = next
	}

	sort.Slice(claims, func(a, b int) bool { return claims[a].start < claims[b].start })

	spans := make([]Span, 0, 2*len(claims)+1)
	pos := 0
	for _, c := range claims {
		if c.start > pos {
			spans = append(spans, Text{Value: text[pos:c.start]})
		}
		spans = append(spans, c.span)
		pos = c.end
	}
	if pos < len(text) {
		spans = append(spans, Text{Value: text[pos:]})
	}
	return spans
}

// scan claims every match of m inside g, leftmost first, and returns the
// sub-gaps that remain free.
func scan(s string, g gap, m matcher, claims *[]claim) []gap {
	var free []gap
	lo := g.lo
	for i := g.lo; i < g.hi; {
		end, sp, ok := m(s, i, g.hi)
		if !ok {
			i++
			continue
		}
		if i > lo {
			free = append(free, gap{lo, i})
		}
		*claims = append(*claims, claim{start: i, end: end, span: sp})
		i, lo = end, end
	}
	if lo < g.hi {
		free = append(free, gap{lo, g.hi})
	}
	return free
}

// closeAfter returns the index of the first delim in s[from:hi], or -1.
func closeAfter(s string, from, hi int, delim byte) int {
	if from >= hi {
		return -1
	}
	j := strings.IndexByte(s[from:hi], delim)
	if j < 0 {
		return -1
	}
	return from + j
}

// bracketed matches "[label](url)" at s[i]. The label may be empty only when
// allowEmpty is set. The url must be non-empty.
func bracketed(s string, i, hi int, allowEmpty bool) (label, url string, end int, ok bool) {
	if i >= hi || s[i] != '[' {
		return "", "", 0, false
	}
	rb := closeAfter(s, i+1, hi, ']')
	if rb < 0 || (!allowEmpty && rb == i+1) {
		return "", "", 0, false
	}
	if rb+1 >= hi || s[rb+1] != '(' {
		return "", "", 0, false
	}
	rp := closeAfter(s, rb+2, hi, ')')
	if rp < 0 || rp == rb+2 {
		return "", "", 0, false
	}
	return s[i+1 : rb], s[rb+2 : rp], rp + 1, true
}

func matchImage(s string, i, hi int) (int, Span, bool) {
	if s[i] != '!' {
		return 0, nil, false
	}
	alt, url, end, ok := bracketed(s, i+1, hi, true)
	if !ok {
		return 0, nil, false
	}
	return end, Image{Alt: alt, URL: url}, true
}

func matchLink(s string, i, hi int) (int, Span, bool) {
	label, url, end, ok := bracketed(s, i, hi, false)
	if !ok {
		return 0, nil, false
	}
	return end, Link{Text: label, URL: url}, true
}

// delimited builds a matcher for a construct wrapped in a single delimiter
// byte with a non-empty interior free of that byte.
func delimited(delim byte, build func(string) Span) matcher {
	return func(s string, i, hi int) (int, Span, bool) {
		if s[i] != delim {
			return 0, nil, false
		}
		j := closeAfter(s, i+1, hi, delim)
		if j < 0 || j == i+1 {
			return 0, nil, false
		}
		return j + 1, build(s[i+1 : j]), true
	}
}

func matchBold(s string, i, hi int) (int, Span, bool) {
	if i+1 >= hi || s[i] != '*' || s[i+1] != '*' {
		return 0, nil, false
	}
	j := strings.Index(s[i+2:hi], "**")
	if j <= 0 {
		return 0, nil, false
	}
	inner := s[i+2 : i+2+j]
	return i + 2 + j + 2, Bold{Children: Parse(inner)}, true
}

// PlainText flattens spans to their visible text. Links contribute their
// label, images their alt text, code and math their raw source.
func PlainText(spans []Span) string {
	var b strings.Builder
	writePlain(&b, spans)
	return b.String()
}

func writePlain(b *strings.Builder, spans []Span) {
	for _, sp := range spans {
		switch v := sp.(type) {
		case Text:
			b.WriteString(v.Value)
		case Bold:
			writePlain(b, v.Children)
		case Italic:
			writePlain(b, v.Children)
		case Code:
			b.WriteString(v.Value)
		case Math:
			b.WriteString(v.Value)
		case Link:
			b.WriteString(v.Text)
		case Image:
			b.WriteString(v.Alt)
		}
	}
}
