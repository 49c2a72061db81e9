// Package toc builds the table of contents of a redmark body and owns the
// heading anchor rules shared by every other stage.
package toc

import (
	"regexp"
	"strings"

	"github.com/alnah/go-redmark/internal/frontmatter"
)

// Item is one table-of-contents entry.
type Item struct {
	ID    string `yaml:"id" json:"id"`
	Text  string `yaml:"text" json:"text"`
	Level int    `yaml:"level" json:"level"`
	Line  int    `yaml:"line" json:"line"`
}

// headingLine matches an ATX heading of level 1 to 6.
var headingLine = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)

// CleanText strips the markup characters '#', '*' and '`' from heading text
// and trims the result.
func CleanText(text string) string {
	text = strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '`':
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

// Extract returns the headings of body in document order with unique ids.
// Headings inside fenced code are ignored, as are headings whose cleaned
// text is empty. Line is the zero-based index of the heading line in body.
func Extract(body string, opts ...Option) []Item {
	lines := frontmatter.SplitLines(body)
	slugger := NewSlugger(opts...)

	var items []Item
	inFence := false
	for n := frontmatter.BodyStart(lines); n < len(lines); n++ {
		line := lines[n]
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		m := headingLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		text := CleanText(m[2])
		if text == "" {
			continue
		}
		items = append(items, Item{
			ID:    slugger.ID(text),
			Text:  text,
			Level: len(m[1]),
			Line:  n,
		})
	}
	return items
}

// Filter returns the items whose level lies within [minLevel, maxLevel].
func Filter(items []Item, minLevel, maxLevel int) []Item {
	var out []Item
	for _, it := range items {
		if it.Level >= minLevel && it.Level <= maxLevel {
			out = append(out, it)
		}
	}
	return out
}
