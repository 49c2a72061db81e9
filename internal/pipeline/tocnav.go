package pipeline

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/alnah/go-redmark/internal/toc"
)

// TOCData holds TOC configuration for injection.
type TOCData struct {
	Title    string
	MinDepth int // shallowest heading level listed
	MaxDepth int // deepest heading level listed
}

// TOCInjector defines the contract for TOC injection into HTML.
type TOCInjector interface {
	InjectTOC(ctx context.Context, fragment string, items []toc.Item, data *TOCData) (string, error)
}

// TOCInjection implements TOCInjector.
type TOCInjection struct{}

// NewTOCInjection creates a new TOC injector.
func NewTOCInjection() *TOCInjection {
	return &TOCInjection{}
}

// InjectTOC builds a numbered navigation block from items and inserts it
// after the post header. A nil data, or no item within the depth range,
// returns fragment unchanged.
func (t *TOCInjection) InjectTOC(ctx context.Context, fragment string, items []toc.Item, data *TOCData) (string, error) {
	if data == nil {
		return fragment, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	nav := generateNumberedTOC(toc.Filter(items, data.MinDepth, data.MaxDepth), data.Title)
	if nav == "" {
		return fragment, nil
	}
	return insertAfterHeader(fragment, nav), nil
}

// numberingState tracks hierarchical numbering for TOC entries. The first
// level seen becomes depth 1 and skipped levels collapse to a direct child.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastDepth    int
}

// next returns the number string ("1.2.") and effective depth for level.
func (n *numberingState) next(level int) (string, int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	depth := max(level-n.minLevelSeen+1, 1)
	if n.lastDepth > 0 && depth > n.lastDepth+1 {
		depth = n.lastDepth + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.lastDepth = depth

	parts := make([]string, depth)
	for i := range depth {
		parts[i] = strconv.Itoa(n.counters[i])
	}
	return strings.Join(parts, ".") + ".", depth
}

// generateNumberedTOC uses <div> entries instead of a list so theme list
// styles do not apply.
func generateNumberedTOC(items []toc.Item, title string) string {
	if len(items) == 0 {
		return ""
	}

	var buf strings.Builder
	buf.WriteString(`<nav class="toc">`)
	if title != "" {
		buf.WriteString(`<h2 class="toc-title">`)
		buf.WriteString(html.EscapeString(title))
		buf.WriteString(`</h2>`)
	}
	buf.WriteString(`<div class="toc-list">`)

	var numbering numberingState
	for _, it := range items {
		num, depth := numbering.next(it.Level)

		buf.WriteString(`<div class="toc-item"`)
		if depth > 1 {
			fmt.Fprintf(&buf, ` style="padding-left:%.1fem"`, float64(depth-1)*1.5)
		}
		buf.WriteString(`><a href="#`)
		buf.WriteString(html.EscapeString(it.ID))
		buf.WriteString(`">`)
		buf.WriteString(num)
		buf.WriteByte(' ')
		buf.WriteString(html.EscapeString(it.Text))
		buf.WriteString(`</a></div>`)
	}

	buf.WriteString(`</div></nav>`)
	return buf.String()
}
