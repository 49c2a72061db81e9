package render

import (
	"context"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alnah/go-redmark/internal/block"
	"github.com/alnah/go-redmark/internal/inline"
)

// DefaultTerminalWidth is the wrap width used when none is given.
const DefaultTerminalWidth = 80

// Terminal renders blocks as ANSI-styled text for a terminal preview.
type Terminal struct {
	highlighter *ChromaHighlighter
	width       int

	headings [3]lipgloss.Style
	quote    lipgloss.Style
	codeBox  lipgloss.Style
	codeLang lipgloss.Style
	math     lipgloss.Style
	bold     lipgloss.Style
	italic   lipgloss.Style
	code     lipgloss.Style
	link     lipgloss.Style
	muted    lipgloss.Style
}

// NewTerminal creates a terminal renderer that wraps at width columns and
// colors code with the style of h. A nil h uses the default code style.
func NewTerminal(h *ChromaHighlighter, width int) *Terminal {
	if h == nil {
		h = NewChromaHighlighter(DefaultCodeStyle)
	}
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	accent := lipgloss.Color("205")
	muted := lipgloss.Color("245")
	return &Terminal{
		highlighter: h,
		width:       width,
		headings: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Underline(true).Foreground(accent),
			lipgloss.NewStyle().Bold(true).Foreground(accent),
			lipgloss.NewStyle().Bold(true),
		},
		quote: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			PaddingLeft(1).
			Foreground(muted),
		codeBox:  lipgloss.NewStyle().PaddingLeft(2),
		codeLang: lipgloss.NewStyle().Foreground(muted).Italic(true),
		math:     lipgloss.NewStyle().Italic(true).PaddingLeft(2),
		bold:     lipgloss.NewStyle().Bold(true),
		italic:   lipgloss.NewStyle().Italic(true),
		code:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		link:     lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		muted:    lipgloss.NewStyle().Foreground(muted),
	}
}

// Render returns the styled text for blocks, one block per line group.
func (t *Terminal) Render(ctx context.Context, blocks []block.Block) (string, error) {
	var out []string
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out = append(out, t.renderBlock(b))
	}
	return strings.Join(out, "\n"), nil
}

func (t *Terminal) renderBlock(b block.Block) string {
	switch v := b.(type) {
	case block.Heading:
		return t.headings[v.Level-1].Render(inline.PlainText(v.Inline))
	case block.Paragraph:
		return lipgloss.NewStyle().Width(t.width).Render(t.inline(v.Inline))
	case block.ListItem:
		marker := "•"
		if v.Ordered {
			marker = strconv.Itoa(v.Number) + "."
		}
		indent := strings.Repeat("  ", v.Depth)
		return indent + t.muted.Render(marker) + " " + t.inline(v.Inline)
	case block.Blockquote:
		return t.quote.Width(t.width - 2).Render(t.inline(v.Inline))
	case block.CodeBlock:
		return t.codeLang.Render(v.Language) + "\n" + t.codeBox.Render(t.highlight(v))
	case block.MathBlock:
		return t.math.Render(v.RawMath)
	case block.Table:
		return t.table(v)
	case block.Blank:
		return ""
	}
	return ""
}

func (t *Terminal) inline(spans []inline.Span) string {
	var b strings.Builder
	for _, sp := range spans {
		switch v := sp.(type) {
		case inline.Text:
			b.WriteString(v.Value)
		case inline.Bold:
			b.WriteString(t.bold.Render(inline.PlainText(v.Children)))
		case inline.Italic:
			b.WriteString(t.italic.Render(inline.PlainText(v.Children)))
		case inline.Code:
			b.WriteString(t.code.Render(v.Value))
		case inline.Math:
			b.WriteString(t.italic.Render(v.Value))
		case inline.Link:
			b.WriteString(t.link.Render(v.Text))
			b.WriteString(t.muted.Render(" (" + v.URL + ")"))
		case inline.Image:
			b.WriteString(t.muted.Render("[image: " + v.Alt + "]"))
		}
	}
	return b.String()
}

// highlight colors code token by token with lipgloss, one line at a time so
// that lipgloss never pads multi-line tokens.
func (t *Terminal) highlight(c block.CodeBlock) string {
	it, err := t.highlighter.Lexer(c.Language).Tokenise(nil, c.RawCode)
	if err != nil {
		return c.RawCode
	}
	style := t.highlighter.style

	var b strings.Builder
	for _, tok := range it.Tokens() {
		entry := style.Get(tok.Type)
		st := lipgloss.NewStyle()
		if entry.Colour.IsSet() {
			st = st.Foreground(lipgloss.Color(entry.Colour.String()))
		}
		if entry.Bold == chroma.Yes {
			st = st.Bold(true)
		}
		if entry.Italic == chroma.Yes {
			st = st.Italic(true)
		}
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if part != "" {
				b.WriteString(st.Render(part))
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *Terminal) table(tb block.Table) string {
	headers := make([]string, len(tb.Header))
	for i, c := range tb.Header {
		headers[i] = inline.PlainText(c.Inline)
	}
	rows := make([][]string, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = make([]string, len(row))
		for j, c := range row {
			rows[i][j] = inline.PlainText(c.Inline)
		}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.muted).
		Headers(headers...).
		Rows(rows...).
		Render()
}
