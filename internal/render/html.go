package render

import (
	"bytes"
	"context"
	"strconv"

	"github.com/rs/zerolog"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-redmark/internal/block"
	"github.com/alnah/go-redmark/internal/inline"
)

// HTML renders blocks to an HTML fragment. It is safe for concurrent use
// when its collaborators are.
type HTML struct {
	highlighter Highlighter
	typesetter  Typesetter
	logger      zerolog.Logger
}

// NewHTML creates an HTML renderer with a chroma highlighter in the default
// style and a client-side typesetter.
func NewHTML(opts ...Option) *HTML {
	r := &HTML{
		highlighter: NewChromaHighlighter(DefaultCodeStyle),
		typesetter:  NewClientTypesetter(),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes blocks as HTML. Consecutive list items are nested by depth
// and consecutive blockquote lines share one blockquote.
func (r *HTML) Render(ctx context.Context, blocks []block.Block) (string, error) {
	var buf bytes.Buffer
	for i := 0; i < len(blocks); {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		switch b := blocks[i].(type) {
		case block.ListItem:
			j := i
			var items []block.ListItem
			for ; j < len(blocks); j++ {
				it, ok := blocks[j].(block.ListItem)
				if !ok {
					break
				}
				items = append(items, it)
			}
			r.writeList(&buf, items)
			i = j
			continue
		case block.Blockquote:
			j := i
			buf.WriteString("<blockquote>\n")
			for ; j < len(blocks); j++ {
				q, ok := blocks[j].(block.Blockquote)
				if !ok {
					break
				}
				buf.WriteString("<p>")
				r.writeInline(&buf, q.Inline)
				buf.WriteString("</p>\n")
			}
			buf.WriteString("</blockquote>\n")
			i = j
			continue
		case block.Heading:
			r.writeHeading(&buf, b)
		case block.Paragraph:
			buf.WriteString("<p>")
			r.writeInline(&buf, b.Inline)
			buf.WriteString("</p>\n")
		case block.CodeBlock:
			r.writeCode(&buf, b)
		case block.MathBlock:
			r.writeMath(&buf, b.RawMath, true)
			buf.WriteByte('\n')
		case block.Table:
			r.writeTable(&buf, b)
		case block.Blank:
			buf.WriteString(`<div class="spacer"></div>` + "\n")
		}
		i++
	}
	return buf.String(), nil
}

func escape(buf *bytes.Buffer, s string) {
	buf.Write(util.EscapeHTML([]byte(s)))
}

func (r *HTML) writeHeading(buf *bytes.Buffer, h block.Heading) {
	level := strconv.Itoa(h.Level)
	buf.WriteString("<h" + level + ` id="`)
	escape(buf, h.ID)
	buf.WriteString(`">`)
	r.writeInline(buf, h.Inline)
	buf.WriteString("</h" + level + ">\n")
}

type openList struct {
	depth   int
	ordered bool
}

func (r *HTML) writeList(buf *bytes.Buffer, items []block.ListItem) {
	var stack []openList
	for _, it := range items {
		for len(stack) > 0 && stack[len(stack)-1].depth > it.Depth {
			closeList(buf, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
		if n := len(stack); n > 0 && stack[n-1].depth == it.Depth {
			if stack[n-1].ordered == it.Ordered {
				buf.WriteString("</li>\n<li>")
				r.writeInline(buf, it.Inline)
				continue
			}
			closeList(buf, stack[n-1])
			stack = stack[:n-1]
		}
		switch {
		case !it.Ordered:
			buf.WriteString("<ul>\n<li>")
		case it.Number > 1:
			buf.WriteString(`<ol start="` + strconv.Itoa(it.Number) + `">` + "\n<li>")
		default:
			buf.WriteString("<ol>\n<li>")
		}
		stack = append(stack, openList{depth: it.Depth, ordered: it.Ordered})
		r.writeInline(buf, it.Inline)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		closeList(buf, stack[i])
	}
}

func closeList(buf *bytes.Buffer, l openList) {
	if l.ordered {
		buf.WriteString("</li>\n</ol>\n")
		return
	}
	buf.WriteString("</li>\n</ul>\n")
}

func (r *HTML) writeCode(buf *bytes.Buffer, c block.CodeBlock) {
	buf.WriteString(`<div class="code-block" data-lang="`)
	escape(buf, c.Language)
	buf.WriteString(`"><div class="code-lang">`)
	escape(buf, c.Language)
	buf.WriteString("</div>\n")

	if r.highlighter != nil {
		out, err := r.highlighter.Highlight(c.RawCode, c.Language)
		if err == nil {
			buf.WriteString(out)
			buf.WriteString("</div>\n")
			return
		}
		r.logger.Debug().Err(err).Str("lang", c.Language).Msg("highlighting failed, rendering plain code")
	}

	buf.WriteString(`<pre><code class="language-`)
	escape(buf, c.Language)
	buf.WriteString(`">`)
	escape(buf, c.RawCode)
	buf.WriteString("</code></pre>\n</div>\n")
}

func (r *HTML) writeMath(buf *bytes.Buffer, src string, display bool) {
	if r.typesetter != nil {
		out, err := r.typesetter.Typeset(src, display)
		if err == nil {
			buf.WriteString(out)
			return
		}
		r.logger.Debug().Err(err).Bool("display", display).Msg("typesetting failed, rendering source")
	}

	if display {
		buf.WriteString(`<p class="math-source">`)
		escape(buf, "$$"+src+"$$")
		buf.WriteString("</p>")
		return
	}
	escape(buf, "$"+src+"$")
}

func (r *HTML) writeTable(buf *bytes.Buffer, t block.Table) {
	buf.WriteString("<div class=\"table-wrapper\">\n<table>\n<thead>\n<tr>")
	for _, c := range t.Header {
		buf.WriteString("<th>")
		r.writeInline(buf, c.Inline)
		buf.WriteString("</th>")
	}
	buf.WriteString("</tr>\n</thead>\n")
	if len(t.Rows) > 0 {
		buf.WriteString("<tbody>\n")
		for _, row := range t.Rows {
			buf.WriteString("<tr>")
			for _, c := range row {
				buf.WriteString("<td>")
				r.writeInline(buf, c.Inline)
				buf.WriteString("</td>")
			}
			buf.WriteString("</tr>\n")
		}
		buf.WriteString("</tbody>\n")
	}
	buf.WriteString("</table>\n</div>\n")
}

func (r *HTML) writeInline(buf *bytes.Buffer, spans []inline.Span) {
	for _, sp := range spans {
		switch v := sp.(type) {
		case inline.Text:
			escape(buf, v.Value)
		case inline.Bold:
			buf.WriteString("<strong>")
			r.writeInline(buf, v.Children)
			buf.WriteString("</strong>")
		case inline.Italic:
			buf.WriteString("<em>")
			r.writeInline(buf, v.Children)
			buf.WriteString("</em>")
		case inline.Code:
			buf.WriteString("<code>")
			escape(buf, v.Value)
			buf.WriteString("</code>")
		case inline.Math:
			r.writeMath(buf, v.Value, false)
		case inline.Link:
			writeLink(buf, v)
		case inline.Image:
			writeImage(buf, v)
		}
	}
}

// safeURL escapes dest for an attribute value. Dangerous schemes such as
// javascript: yield ok == false.
func safeURL(dest string) (string, bool) {
	b := []byte(dest)
	if gmhtml.IsDangerousURL(b) {
		return "", false
	}
	return string(util.EscapeHTML(util.URLEscape(b, true))), true
}

func writeLink(buf *bytes.Buffer, l inline.Link) {
	href, ok := safeURL(l.URL)
	if !ok {
		escape(buf, l.Text)
		return
	}
	buf.WriteString(`<a href="` + href + `" target="_blank" rel="noopener noreferrer">`)
	escape(buf, l.Text)
	buf.WriteString("</a>")
}

func writeImage(buf *bytes.Buffer, img inline.Image) {
	src, ok := safeURL(img.URL)
	if !ok {
		escape(buf, img.Alt)
		return
	}
	buf.WriteString(`<img src="` + src + `" alt="`)
	escape(buf, img.Alt)
	buf.WriteString(`" loading="lazy">`)
}
