package redmark

import (
	"github.com/alnah/go-redmark/internal/block"
	"github.com/alnah/go-redmark/internal/frontmatter"
	"github.com/alnah/go-redmark/internal/inline"
	"github.com/alnah/go-redmark/internal/post"
	"github.com/alnah/go-redmark/internal/toc"
)

// ParseDocument splits raw into header metadata and body. It never fails:
// malformed header lines are skipped and a missing header yields empty
// metadata with the trimmed input as body.
func ParseDocument(raw string) Document {
	return frontmatter.Parse(raw)
}

// ParseBlocks segments a body into blocks. Unterminated code, math and
// tables are flushed at end of input.
func ParseBlocks(body string) []Block {
	return block.Parse(body)
}

// ParseInline resolves the inline spans of one line of text.
func ParseInline(text string) []Span {
	return inline.Parse(text)
}

// ExtractTOC lists the headings of body with unique anchor ids.
func ExtractTOC(body string) []TocItem {
	return toc.Extract(body)
}

// Slugify turns heading text into an anchor fragment. The result may be
// empty.
func Slugify(text string) string {
	return toc.Slugify(text)
}

// BuildPost summarizes doc for headers and indexes.
func BuildPost(doc Document, fileName string, opts PostOptions) Post {
	return post.Build(doc, fileName, opts)
}
