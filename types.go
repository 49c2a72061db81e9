package redmark

import (
	"fmt"

	"github.com/alnah/go-redmark/internal/block"
	"github.com/alnah/go-redmark/internal/frontmatter"
	"github.com/alnah/go-redmark/internal/inline"
	"github.com/alnah/go-redmark/internal/post"
	"github.com/alnah/go-redmark/internal/render"
	"github.com/alnah/go-redmark/internal/toc"
)

// Document model.
type (
	// Document is a parsed source file: header metadata and the body text.
	Document = frontmatter.Document
	// Metadata is the ordered key/value map read from the header.
	Metadata = frontmatter.Metadata
	// Value is a metadata value: a string, a boolean or a list of strings.
	Value = frontmatter.Value
)

// Block model.
type (
	Block      = block.Block
	Heading    = block.Heading
	Paragraph  = block.Paragraph
	ListItem   = block.ListItem
	Blockquote = block.Blockquote
	CodeBlock  = block.CodeBlock
	MathBlock  = block.MathBlock
	Table      = block.Table
	Cell       = block.Cell
	Blank      = block.Blank
)

// Inline span model.
type (
	Span   = inline.Span
	Text   = inline.Text
	Bold   = inline.Bold
	Italic = inline.Italic
	Code   = inline.Code
	Math   = inline.Math
	Link   = inline.Link
	Image  = inline.Image
)

type (
	// TocItem is one table-of-contents entry.
	TocItem = toc.Item
	// Post is the summary of a document used by headers and indexes.
	Post = post.Post
	// PostOptions tunes the fallbacks used when building a Post.
	PostOptions = post.Options
)

// Collaborators.
type (
	Highlighter = render.Highlighter
	Typesetter  = render.Typesetter
)

// TOC depth bounds.
const (
	MinTOCDepth        = 1
	MaxTOCDepth        = 6
	DefaultTOCMinDepth = 2
	DefaultTOCMaxDepth = 3
)

// Input is one document to render.
type Input struct {
	Markdown  string // raw source, header included
	FileName  string // used for title and slug fallbacks
	ImageBase string // URL or directory that relative src/href resolve against
	CSS       string // appended after the theme
	TOC       *TOC   // nil disables the table of contents
	Header    bool   // render the post header above the body
	Fragment  bool   // emit the body only, without page shell or styles
}

// Result holds everything produced by a render.
type Result struct {
	HTML     []byte
	Document Document
	Blocks   []Block
	TOC      []TocItem
	Post     Post
}

// TOC configures the table of contents.
type TOC struct {
	Title    string // empty means no title
	MinDepth int    // 0 means DefaultTOCMinDepth
	MaxDepth int    // 0 means DefaultTOCMaxDepth
}

// Validate checks that depths are within 1..6 and ordered.
// Returns nil if t is nil.
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	if minDepth < MinTOCDepth || minDepth > MaxTOCDepth {
		return fmt.Errorf("%w: minDepth %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MinDepth, MinTOCDepth, MaxTOCDepth)
	}
	if maxDepth < MinTOCDepth || maxDepth > MaxTOCDepth {
		return fmt.Errorf("%w: maxDepth %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MaxDepth, MinTOCDepth, MaxTOCDepth)
	}
	if minDepth > maxDepth {
		return fmt.Errorf("%w: minDepth %d greater than maxDepth %d", ErrInvalidTOCDepth, minDepth, maxDepth)
	}
	return nil
}

// depths returns the effective bounds with defaults applied.
func (t *TOC) depths() (minDepth, maxDepth int) {
	minDepth, maxDepth = t.MinDepth, t.MaxDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}
	return minDepth, maxDepth
}
