// Package block segments a redmark body into typed content blocks.
//
// Segmentation is line oriented. A small state machine tracks whether the
// scanner is inside a fenced code block, a display math block or a table;
// every other line is classified on its own. Unterminated code, math and
// tables are flushed at end of input.
package block

import (
	"github.com/alnah/go-redmark/internal/inline"
)

// DefaultLanguage is assumed for fenced code without a language tag.
const DefaultLanguage = "javascript"

// IndentUnit is the number of indentation columns per list nesting level.
const IndentUnit = 2

// Block is one segment of a document.
type Block interface {
	block()
}

// Heading is a level 1 to 3 heading.
type Heading struct {
	Level  int
	ID     string
	Text   string
	Inline []inline.Span
	// Line is the zero-based index of the heading in the body.
	Line int
}

// Paragraph is a single line of running text.
type Paragraph struct {
	Inline []inline.Span
}

// ListItem is one bullet or numbered item. Depth counts nesting levels from 0.
type ListItem struct {
	Ordered bool
	Depth   int
	// Number is the ordinal written in the source; zero for bullets.
	Number int
	Inline []inline.Span
}

// Blockquote is a single quoted line.
type Blockquote struct {
	Inline []inline.Span
}

// CodeBlock is fenced source code.
type CodeBlock struct {
	Language string
	RawCode  string
}

// MathBlock is a display TeX expression.
type MathBlock struct {
	RawMath string
}

// Cell is one table cell.
type Cell struct {
	Raw    string
	Inline []inline.Span
}

// Table is a pipe table. Rows may be empty.
type Table struct {
	Header []Cell
	Rows   [][]Cell
}

// Blank is an empty line.
type Blank struct{}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (ListItem) block()   {}
func (Blockquote) block() {}
func (CodeBlock) block()  {}
func (MathBlock) block()  {}
func (Table) block()      {}
func (Blank) block()      {}
