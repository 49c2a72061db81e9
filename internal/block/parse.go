package block

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-redmark/internal/frontmatter"
	"github.com/alnah/go-redmark/internal/inline"
	"github.com/alnah/go-redmark/internal/toc"
)

const (
	codeFence   = "```"
	mathFence   = "$$"
	quotePrefix = "> "
)

// orderedMarker matches "12. " at the start of a dedented line.
var orderedMarker = regexp.MustCompile(`^(\d+)\. `)

// headingPrefixes maps the raw line prefix of each heading level.
var headingPrefixes = [...]string{"# ", "## ", "### "}

type state int

const (
	stateNormal state = iota
	stateCode
	stateMath
	stateTable
)

type config struct {
	defaultLanguage string
	slugOpts        []toc.Option
}

// Option configures Parse.
type Option func(*config)

// WithDefaultLanguage sets the language of fenced code without a tag.
func WithDefaultLanguage(lang string) Option {
	return func(c *config) {
		if lang != "" {
			c.defaultLanguage = strings.ToLower(lang)
		}
	}
}

// WithSlugOptions configures heading id generation.
func WithSlugOptions(opts ...toc.Option) Option {
	return func(c *config) {
		c.slugOpts = append(c.slugOpts, opts...)
	}
}

// scanner holds the segmentation state between lines.
type scanner struct {
	cfg    config
	state  state
	blocks []Block

	buf  []string // code or math lines
	lang string

	table    Table
	tableRow int // rows seen in the current table, separator included
}

// Parse segments body into blocks in document order. A header delimited by
// "---" lines at the start of body is skipped. Parse never fails.
func Parse(body string, opts ...Option) []Block {
	cfg := config{defaultLanguage: DefaultLanguage}
	for _, opt := range opts {
		opt(&cfg)
	}

	if body == "" {
		return nil
	}

	s := &scanner{cfg: cfg}
	lines := frontmatter.SplitLines(body)
	for n := frontmatter.BodyStart(lines); n < len(lines); n++ {
		s.step(n, lines[n])
	}
	s.finish()
	return s.blocks
}

// step feeds one line through the state machine.
func (s *scanner) step(n int, line string) {
	trimmed := strings.TrimSpace(line)

	switch s.state {
	case stateCode:
		if strings.HasPrefix(trimmed, codeFence) {
			s.closeCode()
			return
		}
		s.buf = append(s.buf, line)
		return

	case stateMath:
		if strings.HasPrefix(trimmed, mathFence) {
			if body, ok := singleLineMath(trimmed); ok {
				s.emit(MathBlock{RawMath: body})
				return
			}
			s.closeMath()
			return
		}
		s.buf = append(s.buf, line)
		return

	case stateTable:
		if isTableRow(trimmed) {
			s.addRow(trimmed)
			return
		}
		s.closeTable()
		if trimmed == "" {
			return
		}
	}

	s.classify(n, line, trimmed)
}

// classify handles a line outside any multi-line construct.
func (s *scanner) classify(n int, line, trimmed string) {
	if isTableRow(trimmed) {
		s.state = stateTable
		s.table = Table{}
		s.tableRow = 0
		s.addRow(trimmed)
		return
	}

	if strings.HasPrefix(trimmed, codeFence) {
		s.state = stateCode
		s.buf = s.buf[:0]
		s.lang = strings.ToLower(strings.TrimSpace(trimmed[len(codeFence):]))
		if s.lang == "" {
			s.lang = s.cfg.defaultLanguage
		}
		return
	}

	if strings.HasPrefix(trimmed, mathFence) {
		if body, ok := singleLineMath(trimmed); ok {
			s.emit(MathBlock{RawMath: body})
			return
		}
		s.state = stateMath
		s.buf = s.buf[:0]
		return
	}

	for i, prefix := range headingPrefixes {
		if strings.HasPrefix(line, prefix) {
			text := strings.TrimSpace(line[len(prefix):])
			s.emit(Heading{
				Level:  i + 1,
				ID:     toc.HeadingID(toc.CleanText(text), s.cfg.slugOpts...),
				Text:   text,
				Inline: inline.Parse(text),
				Line:   n,
			})
			return
		}
	}

	if item, ok := parseListItem(line); ok {
		s.emit(item)
		return
	}

	if strings.HasPrefix(line, quotePrefix) {
		s.emit(Blockquote{Inline: inline.Parse(line[len(quotePrefix):])})
		return
	}

	if trimmed == "" {
		s.emit(Blank{})
		return
	}

	s.emit(Paragraph{Inline: inline.Parse(line)})
}

func (s *scanner) emit(b Block) {
	s.blocks = append(s.blocks, b)
}

func (s *scanner) closeCode() {
	s.emit(CodeBlock{Language: s.lang, RawCode: strings.Join(s.buf, "\n")})
	s.buf = s.buf[:0]
	s.lang = ""
	s.state = stateNormal
}

func (s *scanner) closeMath() {
	s.emit(MathBlock{RawMath: strings.Join(s.buf, "\n")})
	s.buf = s.buf[:0]
	s.state = stateNormal
}

func (s *scanner) addRow(trimmed string) {
	cells := splitCells(trimmed)
	switch s.tableRow {
	case 0:
		s.table.Header = cells
	case 1:
		// separator row, not validated
	default:
		s.table.Rows = append(s.table.Rows, cells)
	}
	s.tableRow++
}

func (s *scanner) closeTable() {
	s.emit(s.table)
	s.table = Table{}
	s.tableRow = 0
	s.state = stateNormal
}

// finish flushes whatever construct is still open at end of input.
func (s *scanner) finish() {
	switch s.state {
	case stateCode:
		s.closeCode()
	case stateMath:
		s.closeMath()
	case stateTable:
		s.closeTable()
	}
}

// singleLineMath reports whether a trimmed "$$" line also closes itself,
// as in "$$x^2$$", and returns the interior.
func singleLineMath(trimmed string) (string, bool) {
	if len(trimmed) <= 2*len(mathFence) || !strings.HasSuffix(trimmed, mathFence) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(mathFence) : len(trimmed)-len(mathFence)]), true
}

func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && trimmed[0] == '|' && trimmed[len(trimmed)-1] == '|'
}

// splitCells splits a row on '|', dropping the empty fragments outside the
// outer pipes.
func splitCells(trimmed string) []Cell {
	parts := strings.Split(trimmed, "|")
	parts = parts[1 : len(parts)-1]
	cells := make([]Cell, len(parts))
	for i, p := range parts {
		raw := strings.TrimSpace(p)
		cells[i] = Cell{Raw: raw, Inline: inline.Parse(raw)}
	}
	return cells
}

func parseListItem(line string) (ListItem, bool) {
	rest := strings.TrimLeft(line, " \t")
	depth := frontmatter.IndentWidth(line) / IndentUnit

	for _, bullet := range []string{"- ", "* "} {
		if strings.HasPrefix(rest, bullet) {
			return ListItem{Depth: depth, Inline: inline.Parse(rest[len(bullet):])}, true
		}
	}

	if m := orderedMarker.FindStringSubmatch(rest); m != nil {
		num, err := strconv.Atoi(m[1])
		if err != nil {
			num = 0
		}
		return ListItem{
			Ordered: true,
			Depth:   depth,
			Number:  num,
			Inline:  inline.Parse(rest[len(m[0]):]),
		}, true
	}
	return ListItem{}, false
}
