package toc

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultID is used when a heading slugifies to nothing.
const DefaultID = "section"

// LatinExtended covers Latin-1 Supplement letters through Latin Extended-B,
// without the multiplication and division signs.
var LatinExtended = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00C0, Hi: 0x00D6, Stride: 1},
		{Lo: 0x00D8, Hi: 0x00F6, Stride: 1},
		{Lo: 0x00F8, Hi: 0x024F, Stride: 1},
	},
	LatinOffset: 2,
}

type options struct {
	script *unicode.RangeTable
}

// Option configures slug generation.
type Option func(*options)

// WithScriptRange sets the non-ASCII letters kept in slugs. A nil table keeps
// ASCII word characters only.
func WithScriptRange(table *unicode.RangeTable) Option {
	return func(o *options) {
		o.script = table
	}
}

func newOptions(opts []Option) options {
	o := options{script: LatinExtended}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Slugify turns heading text into an anchor fragment: lower case, spaces and
// underscores become hyphens, other punctuation is dropped and hyphen runs
// collapse. The result may be empty.
func Slugify(text string, opts ...Option) string {
	o := newOptions(opts)
	return o.slugify(text)
}

func (o options) slugify(text string) string {
	text = strings.TrimSpace(strings.ToLower(text))

	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			pendingHyphen = true
		case o.keep(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// keep reports whether r survives slugification.
func (o options) keep(r rune) bool {
	if r < unicode.MaxASCII {
		return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
	}
	return o.script != nil && unicode.Is(o.script, r)
}

// HeadingID returns the slug of text, or DefaultID when the slug is empty.
func HeadingID(text string, opts ...Option) string {
	if id := Slugify(text, opts...); id != "" {
		return id
	}
	return DefaultID
}

// Slugger hands out unique heading ids. The first use of a base id returns
// it unchanged; later uses get "-1", "-2", ... appended, skipping any id that
// was already handed out. A Slugger is not safe for concurrent use.
type Slugger struct {
	opts options
	seen map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger(opts ...Option) *Slugger {
	return &Slugger{opts: newOptions(opts), seen: make(map[string]int)}
}

// ID returns a unique id for heading text.
func (s *Slugger) ID(text string) string {
	base := s.opts.slugify(text)
	if base == "" {
		base = DefaultID
	}
	return s.Unique(base)
}

// Unique returns base, or base with the next free numeric suffix.
func (s *Slugger) Unique(base string) string {
	if _, taken := s.seen[base]; !taken {
		s.seen[base] = 0
		return base
	}
	for {
		s.seen[base]++
		id := base + "-" + strconv.Itoa(s.seen[base])
		if _, taken := s.seen[id]; !taken {
			s.seen[id] = 0
			return id
		}
	}
}
