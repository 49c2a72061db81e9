package render

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog"

	"github.com/alnah/go-redmark/internal/block"
)

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "github"

// ChromaHighlighter highlights code with chroma and emits CSS classes.
// Use CSS to obtain the matching stylesheet. It is safe for concurrent use.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	fallback  string
	logger    zerolog.Logger
}

// HighlighterOption configures a ChromaHighlighter.
type HighlighterOption func(*ChromaHighlighter)

// WithFallbackLanguage sets the grammar used for unknown languages.
func WithFallbackLanguage(lang string) HighlighterOption {
	return func(h *ChromaHighlighter) {
		if lang != "" {
			h.fallback = lang
		}
	}
}

// WithHighlighterLogger sets the logger used to report unknown languages.
func WithHighlighterLogger(l zerolog.Logger) HighlighterOption {
	return func(h *ChromaHighlighter) {
		h.logger = l
	}
}

// NewChromaHighlighter creates a highlighter for the named chroma style.
// Unknown style names use chroma's fallback style.
func NewChromaHighlighter(style string, opts ...HighlighterOption) *ChromaHighlighter {
	h := &ChromaHighlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		fallback:  block.DefaultLanguage,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StyleName returns the name of the resolved chroma style.
func (h *ChromaHighlighter) StyleName() string {
	return h.style.Name
}

// Lexer resolves language to a lexer: the named grammar, then the fallback
// language, then chroma's plain-text lexer.
func (h *ChromaHighlighter) Lexer(language string) chroma.Lexer {
	l := lexers.Get(language)
	if l == nil {
		h.logger.Debug().Str("lang", language).Str("fallback", h.fallback).Msg("unknown code language")
		l = lexers.Get(h.fallback)
	}
	if l == nil {
		l = lexers.Fallback
	}
	return chroma.Coalesce(l)
}

// Highlight renders code as a chroma <pre> block.
func (h *ChromaHighlighter) Highlight(code, language string) (string, error) {
	it, err := h.Lexer(language).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return b.String(), nil
}

// CSS returns the stylesheet for the classes emitted by Highlight.
func (h *ChromaHighlighter) CSS() (string, error) {
	var b strings.Builder
	if err := h.formatter.WriteCSS(&b, h.style); err != nil {
		return "", fmt.Errorf("writing chroma css: %w", err)
	}
	return b.String(), nil
}

// StyleNames lists the registered chroma styles.
func StyleNames() []string {
	return styles.Names()
}
