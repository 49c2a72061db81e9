// Package render turns segmented redmark blocks into HTML or styled terminal
// text.
//
// Code highlighting and math typesetting are delegated to collaborators
// behind the Highlighter and Typesetter interfaces. A collaborator failure
// never fails a render: the affected content falls back to escaped source.
package render

import (
	"errors"

	"github.com/rs/zerolog"
)

// Sentinel errors for collaborators.
var (
	ErrInvalidMath = errors.New("invalid math expression")
	ErrHighlight   = errors.New("highlighting failed")
)

// Highlighter renders source code in a language to HTML.
// Unknown languages fall back to a default grammar.
type Highlighter interface {
	Highlight(code, language string) (string, error)
}

// Typesetter renders a TeX expression to HTML. display selects block layout.
type Typesetter interface {
	Typeset(source string, display bool) (string, error)
}

// Compile-time interface checks.
var (
	_ Highlighter = (*ChromaHighlighter)(nil)
	_ Typesetter  = (*ClientTypesetter)(nil)
)

// Option configures an HTML renderer.
type Option func(*HTML)

// WithHighlighter sets the code highlighter. A nil highlighter renders code
// as escaped text.
func WithHighlighter(h Highlighter) Option {
	return func(r *HTML) {
		r.highlighter = h
	}
}

// WithTypesetter sets the math typesetter. A nil typesetter renders math as
// literal source.
func WithTypesetter(t Typesetter) Option {
	return func(r *HTML) {
		r.typesetter = t
	}
}

// WithLogger sets the logger used to report collaborator fallbacks.
func WithLogger(l zerolog.Logger) Option {
	return func(r *HTML) {
		r.logger = l
	}
}
