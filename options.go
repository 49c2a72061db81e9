package redmark

import (
	"github.com/rs/zerolog"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds settings resolved by NewRenderer.
type rendererConfig struct {
	theme          string // name, file path or inline CSS
	codeStyle      string
	sanitize       bool
	assetPath      string
	templateSet    *TemplateSet
	postOpts       PostOptions
	highlighterSet bool
	typesetterSet  bool
}

// WithTheme selects the stylesheet injected into full pages. theme is the
// name of a built-in or custom theme, a path to a CSS file, or CSS content.
// An empty theme injects no stylesheet besides the code style.
func WithTheme(theme string) Option {
	return func(r *Renderer) {
		r.cfg.theme = theme
	}
}

// WithCodeStyle selects the chroma style used for code blocks.
func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		r.cfg.codeStyle = name
	}
}

// WithHighlighter replaces the chroma highlighter used for HTML output.
// A nil highlighter renders code as escaped text. Terminal previews keep
// using chroma.
func WithHighlighter(h Highlighter) Option {
	return func(r *Renderer) {
		r.highlighter = h
		r.cfg.highlighterSet = true
	}
}

// WithTypesetter replaces the client-side math typesetter. A nil typesetter
// renders math as literal source.
func WithTypesetter(t Typesetter) Option {
	return func(r *Renderer) {
		r.typesetter = t
		r.cfg.typesetterSet = true
	}
}

// WithSanitize toggles HTML sanitization of the rendered body. It is on by
// default.
func WithSanitize(enabled bool) Option {
	return func(r *Renderer) {
		r.cfg.sanitize = enabled
	}
}

// WithAssetPath loads themes and templates from a directory, falling back to
// the embedded assets. Ignored when WithAssetLoader is also given.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom loader for themes and templates.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.publicAssetLoader = loader
	}
}

// WithTemplateSet uses ts instead of loading the default template set.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(r *Renderer) {
		r.cfg.templateSet = ts
	}
}

// WithPostOptions sets the fallbacks used to build the post summary.
func WithPostOptions(opts PostOptions) Option {
	return func(r *Renderer) {
		r.cfg.postOpts = opts
	}
}

// WithLogger sets the logger for collaborator fallbacks and render events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}
