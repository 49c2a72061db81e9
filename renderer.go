package redmark

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-redmark/internal/assets"
	"github.com/alnah/go-redmark/internal/block"
	"github.com/alnah/go-redmark/internal/fileutil"
	"github.com/alnah/go-redmark/internal/frontmatter"
	"github.com/alnah/go-redmark/internal/inline"
	"github.com/alnah/go-redmark/internal/pipeline"
	"github.com/alnah/go-redmark/internal/post"
	"github.com/alnah/go-redmark/internal/render"
	"github.com/alnah/go-redmark/internal/toc"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.CSSInjector    = (*pipeline.CSSInjection)(nil)
	_ pipeline.HeaderInjector = (*pipeline.HeaderInjection)(nil)
	_ pipeline.TOCInjector    = (*pipeline.TOCInjection)(nil)
	_ assets.AssetLoader      = (*internalLoader)(nil)
	_ AssetLoader             = (*assetLoaderAdapter)(nil)
)

// metaLang is the header key that sets the page language.
const metaLang = "lang"

// Renderer turns redmark documents into HTML pages or terminal previews.
// Create with NewRenderer. A Renderer is immutable and safe for concurrent
// use.
type Renderer struct {
	cfg               rendererConfig
	logger            zerolog.Logger
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	chroma            *render.ChromaHighlighter
	highlighter       Highlighter
	typesetter        Typesetter
	html              *render.HTML
	sanitizer         *render.Sanitizer
	cssInjector       pipeline.CSSInjector
	headerInjector    pipeline.HeaderInjector
	tocInjector       pipeline.TOCInjector
	page              *pipeline.PageWrapper
	css               string // theme followed by code style
}

// NewRenderer creates a Renderer with the paper theme, the github code style
// and sanitization on. Returns an error if the theme, code style or
// templates cannot be resolved.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			theme:     DefaultTheme,
			codeStyle: render.DefaultCodeStyle,
			sanitize:  true,
		},
		logger:      zerolog.Nop(),
		assetLoader: assets.NewEmbeddedLoader(),
		typesetter:  render.NewClientTypesetter(),
		cssInjector: &pipeline.CSSInjection{},
		tocInjector: pipeline.NewTOCInjection(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.postOpts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post options: %w", err)
	}

	if r.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(r.cfg.assetPath)
		if err != nil {
			return nil, convertAssetError(err)
		}
		r.assetLoader = resolver
	}
	if r.publicAssetLoader != nil {
		r.assetLoader = &internalLoader{pub: r.publicAssetLoader}
	}

	codeCSS, err := r.resolveCodeStyle()
	if err != nil {
		return nil, err
	}
	themeCSS, err := r.resolveTheme()
	if err != nil {
		return nil, err
	}
	r.css = joinCSS(themeCSS, codeCSS)

	ts := r.cfg.templateSet
	if ts == nil {
		loaded, err := r.assetLoader.LoadTemplateSet(DefaultTemplateSet)
		if err != nil {
			return nil, fmt.Errorf("loading default template set: %w", convertAssetError(err))
		}
		ts = NewTemplateSet(loaded.Name, loaded.Page, loaded.Header)
	}

	if r.headerInjector == nil {
		r.headerInjector, err = pipeline.NewHeaderInjection(ts.Header)
		if err != nil {
			return nil, fmt.Errorf("initializing header injector: %w", err)
		}
	}
	r.page, err = pipeline.NewPageWrapper(ts.Page)
	if err != nil {
		return nil, fmt.Errorf("initializing page wrapper: %w", err)
	}

	r.html = render.NewHTML(
		render.WithHighlighter(r.highlighter),
		render.WithTypesetter(r.typesetter),
		render.WithLogger(r.logger),
	)
	if r.cfg.sanitize {
		r.sanitizer = render.NewSanitizer()
	}
	return r, nil
}

// Render runs the full pipeline and returns the HTML with the parsed
// document, blocks, TOC items and post summary.
// The context is checked between stages.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, in Input) (res *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if err := in.TOC.Validate(); err != nil {
		return nil, err
	}

	doc, blocks, items := parse(in.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	p := post.Build(doc, in.FileName, r.cfg.postOpts)

	body, err := r.html.Render(ctx, blocks)
	if err != nil {
		return nil, fmt.Errorf("rendering blocks: %w", err)
	}

	// Header and TOC markup come from trusted templates, so only the body
	// goes through the sanitizer.
	if r.sanitizer != nil {
		body = r.sanitizer.Sanitize(body)
	}

	if in.Header {
		body, err = r.headerInjector.InjectHeader(ctx, body, toHeaderData(p))
		if err != nil {
			return nil, fmt.Errorf("injecting header: %w", convertTemplateError(err))
		}
	}

	body, err = r.tocInjector.InjectTOC(ctx, body, items, toTOCData(in.TOC))
	if err != nil {
		return nil, fmt.Errorf("injecting TOC: %w", err)
	}

	if in.ImageBase != "" {
		body, err = pipeline.RewriteRelativeURLs(body, in.ImageBase)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPathRewrite, err)
		}
	}

	out := body
	if !in.Fragment {
		lang, _ := doc.Metadata.Text(metaLang)
		out, err = r.page.Wrap(ctx, pipeline.PageData{
			Lang:        lang,
			Title:       p.Title,
			Description: p.Description,
			Math:        !r.cfg.typesetterSet && hasMath(blocks),
			Body:        template.HTML(body), // #nosec G203 -- body is rendered escaped, then sanitized unless disabled
		})
		if err != nil {
			return nil, fmt.Errorf("wrapping page: %w", convertTemplateError(err))
		}
		if css := joinCSS(r.css, in.CSS); css != "" {
			out = r.cssInjector.InjectCSS(ctx, out, css)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	r.logger.Debug().
		Str("file", in.FileName).
		Int("blocks", len(blocks)).
		Int("headings", len(items)).
		Bool("fragment", in.Fragment).
		Msg("rendered document")

	return &Result{
		HTML:     []byte(out),
		Document: doc,
		Blocks:   blocks,
		TOC:      items,
		Post:     p,
	}, nil
}

// RenderTerminal renders the body of in as styled terminal text wrapped at
// width columns. A width of 0 uses the default width.
func (r *Renderer) RenderTerminal(ctx context.Context, in Input, width int) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	_, blocks, _ := parse(in.Markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return render.NewTerminal(r.chroma, width).Render(ctx, blocks)
}

// CSS returns the theme and code style stylesheet injected into full pages.
// Fragment callers can serve it themselves.
func (r *Renderer) CSS() string {
	return r.css
}

// parse runs both passes over the same body and gives every heading block
// the TOC id recorded for its line, so anchors always match TOC links.
func parse(markdown string) (Document, []Block, []TocItem) {
	doc := frontmatter.Parse(pipeline.NormalizeLineEndings(markdown))
	blocks := block.Parse(doc.Body)
	items := toc.Extract(doc.Body)
	unifyAnchors(blocks, items)
	return doc, blocks, items
}

func unifyAnchors(blocks []Block, items []TocItem) {
	if len(items) == 0 {
		return
	}
	ids := make(map[int]string, len(items))
	for _, it := range items {
		ids[it.Line] = it.ID
	}
	for i, b := range blocks {
		h, ok := b.(block.Heading)
		if !ok {
			continue
		}
		if id, ok := ids[h.Line]; ok {
			h.ID = id
			blocks[i] = h
		}
	}
}

// resolveCodeStyle validates the chroma style and returns its stylesheet when
// chroma renders the HTML.
func (r *Renderer) resolveCodeStyle() (string, error) {
	name := strings.ToLower(strings.TrimSpace(r.cfg.codeStyle))
	if !slices.Contains(render.StyleNames(), name) {
		return "", fmt.Errorf("%w: %q", ErrCodeStyleNotFound, r.cfg.codeStyle)
	}
	r.chroma = render.NewChromaHighlighter(name, render.WithHighlighterLogger(r.logger))
	if r.cfg.highlighterSet {
		return "", nil
	}
	r.highlighter = r.chroma
	css, err := r.chroma.CSS()
	if err != nil {
		return "", fmt.Errorf("building code style %q: %w", name, err)
	}
	return css, nil
}

// resolveTheme resolves the theme (name, path, or CSS content) to CSS content.
func (r *Renderer) resolveTheme() (string, error) {
	theme := r.cfg.theme
	if theme == "" {
		return "", nil
	}

	if fileutil.IsFilePath(theme) {
		content, err := os.ReadFile(theme) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("%w: reading %q: %v", ErrThemeNotFound, theme, err)
		}
		return string(content), nil
	}

	if fileutil.IsCSS(theme) {
		return theme, nil
	}

	css, err := r.assetLoader.LoadStyle(theme)
	if err != nil {
		return "", fmt.Errorf("loading theme %q: %w", theme, convertAssetError(err))
	}
	return css, nil
}

// convertTemplateError maps pipeline template failures to ErrTemplateRender.
func convertTemplateError(err error) error {
	if errors.Is(err, pipeline.ErrHeaderRender) || errors.Is(err, pipeline.ErrPageRender) {
		return fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return err
}

func joinCSS(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}

// toHeaderData converts a post summary to the header template data.
func toHeaderData(p Post) *pipeline.HeaderData {
	return &pipeline.HeaderData{
		Title:       p.Title,
		Author:      p.Author,
		Date:        p.PublishedAt,
		Category:    p.Category,
		ReadingTime: p.ReadingTime,
		Cover:       p.CoverImage,
		Tags:        p.Tags,
	}
}

// toTOCData converts the public TOC type to pipeline.TOCData with defaults
// applied.
func toTOCData(t *TOC) *pipeline.TOCData {
	if t == nil {
		return nil
	}
	minDepth, maxDepth := t.depths()
	return &pipeline.TOCData{
		Title:    t.Title,
		MinDepth: minDepth,
		MaxDepth: maxDepth,
	}
}

// hasMath reports whether any block needs the math typesetter.
func hasMath(blocks []Block) bool {
	for _, b := range blocks {
		switch v := b.(type) {
		case block.MathBlock:
			return true
		case block.Heading:
			if spansHaveMath(v.Inline) {
				return true
			}
		case block.Paragraph:
			if spansHaveMath(v.Inline) {
				return true
			}
		case block.ListItem:
			if spansHaveMath(v.Inline) {
				return true
			}
		case block.Blockquote:
			if spansHaveMath(v.Inline) {
				return true
			}
		case block.Table:
			if cellsHaveMath(v.Header) {
				return true
			}
			for _, row := range v.Rows {
				if cellsHaveMath(row) {
					return true
				}
			}
		}
	}
	return false
}

func cellsHaveMath(cells []block.Cell) bool {
	for _, c := range cells {
		if spansHaveMath(c.Inline) {
			return true
		}
	}
	return false
}

func spansHaveMath(spans []inline.Span) bool {
	for _, sp := range spans {
		switch v := sp.(type) {
		case inline.Math:
			return true
		case inline.Bold:
			if spansHaveMath(v.Children) {
				return true
			}
		case inline.Italic:
			if spansHaveMath(v.Children) {
				return true
			}
		}
	}
	return false
}
