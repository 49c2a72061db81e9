package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrHeaderRender = errors.New("header template rendering failed")
	ErrPageRender   = errors.New("page template rendering failed")
)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, after <body>, or at
// the start of the content, whichever is found first.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>\n"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	if pos, ok := afterBodyTag(htmlContent, lowerHTML); ok {
		return htmlContent[:pos] + styleBlock + htmlContent[pos:]
	}
	return styleBlock + htmlContent
}

// sanitizeCSS escapes "</" so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// afterBodyTag returns the offset just past the opening <body ...> tag.
func afterBodyTag(htmlContent, lowerHTML string) (int, bool) {
	idx := strings.Index(lowerHTML, "<body")
	if idx == -1 {
		return 0, false
	}
	closeIdx := strings.Index(htmlContent[idx:], ">")
	if closeIdx == -1 {
		return 0, false
	}
	return idx + closeIdx + 1, true
}

// HeaderData holds the post fields shown above the body.
type HeaderData struct {
	Title       string
	Author      string
	Date        string
	Category    string
	ReadingTime string
	Cover       string
	Tags        []string
}

// HeaderInjector defines the contract for post header injection.
type HeaderInjector interface {
	InjectHeader(ctx context.Context, fragment string, data *HeaderData) (string, error)
}

// HeaderInjection renders the header template and prepends it to a fragment.
type HeaderInjection struct {
	tmpl *template.Template
}

// NewHeaderInjection creates a HeaderInjection from template content.
func NewHeaderInjection(tmplContent string) (*HeaderInjection, error) {
	tmpl, err := template.New("header").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing header template: %w", err)
	}
	return &HeaderInjection{tmpl: tmpl}, nil
}

// InjectHeader renders data and places it before fragment.
// A nil data returns fragment unchanged.
func (h *HeaderInjection) InjectHeader(ctx context.Context, fragment string, data *HeaderData) (string, error) {
	if data == nil {
		return fragment, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHeaderRender, err)
	}
	buf.WriteByte('\n')
	buf.WriteString(fragment)
	return buf.String(), nil
}

// PageData holds the values available to the page template.
type PageData struct {
	Lang        string
	Title       string
	Description string
	Math        bool
	Body        template.HTML
}

// PageWrapper renders a fragment into a complete HTML document.
type PageWrapper struct {
	tmpl *template.Template
}

// NewPageWrapper creates a PageWrapper from template content.
func NewPageWrapper(tmplContent string) (*PageWrapper, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageWrapper{tmpl: tmpl}, nil
}

// Wrap executes the page template. Body must already be trusted HTML.
func (p *PageWrapper) Wrap(ctx context.Context, data PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data.Lang == "" {
		data.Lang = "en"
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// headerEndPattern matches the header element carrying the data-header-end
// attribute. html/template strips comments, so an attribute marks the spot.
var headerEndPattern = regexp.MustCompile(`(?is)<header[^>]*\bdata-header-end\b[^>]*>.*?</header>`)

// insertAfterHeader places snippet after the post header, or at the start of
// htmlContent when there is none.
func insertAfterHeader(htmlContent, snippet string) string {
	if loc := headerEndPattern.FindStringIndex(htmlContent); loc != nil {
		return htmlContent[:loc[1]] + "\n" + snippet + htmlContent[loc[1]:]
	}
	return snippet + "\n" + htmlContent
}
