package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/util"
)

// ClientTypesetter emits TeX wrapped in KaTeX/MathJax auto-render delimiters
// for layout in the browser. Empty expressions, unbalanced braces and a
// trailing backslash are rejected with ErrInvalidMath.
type ClientTypesetter struct{}

// NewClientTypesetter creates a ClientTypesetter.
func NewClientTypesetter() *ClientTypesetter {
	return &ClientTypesetter{}
}

// Typeset wraps source in \( \) or \[ \] inside a math element.
func (t *ClientTypesetter) Typeset(source string, display bool) (string, error) {
	src := strings.TrimSpace(source)
	if err := validateTeX(src); err != nil {
		return "", err
	}
	esc := string(util.EscapeHTML([]byte(src)))
	if display {
		return `<div class="math math-display">\[` + esc + `\]</div>`, nil
	}
	return `<span class="math math-inline">\(` + esc + `\)</span>`, nil
}

func validateTeX(src string) error {
	if src == "" {
		return fmt.Errorf("%w: empty expression", ErrInvalidMath)
	}
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '\\':
			if i == len(src)-1 {
				return fmt.Errorf("%w: trailing backslash", ErrInvalidMath)
			}
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("%w: unexpected '}' at offset %d", ErrInvalidMath, i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("%w: %d unclosed '{'", ErrInvalidMath, depth)
	}
	return nil
}
