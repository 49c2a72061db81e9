package main

import (
	"fmt"
	"io"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/render"
)

// runStyles lists the embedded themes and the code highlighting styles.
func runStyles(w io.Writer) error {
	themes, err := redmark.Themes()
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Themes:")
	for _, t := range themes {
		marker := ""
		if t == redmark.DefaultTheme {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\n", t, marker)
	}

	fmt.Fprintln(w, "\nCode styles:")
	for _, s := range render.StyleNames() {
		marker := ""
		if s == render.DefaultCodeStyle {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %s%s\n", s, marker)
	}
	return nil
}
