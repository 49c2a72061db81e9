package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/config"
	"github.com/alnah/go-redmark/internal/toc"
	"github.com/alnah/go-redmark/internal/yamlutil"
)

// metaOutput is the shape of `redmark meta` in yaml and json.
type metaOutput struct {
	Metadata redmark.Metadata `yaml:"metadata"`
	Post     redmark.Post     `yaml:"post"`
}

// readMarkdown loads one markdown file given as the single positional arg.
func readMarkdown(args []string) (path, content string, err error) {
	if len(args) == 0 {
		return "", "", ErrNoInput
	}
	if len(args) > 1 {
		return "", "", fmt.Errorf("%w: expected one file, got %d", ErrUsage, len(args))
	}
	path = args[0]
	if err := validateMarkdownExtension(path); err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return path, string(data), nil
}

// postOptions returns the config post section with the injected clock.
func postOptions(cfg *config.Config, env *Environment) redmark.PostOptions {
	opts := cfg.PostOptions()
	opts.Now = env.Now
	return opts
}

// runMeta prints the header metadata and the post summary of one file.
func runMeta(args []string, flags *docFlags, log zerolog.Logger, env *Environment) error {
	cfg, _, err := loadConfig(flags.common.config, env, log)
	if err != nil {
		return err
	}
	path, content, err := readMarkdown(args)
	if err != nil {
		return err
	}

	doc := redmark.ParseDocument(content)
	out := metaOutput{
		Metadata: doc.Metadata,
		Post:     redmark.BuildPost(doc, filepath.Base(path), postOptions(cfg, env)),
	}

	if flags.format == formatText {
		writeMetaText(env.Stdout, out)
		return nil
	}
	return writeStructured(env.Stdout, flags.format, out)
}

func writeMetaText(w io.Writer, m metaOutput) {
	p := m.Post
	fields := []struct{ key, value string }{
		{"title", p.Title},
		{"slug", p.Slug},
		{"author", p.Author},
		{"date", p.PublishedAt},
		{"category", p.Category},
		{"tags", strings.Join(p.Tags, ", ")},
		{"cover", p.CoverImage},
		{"reading", p.ReadingTime},
		{"words", fmt.Sprint(p.Words)},
		{"published", fmt.Sprint(p.Published)},
		{"excerpt", p.Excerpt},
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f.key+":", f.value)
	}

	if m.Metadata.Len() == 0 {
		return
	}
	fmt.Fprintln(w, "\nheader:")
	for _, k := range m.Metadata.Keys() {
		v, _ := m.Metadata.Get(k)
		fmt.Fprintf(w, "  %s: %s\n", k, v)
	}
}

// runTOC prints the table of contents of one file.
func runTOC(args []string, flags *docFlags, env *Environment) error {
	t := &redmark.TOC{MinDepth: flags.toc.minDepth, MaxDepth: flags.toc.maxDepth}
	if err := t.Validate(); err != nil {
		return withHint(err)
	}
	_, content, err := readMarkdown(args)
	if err != nil {
		return err
	}

	doc := redmark.ParseDocument(content)
	items := toc.Filter(redmark.ExtractTOC(doc.Body),
		cmp.Or(t.MinDepth, redmark.DefaultTOCMinDepth),
		cmp.Or(t.MaxDepth, redmark.DefaultTOCMaxDepth))

	if flags.format == formatText {
		writeTOCText(env.Stdout, items)
		return nil
	}
	if items == nil {
		items = []redmark.TocItem{}
	}
	return writeStructured(env.Stdout, flags.format, items)
}

// writeTOCText prints one indented line per item, relative to the
// shallowest level present.
func writeTOCText(w io.Writer, items []redmark.TocItem) {
	if len(items) == 0 {
		return
	}
	base := items[0].Level
	for _, it := range items {
		base = min(base, it.Level)
	}
	for _, it := range items {
		indent := strings.Repeat("  ", it.Level-base)
		fmt.Fprintf(w, "%s- %s (#%s)\n", indent, it.Text, it.ID)
	}
}

// runPreview prints one file styled for the terminal.
func runPreview(ctx context.Context, args []string, flags *docFlags, log zerolog.Logger, env *Environment) error {
	cfg, _, err := loadConfig(flags.common.config, env, log)
	if err != nil {
		return err
	}
	if flags.codeStyle != "" {
		cfg.Render.CodeStyle = flags.codeStyle
	}
	path, content, err := readMarkdown(args)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, log, env.Now)
	if err != nil {
		return withHint(err)
	}
	out, err := r.RenderTerminal(ctx, redmark.Input{
		Markdown: content,
		FileName: filepath.Base(path),
	}, flags.width)
	if err != nil {
		return err
	}
	fmt.Fprintln(env.Stdout, out)
	return nil
}

// writeStructured writes v as yaml or json.
func writeStructured(w io.Writer, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case formatYAML:
		data, err = yamlutil.Marshal(v)
	case formatJSON:
		data, err = yamlutil.MarshalJSON(v)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
