package main

import (
	"errors"
	"io"
	"slices"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for argument handling.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrInvalidFormat = errors.New("invalid output format")
)

// Output formats of the meta, toc and index commands.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

var outputFormats = []string{formatText, formatYAML, formatJSON}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// tocFlags holds table of contents flags.
type tocFlags struct {
	enabled  bool
	disabled bool
	title    string
	minDepth int
	maxDepth int
}

// styleFlags holds theme and highlighting flags.
type styleFlags struct {
	theme     string
	codeStyle string
	assetPath string
	css       string // extra CSS file appended after the theme
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common        commonFlags
	output        string
	workers       int
	style         styleFlags
	toc           tocFlags
	noHeader      bool
	fragment      bool
	unsafe        bool
	imageBase     string
	includeDrafts bool
}

// docFlags holds flags for commands that inspect documents without
// writing HTML: meta, toc, preview and index.
type docFlags struct {
	common        commonFlags
	format        string
	width         int
	includeDrafts bool
	toc           tocFlags
	codeStyle     string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addTOCFlags adds TOC flags to a FlagSet.
func addTOCFlags(fs *flag.FlagSet, f *tocFlags) {
	fs.BoolVar(&f.enabled, "toc", false, "insert a table of contents")
	fs.BoolVar(&f.disabled, "no-toc", false, "disable table of contents")
	fs.StringVar(&f.title, "toc-title", "", "table of contents heading")
	fs.IntVar(&f.minDepth, "toc-min-depth", 0, "min heading depth for TOC (1-6, default: 2)")
	fs.IntVar(&f.maxDepth, "toc-max-depth", 0, "max heading depth for TOC (1-6, default: 3)")
}

// addStyleFlags adds theme flags to a FlagSet.
func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.theme, "theme", "", "theme name or .css file path")
	fs.StringVar(&f.codeStyle, "code-style", "", "syntax highlighting style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the theme")
}

// newRenderFlagSet builds the render flag set. Completion scripts list
// its flags, so every render flag is registered here.
func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.noHeader, "no-header", false, "omit the post header")
	fs.BoolVar(&f.fragment, "fragment", false, "write the body only, without page shell")
	fs.BoolVar(&f.unsafe, "unsafe", false, "skip HTML sanitization")
	fs.StringVar(&f.imageBase, "image-base", "", "URL or directory for relative links and images")
	fs.BoolVar(&f.includeDrafts, "include-drafts", false, "render posts marked published: false")

	addCommonFlags(fs, &f.common)
	addStyleFlags(fs, &f.style)
	addTOCFlags(fs, &f.toc)

	return fs
}

// newDocFlagSet builds the flag set shared by the inspection commands.
func newDocFlagSet(name string, f *docFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)

	switch name {
	case cmdMeta, cmdIndex:
		fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml, json")
	case cmdTOC:
		fs.StringVarP(&f.format, "format", "f", formatText, "output format: text, yaml, json")
		fs.IntVar(&f.toc.minDepth, "toc-min-depth", 0, "min heading depth (1-6, default: 2)")
		fs.IntVar(&f.toc.maxDepth, "toc-max-depth", 0, "max heading depth (1-6, default: 3)")
	case cmdPreview:
		fs.IntVar(&f.width, "width", 0, "wrap width in columns (0 = 80)")
		fs.StringVar(&f.codeStyle, "code-style", "", "syntax highlighting style")
	}
	if name == cmdIndex {
		fs.BoolVar(&f.includeDrafts, "include-drafts", false, "list posts marked published: false")
	}
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newRenderFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	if f.toc.enabled && f.toc.disabled {
		return nil, nil, errors.Join(ErrUsage, errors.New("--toc and --no-toc are mutually exclusive"))
	}
	return f, fs.Args(), nil
}

// parseDocFlags parses flags of an inspection command.
func parseDocFlags(name string, args []string, usage io.Writer) (*docFlags, []string, error) {
	f := &docFlags{}
	fs := newDocFlagSet(name, f)
	fs.SetOutput(usage)
	fs.Usage = func() { printCommandUsage(usage, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	if f.format != "" && !slices.Contains(outputFormats, f.format) {
		return nil, nil, errors.Join(ErrInvalidFormat, errors.New("expected text, yaml or json, got "+f.format))
	}
	if f.width < 0 {
		return nil, nil, errors.Join(ErrUsage, errors.New("--width must be >= 0"))
	}
	return f, fs.Args(), nil
}
