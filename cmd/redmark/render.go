package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/config"
	"github.com/alnah/go-redmark/internal/hints"
	"github.com/alnah/go-redmark/internal/render"
)

// renderParams groups the per-file input shared by a batch.
type renderParams struct {
	css           string
	toc           *redmark.TOC
	header        bool
	fragment      bool
	imageBase     string
	includeDrafts bool
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, flags *renderFlags, log zerolog.Logger, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, envCfg, err := loadConfig(flags.common.config, env, log)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(args, cfg)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	params, err := buildRenderParams(flags, cfg)
	if err != nil {
		return err
	}

	r, err := newRenderer(cfg, log, env.Now)
	if err != nil {
		return withHint(err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	workers = resolveWorkers(workers, len(files))
	log.Debug().Int("files", len(files)).Int("workers", workers).Msg("rendering")

	results := renderBatch(ctx, r, files, params, workers)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d render(s) failed", failed)
	}
	return nil
}

// loadConfig resolves the config file from the flag or REDMARK_CONFIG,
// then applies environment overrides. No file means DefaultConfig.
func loadConfig(flagConfig string, env *Environment, log zerolog.Logger) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Environ(), log)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		log.Debug().Str("config", name).Msg("config loaded")
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeRenderFlags merges CLI flags into config. CLI values override config values.
func mergeRenderFlags(flags *renderFlags, cfg *config.Config) {
	if flags.style.theme != "" {
		cfg.Render.Theme = flags.style.theme
	}
	if flags.style.codeStyle != "" {
		cfg.Render.CodeStyle = flags.style.codeStyle
	}
	if flags.style.assetPath != "" {
		cfg.Assets.BasePath = flags.style.assetPath
	}
	if flags.imageBase != "" {
		cfg.Render.ImageBase = flags.imageBase
	}
	if flags.unsafe {
		cfg.Render.Sanitize = false
	}
	if flags.fragment {
		cfg.Render.Fragment = true
	}
	if flags.noHeader {
		cfg.Header.Enabled = false
	}

	switch {
	case flags.toc.enabled:
		cfg.TOC.Enabled = true
	case flags.toc.disabled:
		cfg.TOC.Enabled = false
	}
	if flags.toc.title != "" {
		cfg.TOC.Title = flags.toc.title
	}
	if flags.toc.minDepth != 0 {
		cfg.TOC.MinDepth = flags.toc.minDepth
	}
	if flags.toc.maxDepth != 0 {
		cfg.TOC.MaxDepth = flags.toc.maxDepth
	}
}

// buildRenderParams reads the extra stylesheet and builds the TOC settings.
func buildRenderParams(flags *renderFlags, cfg *config.Config) (*renderParams, error) {
	p := &renderParams{
		toc:           buildTOC(cfg),
		header:        cfg.Header.Enabled,
		fragment:      cfg.Render.Fragment,
		imageBase:     cfg.Render.ImageBase,
		includeDrafts: flags.includeDrafts,
	}
	if err := p.toc.Validate(); err != nil {
		return nil, withHint(err)
	}

	if flags.style.css != "" {
		content, err := os.ReadFile(flags.style.css) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		p.css = string(content)
	}
	return p, nil
}

// buildTOC returns nil when the table of contents is disabled.
func buildTOC(cfg *config.Config) *redmark.TOC {
	if !cfg.TOC.Enabled {
		return nil
	}
	return &redmark.TOC{
		Title:    cfg.TOC.Title,
		MinDepth: cfg.TOC.MinDepth,
		MaxDepth: cfg.TOC.MaxDepth,
	}
}

// newRenderer creates the library renderer from the merged config.
func newRenderer(cfg *config.Config, log zerolog.Logger, now func() time.Time) (*redmark.Renderer, error) {
	postOpts := cfg.PostOptions()
	postOpts.Now = now

	opts := []redmark.Option{
		redmark.WithTheme(cfg.Render.Theme),
		redmark.WithCodeStyle(cfg.Render.CodeStyle),
		redmark.WithSanitize(cfg.Render.Sanitize),
		redmark.WithPostOptions(postOpts),
		redmark.WithLogger(log),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, redmark.WithAssetPath(cfg.Assets.BasePath))
	}
	return redmark.NewRenderer(opts...)
}

// withHint appends an actionable hint to known library errors.
func withHint(err error) error {
	var hint string
	switch {
	case errors.Is(err, redmark.ErrThemeNotFound):
		themes, _ := redmark.Themes()
		hint = hints.ForThemeNotFound(themes)
	case errors.Is(err, redmark.ErrCodeStyleNotFound):
		hint = hints.ForCodeStyleNotFound(render.StyleNames())
	case errors.Is(err, redmark.ErrInvalidTOCDepth):
		hint = hints.ForTOCDepth()
	case errors.Is(err, redmark.ErrPathRewrite):
		hint = hints.ForImageBase()
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}
