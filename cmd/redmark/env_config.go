package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/go-redmark/internal/config"
)

// envPrefix starts every environment variable read by the CLI.
const envPrefix = "REDMARK_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // REDMARK_CONFIG: config file name or path
	Theme      string // REDMARK_THEME: theme name or CSS path
	CodeStyle  string // REDMARK_CODE_STYLE: chroma style
	InputDir   string // REDMARK_INPUT_DIR: default input directory
	OutputDir  string // REDMARK_OUTPUT_DIR: default output directory
	ImageBase  string // REDMARK_IMAGE_BASE: base for relative URLs
	DateFormat string // REDMARK_DATE_FORMAT: post date format
	Author     string // REDMARK_AUTHOR: default post author
	Workers    int    // REDMARK_WORKERS: parallel workers
}

// knownEnvVars lists valid REDMARK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"REDMARK_CONFIG":      true,
	"REDMARK_THEME":       true,
	"REDMARK_CODE_STYLE":  true,
	"REDMARK_INPUT_DIR":   true,
	"REDMARK_OUTPUT_DIR":  true,
	"REDMARK_IMAGE_BASE":  true,
	"REDMARK_DATE_FORMAT": true,
	"REDMARK_AUTHOR":      true,
	"REDMARK_WORKERS":     true,
}

// loadEnvConfig reads the REDMARK_* variables through getenv.
// An unparsable or non-positive REDMARK_WORKERS is ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("REDMARK_CONFIG"),
		Theme:      getenv("REDMARK_THEME"),
		CodeStyle:  getenv("REDMARK_CODE_STYLE"),
		InputDir:   getenv("REDMARK_INPUT_DIR"),
		OutputDir:  getenv("REDMARK_OUTPUT_DIR"),
		ImageBase:  getenv("REDMARK_IMAGE_BASE"),
		DateFormat: getenv("REDMARK_DATE_FORMAT"),
		Author:     getenv("REDMARK_AUTHOR"),
	}

	if workers := getenv("REDMARK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// unknownEnvVars returns the unrecognized REDMARK_* names in environ,
// sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars logs a warning for each unrecognized REDMARK_* variable.
// Helps catch typos like REDMARK_THEMES.
func warnUnknownEnvVars(environ []string, log zerolog.Logger) {
	for _, name := range unknownEnvVars(environ) {
		log.Warn().Str("var", name).Msg("unknown environment variable (typo?)")
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Flags are merged afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Render.Theme = env.Theme
	}
	if env.CodeStyle != "" {
		cfg.Render.CodeStyle = env.CodeStyle
	}
	if env.InputDir != "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.ImageBase != "" {
		cfg.Render.ImageBase = env.ImageBase
	}
	if env.DateFormat != "" {
		cfg.Post.DateFormat = env.DateFormat
	}
	if env.Author != "" {
		cfg.Post.DefaultAuthor = env.Author
	}
}
