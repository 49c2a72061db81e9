// Package config loads and validates the YAML configuration of the redmark
// CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-redmark/internal/assets"
	"github.com/alnah/go-redmark/internal/dateutil"
	"github.com/alnah/go-redmark/internal/fileutil"
	"github.com/alnah/go-redmark/internal/hints"
	"github.com/alnah/go-redmark/internal/post"
	"github.com/alnah/go-redmark/internal/render"
	"github.com/alnah/go-redmark/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength      = 4096
	MaxURLLength       = 2048
	MaxNameLength      = 100
	MaxCategoryLength  = 50
	MaxCodeStyleLength = 50
	MaxTOCTitleLength  = 100
	MaxWordsPerMinute  = 2000
)

// Defaults for the render and toc sections.
const (
	DefaultTOCTitle    = "Contents"
	DefaultTOCMinDepth = 2 // level 1 is usually the post title
	DefaultTOCMaxDepth = 3
)

const (
	minHeadingDepth = 1
	maxHeadingDepth = 6
)

// Config holds all configuration for rendering posts.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Render RenderConfig `yaml:"render"`
	TOC    TOCConfig    `yaml:"toc"`
	Header HeaderConfig `yaml:"header"`
	Post   PostConfig   `yaml:"post"`
	Assets AssetsConfig `yaml:"assets"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// RenderConfig defines how bodies become HTML.
type RenderConfig struct {
	Theme     string `yaml:"theme"`     // embedded style name or .css path
	CodeStyle string `yaml:"codeStyle"` // chroma style name
	Sanitize  bool   `yaml:"sanitize"`
	Fragment  bool   `yaml:"fragment"`  // body only, no page shell
	ImageBase string `yaml:"imageBase"` // URL or directory for relative paths
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`
	MinDepth int    `yaml:"minDepth"`
	MaxDepth int    `yaml:"maxDepth"`
}

// HeaderConfig toggles the post header above the body.
type HeaderConfig struct {
	Enabled bool `yaml:"enabled"`
}

// PostConfig defines post summary fallbacks.
type PostConfig struct {
	DateFormat        string `yaml:"dateFormat"`
	DefaultAuthor     string `yaml:"defaultAuthor"`
	DefaultCategory   string `yaml:"defaultCategory"`
	DefaultCoverImage string `yaml:"defaultCoverImage"`
	WordsPerMinute    int    `yaml:"wordsPerMinute"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Theme:     assets.DefaultStyleName,
			CodeStyle: render.DefaultCodeStyle,
			Sanitize:  true,
		},
		TOC: TOCConfig{
			Title:    DefaultTOCTitle,
			MinDepth: DefaultTOCMinDepth,
			MaxDepth: DefaultTOCMaxDepth,
		},
		Header: HeaderConfig{Enabled: true},
		Post: PostConfig{
			DateFormat:        dateutil.DefaultDateFormat,
			DefaultAuthor:     post.DefaultAuthor,
			DefaultCategory:   post.DefaultCategory,
			DefaultCoverImage: post.DefaultCover,
			WordsPerMinute:    post.DefaultWordsPerMinute,
		},
	}
}

// PostOptions converts the post section for post.Build.
func (c *Config) PostOptions() post.Options {
	return post.Options{
		DateFormat:      c.Post.DateFormat,
		DefaultAuthor:   c.Post.DefaultAuthor,
		DefaultCategory: c.Post.DefaultCategory,
		DefaultCover:    c.Post.DefaultCoverImage,
		WordsPerMinute:  c.Post.WordsPerMinute,
	}
}

// Validate checks lengths, ranges and names. Called by LoadConfig, and
// again by the CLI after flags and environment overrides are applied.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"render.theme", c.Render.Theme, MaxPathLength},
		{"render.codeStyle", c.Render.CodeStyle, MaxCodeStyleLength},
		{"render.imageBase", c.Render.ImageBase, MaxURLLength},
		{"toc.title", c.TOC.Title, MaxTOCTitleLength},
		{"post.defaultAuthor", c.Post.DefaultAuthor, MaxNameLength},
		{"post.defaultCategory", c.Post.DefaultCategory, MaxCategoryLength},
		{"post.defaultCoverImage", c.Post.DefaultCoverImage, MaxURLLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if t := c.Render.Theme; t != "" && !fileutil.IsFilePath(t) {
		if err := assets.ValidateAssetName(t); err != nil {
			return fmt.Errorf("render.theme: %w", err)
		}
	}

	if err := c.validateTOC(); err != nil {
		return err
	}

	if c.Post.DateFormat != "" {
		if _, err := dateutil.Layout(c.Post.DateFormat); err != nil {
			return fmt.Errorf("post.dateFormat: %w", err)
		}
	}
	if c.Post.WordsPerMinute < 0 || c.Post.WordsPerMinute > MaxWordsPerMinute {
		return fmt.Errorf("%w: post.wordsPerMinute must be between 0 and %d, got %d",
			ErrInvalidValue, MaxWordsPerMinute, c.Post.WordsPerMinute)
	}

	if c.Assets.BasePath != "" {
		info, err := os.Stat(c.Assets.BasePath)
		switch {
		case os.IsNotExist(err):
			return fmt.Errorf("%w: assets.basePath: directory does not exist: %s", ErrInvalidValue, c.Assets.BasePath)
		case err != nil:
			return fmt.Errorf("%w: assets.basePath: %v", ErrInvalidValue, err)
		case !info.IsDir():
			return fmt.Errorf("%w: assets.basePath: not a directory: %s", ErrInvalidValue, c.Assets.BasePath)
		}
	}

	return nil
}

// validateTOC checks depths. Zero depths mean "use the default".
func (c *Config) validateTOC() error {
	minDepth, maxDepth := c.TOC.MinDepth, c.TOC.MaxDepth
	for _, d := range []struct {
		field string
		value int
	}{{"toc.minDepth", minDepth}, {"toc.maxDepth", maxDepth}} {
		if d.value != 0 && (d.value < minHeadingDepth || d.value > maxHeadingDepth) {
			return fmt.Errorf("%w: %s must be between %d and %d, got %d",
				ErrInvalidValue, d.field, minHeadingDepth, maxHeadingDepth, d.value)
		}
	}
	if minDepth != 0 && maxDepth != 0 && minDepth > maxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) exceeds toc.maxDepth (%d)", ErrInvalidValue, minDepth, maxDepth)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in the current directory and then in the user config
// directory. Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, hints.ConfigDirName, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
