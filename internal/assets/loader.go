package assets

import (
	"fmt"
	"strings"
)

// Names of the built-in assets.
const (
	DefaultStyleName       = "paper"
	DefaultTemplateSetName = "default"
)

// Template file names inside a template set directory.
const (
	pageTemplateFile   = "page.html"
	headerTemplateFile = "header.html"
)

// TemplateSet holds the templates that wrap a rendered post.
type TemplateSet struct {
	Name   string // identifier (name or directory path)
	Page   string // document shell
	Header string // post header block
}

// AssetLoader loads stylesheets and template sets by name.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the templates of a set by name.
	// Returns ErrTemplateSetNotFound if no template of the set exists and
	// ErrIncompleteTemplateSet if only some do.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// maxAssetNameLength bounds asset names read from config and flags.
const maxAssetNameLength = 64

// ValidateAssetName checks that name can be used as a single path element.
// Names must be non-empty, at most 64 bytes, and free of path separators
// and dots.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxAssetNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxAssetNameLength)
	case strings.ContainsAny(name, "/\\.") || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
