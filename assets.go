package redmark

import (
	"errors"

	"github.com/alnah/go-redmark/internal/assets"
)

// Names of the built-in assets.
const (
	// DefaultTheme is the name of the built-in stylesheet.
	DefaultTheme = assets.DefaultStyleName

	// DefaultTemplateSet is the name of the built-in template set.
	DefaultTemplateSet = assets.DefaultTemplateSetName
)

// AssetLoader loads themes and template sets.
//
// NewAssetLoader returns a filesystem loader that falls back to the embedded
// defaults. Implement this interface for other backends.
type AssetLoader interface {
	// LoadStyle loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads page and header templates by name.
	// Returns ErrTemplateSetNotFound if the set doesn't exist and
	// ErrIncompleteTemplateSet if one of its templates is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources that wrap a rendered post.
type TemplateSet struct {
	Name   string // identifier (name or path)
	Page   string // document shell
	Header string // post header block
}

// NewTemplateSet creates a TemplateSet from page and header sources.
func NewTemplateSet(name, page, header string) *TemplateSet {
	return &TemplateSet{
		Name:   name,
		Page:   page,
		Header: header,
	}
}

// NewAssetLoader creates an AssetLoader rooted at basePath.
// An empty basePath uses the embedded assets only. Otherwise files under
// basePath take precedence:
//   - styles/{name}.css for themes
//   - templates/{name}/page.html and header.html for template sets
//
// Returns ErrInvalidAssetPath if basePath is not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// Themes lists the names of the embedded themes.
func Themes() ([]string, error) {
	return assets.NewEmbeddedLoader().StyleNames()
}

// assetLoaderAdapter exposes the internal resolver with public types.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return NewTemplateSet(ts.Name, ts.Page, ts.Header), nil
}

// internalLoader adapts a public AssetLoader to the internal interface.
type internalLoader struct {
	pub AssetLoader
}

func (a *internalLoader) LoadStyle(name string) (string, error) {
	return a.pub.LoadStyle(name)
}

func (a *internalLoader) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{Name: ts.Name, Page: ts.Page, Header: ts.Header}, nil
}

// convertAssetError maps internal asset errors to public sentinels.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching sentinel with
// errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel. Internal errors stay hidden.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
