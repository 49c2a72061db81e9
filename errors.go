package redmark

import "errors"

// Sentinel errors for library operations.
var (
	ErrTemplateRender = errors.New("template rendering failed")
	ErrPathRewrite    = errors.New("rewriting relative URLs failed")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Theme and code style errors.
	ErrThemeNotFound     = errors.New("theme not found")
	ErrCodeStyleNotFound = errors.New("code style not found")

	// Asset loading errors.
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
