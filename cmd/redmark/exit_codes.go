package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	redmark "github.com/alnah/go-redmark"
	"github.com/alnah/go-redmark/internal/config"
	"github.com/alnah/go-redmark/internal/dateutil"
)

// Exit codes for the redmark CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Everything rendered
	ExitGeneral = 1 // General/unexpected error, including failed renders
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the exit code for err. Wrapped errors are matched with
// errors.Is, so callers must wrap with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, redmark.ErrInvalidTOCDepth) ||
		errors.Is(err, redmark.ErrThemeNotFound) ||
		errors.Is(err, redmark.ErrCodeStyleNotFound) ||
		errors.Is(err, redmark.ErrTemplateSetNotFound) ||
		errors.Is(err, redmark.ErrIncompleteTemplateSet) ||
		errors.Is(err, redmark.ErrInvalidAssetPath) ||
		errors.Is(err, redmark.ErrPathRewrite) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteHTML) {
		return ExitIO
	}

	return ExitGeneral
}

// usageError marks a flag parsing failure. flag.ErrHelp is passed through
// so that -h exits cleanly.
func usageError(err error) error {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return errors.Join(ErrUsage, err)
}
