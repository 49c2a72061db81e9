// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ConfigDirName is the per-user directory searched for config files.
const ConfigDirName = "go-redmark"

// ForConfigNotFound suggests --config or the user config location among
// searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ConfigDirName) {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the available themes.
func ForThemeNotFound(available []string) string {
	return forAvailable(available, "; or pass a path to a .css file")
}

// ForCodeStyleNotFound lists the available highlighting styles.
func ForCodeStyleNotFound(available []string) string {
	return forAvailable(available, "")
}

// ForTOCDepth explains the valid depth range.
func ForTOCDepth() string {
	return format("depths range from 1 (#) to 6 (######) and min must not exceed max")
}

// ForImageBase explains the accepted --image-base values.
func ForImageBase() string {
	return format("use an http(s) URL ending in / or a local directory")
}

func forAvailable(available []string, suffix string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + suffix)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
