// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/md2site/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/site.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "md2site") && strings.ContainsAny(p, "/\\") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingDirs returns a hint when input or output directories are unset.
func ForMissingDirs() string {
	return format("usage: md2site <input-dir> <output-dir>, or set input.dir and output.dir in the config")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound lists the available names when a style lookup fails.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownLanguage suggests how to get past an unrecognized fence language.
func ForUnknownLanguage(lang string) string {
	hints := []string{"set highlight.unknownLanguage: fallback to render it as plain text"}
	if lang != "" {
		hints = append([]string{`check the fence tag "` + lang + `"`}, hints...)
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
