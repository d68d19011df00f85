package analyze

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Canonical output format names.
const (
	// FormatText is the human-readable output format for CLI display.
	FormatText = "text"

	// FormatCompact is the single-line-per-analyzer output format.
	FormatCompact = "compact"

	// FormatJSON is the structured JSON output format.
	FormatJSON = "json"

	// FormatYAML is the YAML output format.
	FormatYAML = "yaml"

	// FormatPlot is the HTML chart page output format.
	FormatPlot = "plot"

	// FormatBinary is the compressed binary envelope output format.
	FormatBinary = "binary"

	// FormatBinAlias is a short CLI alias for binary output.
	FormatBinAlias = "bin"
)

// ErrUnsupportedFormat indicates the requested output format is not supported.
var ErrUnsupportedFormat = errors.New("unsupported format")

// NormalizeFormat canonicalizes a user-provided output format string.
func NormalizeFormat(format string) string {
	normalized := strings.ToLower(strings.TrimSpace(format))
	if normalized == FormatBinAlias {
		return FormatBinary
	}

	return normalized
}

// UniversalFormats returns the canonical output formats supported by all analyzers.
func UniversalFormats() []string {
	return []string{FormatText, FormatCompact, FormatJSON, FormatYAML, FormatPlot, FormatBinary}
}

// ValidateFormat checks whether a format belongs to the universal contract.
func ValidateFormat(format string) (string, error) {
	normalized := NormalizeFormat(format)
	if slices.Contains(UniversalFormats(), normalized) {
		return normalized, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}
