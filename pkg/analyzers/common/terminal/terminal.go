// Package terminal provides ANSI rendering utilities for CLI report output.
package terminal

import (
	"os"
	"strconv"
)

// Default width constants
const (
	DefaultWidth = 80
	MinWidth     = 60
	MaxWidth     = 120
)

// Config holds terminal rendering configuration.
type Config struct {
	Width   int
	NoColor bool
}

// NewConfig creates a Config with sensible defaults from environment.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the terminal width from the COLUMNS environment
// variable, clamped to [MinWidth, MaxWidth], or DefaultWidth when unset
// or invalid.
func DetectWidth() int {
	columnsEnv := os.Getenv("COLUMNS")
	if columnsEnv == "" {
		return DefaultWidth
	}

	width, err := strconv.Atoi(columnsEnv)
	if err != nil {
		return DefaultWidth
	}

	if width < MinWidth {
		return MinWidth
	}

	if width > MaxWidth {
		return MaxWidth
	}

	return width
}
