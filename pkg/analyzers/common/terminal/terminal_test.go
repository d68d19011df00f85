package terminal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/terminal"
)

func TestColorizeNoColor(t *testing.T) {
	t.Parallel()

	cfg := terminal.Config{NoColor: true}

	assert.Equal(t, "hello", cfg.Colorize("hello", terminal.ColorRed))
}

func TestColorizeWithColor(t *testing.T) {
	t.Parallel()

	cfg := terminal.Config{NoColor: false}

	assert.Equal(t, "\033[32mok\033[0m", cfg.Colorize("ok", terminal.ColorGreen))
}

func TestColorForScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, terminal.ColorGreen, terminal.ColorForScore(0.9))
	assert.Equal(t, terminal.ColorYellow, terminal.ColorForScore(0.6))
	assert.Equal(t, terminal.ColorRed, terminal.ColorForScore(0.2))
}

func TestColorForRank(t *testing.T) {
	t.Parallel()

	assert.Equal(t, terminal.ColorGreen, terminal.ColorForRank("A"))
	assert.Equal(t, terminal.ColorYellow, terminal.ColorForRank("B"))
	assert.Equal(t, terminal.ColorYellow, terminal.ColorForRank("C"))
	assert.Equal(t, terminal.ColorRed, terminal.ColorForRank("F"))
	assert.Equal(t, terminal.ColorNone, terminal.ColorForRank("?"))
}

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", terminal.TruncateWithEllipsis("short", 10))
	assert.Equal(t, "long_na...", terminal.TruncateWithEllipsis("long_name_here", 10))
	assert.Equal(t, "..", terminal.TruncateWithEllipsis("abcdef", 2))
}

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab  ", terminal.PadRight("ab", 4))
	assert.Equal(t, "  ab", terminal.PadLeft("ab", 4))
	assert.Equal(t, "abcde", terminal.PadRight("abcde", 3))
}

func TestDrawProgressBar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "█████░░░░░", terminal.DrawProgressBar(0.5, 10))
	assert.Equal(t, "░░░░░░░░░░", terminal.DrawProgressBar(-1, 10))
	assert.Equal(t, "██████████", terminal.DrawProgressBar(2, 10))
}

func TestFormatScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "8/10", terminal.FormatScore(0.8))
	assert.Equal(t, "0/10", terminal.FormatScore(0))
	assert.Equal(t, "10/10", terminal.FormatScore(1))
}

func TestDetectWidthClamped(t *testing.T) {
	t.Setenv("COLUMNS", "500")
	assert.Equal(t, terminal.MaxWidth, terminal.DetectWidth())

	t.Setenv("COLUMNS", "10")
	assert.Equal(t, terminal.MinWidth, terminal.DetectWidth())

	t.Setenv("COLUMNS", "")
	assert.Equal(t, terminal.DefaultWidth, terminal.DetectWidth())
}
