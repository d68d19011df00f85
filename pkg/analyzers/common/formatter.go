// Package common provides shared formatting helpers for analyzer output.
package common

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DefaultMaxRows bounds block listings when no explicit limit is set.
const DefaultMaxRows = 25

// FormatConfig controls block-table rendering.
type FormatConfig struct {
	// MaxRows caps the number of listed blocks. Non-positive uses DefaultMaxRows.
	MaxRows int

	// NoColor disables rank colorization.
	NoColor bool
}

// BlockRow is a single block entry in a per-block listing.
type BlockRow struct {
	Name  string
	Line  int
	Value string
	Rank  string
}

// Formatter renders per-block listings as bordered tables with colorized
// ranks.
type Formatter struct {
	config FormatConfig
}

// NewFormatter creates a Formatter with the given configuration.
func NewFormatter(config FormatConfig) *Formatter {
	if config.MaxRows <= 0 {
		config.MaxRows = DefaultMaxRows
	}

	return &Formatter{config: config}
}

// FormatBlockTable renders rows as a table with the given value-column label.
// Rows beyond the configured limit are elided and counted in the footer.
func (f *Formatter) FormatBlockTable(valueLabel string, rows []BlockRow) string {
	if len(rows) == 0 {
		return ""
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Block", "Line", valueLabel, "Rank"})

	shown := rows
	if len(shown) > f.config.MaxRows {
		shown = shown[:f.config.MaxRows]
	}

	for _, row := range shown {
		tbl.AppendRow(table.Row{row.Name, row.Line, row.Value, f.rankCell(row.Rank)})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%s of %s blocks",
		humanize.Comma(int64(len(shown))), humanize.Comma(int64(len(rows)))), "", "", ""})

	return tbl.Render()
}

// FileRow is a single file entry in an aggregated file listing.
type FileRow struct {
	Name  string
	Lines int
	Value string
	Rank  string
}

// FormatFileTable renders rows as a table with the given value-column label.
// Rows keep their input order, so callers control the listing order.
func (f *Formatter) FormatFileTable(valueLabel string, rows []FileRow) string {
	if len(rows) == 0 {
		return ""
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"File", "Lines", valueLabel, "Rank"})

	shown := rows
	if len(shown) > f.config.MaxRows {
		shown = shown[:f.config.MaxRows]
	}

	for _, row := range shown {
		tbl.AppendRow(table.Row{row.Name, row.Lines, row.Value, f.rankCell(row.Rank)})
	}

	tbl.AppendFooter(table.Row{fmt.Sprintf("%s of %s files",
		humanize.Comma(int64(len(shown))), humanize.Comma(int64(len(rows)))), "", "", ""})

	return tbl.Render()
}

func (f *Formatter) rankCell(rank string) string {
	if f.config.NoColor || rank == "" {
		return rank
	}

	switch rank {
	case "A":
		return color.New(color.FgGreen).Sprint(rank)
	case "B":
		return color.New(color.FgYellow).Sprint(rank)
	default:
		return color.New(color.FgRed).Sprint(rank)
	}
}

// HumanizeCount formats a count with thousands separators.
func HumanizeCount(n int) string {
	return humanize.Comma(int64(n))
}

// HumanizeEffort renders a Halstead effort figure in SI notation.
func HumanizeEffort(effort float64) string {
	return humanize.SIWithDigits(effort, 1, "")
}

// HumanizeSeconds renders an estimated duration in human terms.
func HumanizeSeconds(seconds float64) string {
	const (
		secondsPerMinute = 60
		secondsPerHour   = 3600
	)

	switch {
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.0f seconds", seconds)
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.1f minutes", seconds/secondsPerMinute)
	default:
		return fmt.Sprintf("%.1f hours", seconds/secondsPerHour)
	}
}
