package maintain

import "sort"

// SortKey selects the primary ordering for maintainability entries.
type SortKey string

const (
	// SortByScore orders entries by descending Maintainability Index.
	SortByScore SortKey = "score"
	// SortByLines orders entries by descending source line count.
	SortByLines SortKey = "lines"
	// SortByName orders entries by ascending name.
	SortByName SortKey = "name"
)

// Entry is one ranked file in an aggregated maintainability report.
type Entry struct {
	Name      string
	Score     float64
	Lines     int
	StartLine int
}

// SortEntries orders entries in place by the given key. Ties on the primary
// key fall back to name ascending, then start line ascending, so the output
// is deterministic regardless of input order.
func SortEntries(entries []Entry, key SortKey) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		switch key {
		case SortByLines:
			if a.Lines != b.Lines {
				return a.Lines > b.Lines
			}
		case SortByName:
			if a.Name != b.Name {
				return a.Name < b.Name
			}
		default:
			if a.Score != b.Score {
				return a.Score > b.Score
			}
		}

		if a.Name != b.Name {
			return a.Name < b.Name
		}

		return a.StartLine < b.StartLine
	})
}
