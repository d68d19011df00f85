package complexity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
)

func sectionReport() analyze.Report {
	return analyze.Report{
		"analyzer_name":      "complexity",
		"total_blocks":       3,
		"total_complexity":   20,
		"max_complexity":     12,
		"average_complexity": 6.7,
		"warnings":           1,
		"message":            "Fair complexity - some blocks could be simplified",
		"blocks": []map[string]any{
			{"name": "a", "full_name": "a", "complexity": 2, "rank": "A", "start_line": 1},
			{"name": "b", "full_name": "Cls.b", "complexity": 6, "rank": "B", "start_line": 10},
			{"name": "c", "full_name": "c", "complexity": 12, "rank": "C", "start_line": 30},
		},
	}
}

func TestSectionScoreAndTitle(t *testing.T) {
	t.Parallel()

	section := complexity.NewReportSection(sectionReport())

	assert.Equal(t, complexity.SectionTitle, section.SectionTitle())
	assert.InDelta(t, 0.4, section.Score(), 1e-9)
	assert.Equal(t, "Fair complexity - some blocks could be simplified", section.StatusMessage())
}

func TestSectionScoreTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		average float64
		want    float64
	}{
		{0.5, 1.0},
		{2.0, 0.8},
		{4.0, 0.6},
		{6.0, 0.4},
		{9.0, 0.2},
		{25.0, 0.1},
	}

	for _, tc := range cases {
		section := complexity.NewReportSection(analyze.Report{"average_complexity": tc.average})
		assert.InDelta(t, tc.want, section.Score(), 1e-9, "average %.1f", tc.average)
	}
}

func TestSectionKeyMetrics(t *testing.T) {
	t.Parallel()

	metrics := complexity.NewReportSection(sectionReport()).KeyMetrics()

	require.Len(t, metrics, 5)
	assert.Equal(t, "Total Blocks", metrics[0].Label)
	assert.Equal(t, "3", metrics[0].Value)
	assert.Equal(t, "Avg Complexity", metrics[1].Label)
	assert.Equal(t, "6.7", metrics[1].Value)
}

func TestSectionDistribution(t *testing.T) {
	t.Parallel()

	items := complexity.NewReportSection(sectionReport()).Distribution()

	require.Len(t, items, 6)
	assert.Equal(t, "A (1-5)", items[0].Label)
	assert.Equal(t, 1, items[0].Count)
	assert.InDelta(t, 1.0/3.0, items[0].Percent, 1e-9)
	assert.Zero(t, items[5].Count)
}

func TestSectionIssuesSortedByComplexity(t *testing.T) {
	t.Parallel()

	section := complexity.NewReportSection(sectionReport())

	all := section.AllIssues()
	require.Len(t, all, 3)
	assert.Equal(t, "c", all[0].Name)
	assert.Equal(t, "12 (C)", all[0].Value)
	assert.Equal(t, "line 30", all[0].Location)
	assert.Equal(t, analyze.SeverityFair, all[0].Severity)
	assert.Equal(t, "Cls.b", all[1].Name)
	assert.Equal(t, analyze.SeverityGood, all[2].Severity)

	top := section.TopIssues(2)
	require.Len(t, top, 2)
	assert.Equal(t, "c", top[0].Name)
}

func TestSectionEmptyReport(t *testing.T) {
	t.Parallel()

	section := complexity.NewReportSection(nil)

	assert.Equal(t, complexity.DefaultStatusMessage, section.StatusMessage())
	assert.Nil(t, section.Distribution())
	assert.Nil(t, section.AllIssues())
}
