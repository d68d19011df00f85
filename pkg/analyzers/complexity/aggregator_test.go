package complexity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

func TestAggregatorEmpty(t *testing.T) {
	t.Parallel()

	agg := complexity.NewAggregator()
	result := agg.GetResult()

	assert.Equal(t, 0, reportutil.GetInt(result, "total_blocks"))
	assert.Equal(t, "No blocks found", reportutil.GetString(result, "message"))
	assert.NotContains(t, result, "blocks")
}

func TestAggregatorFoldsFiles(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()

	first, err := analyzer.Analyze(sampleUnit())
	require.NoError(t, err)

	tree := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "g").WithChildren(
			syntax.New(syntax.KindIf, "if"),
		),
	)
	second, err := analyzer.Analyze(&syntax.Unit{Path: "g.py", Tree: tree})
	require.NoError(t, err)

	agg := complexity.NewAggregator()
	agg.Aggregate(map[string]analyze.Report{"sample.py": first})
	agg.Aggregate(map[string]analyze.Report{"g.py": second})

	result := agg.GetResult()
	assert.Equal(t, 3, reportutil.GetInt(result, "total_blocks"))
	assert.Equal(t, 7, reportutil.GetInt(result, "total_complexity"))
	assert.Equal(t, 4, reportutil.GetInt(result, "max_complexity"))
	assert.InDelta(t, 7.0/3.0, reportutil.GetFloat64(result, "average_complexity"), 1e-9)
	assert.Len(t, reportutil.GetBlocks(result, "blocks"), 3)
}

func TestAggregatorSkipsNilReports(t *testing.T) {
	t.Parallel()

	agg := complexity.NewAggregator()
	agg.Aggregate(map[string]analyze.Report{"broken.py": nil})

	result := agg.GetResult()
	assert.Equal(t, "No blocks found", reportutil.GetString(result, "message"))
}

func TestAggregatorMessageTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		complexity int
		blocks     int
		fragment   string
	}{
		{"excellent", 3, 3, "Excellent"},
		{"good", 6, 2, "Good"},
		{"fair", 10, 2, "Fair"},
		{"high", 40, 2, "High"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			agg := complexity.NewAggregator()
			agg.Aggregate(map[string]analyze.Report{
				"f.py": {
					"total_blocks":     tc.blocks,
					"total_complexity": tc.complexity,
					"max_complexity":   tc.complexity,
					"warnings":         0,
				},
			})

			result := agg.GetResult()
			assert.Contains(t, reportutil.GetString(result, "message"), tc.fragment)
		})
	}
}
