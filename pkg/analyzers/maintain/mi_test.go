package maintain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/maintain"
)

func TestIndexDegenerateInputs(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, maintain.Index(0, 1, 10, 0), 1e-9, "zero volume")
	assert.InDelta(t, 100.0, maintain.Index(-5, 1, 10, 0), 1e-9, "negative volume")
	assert.InDelta(t, 100.0, maintain.Index(50, 1, 0, 0), 1e-9, "zero sloc")
}

func TestIndexStaysInRange(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		volume         float64
		avgComplexity  float64
		sloc           int
		percentComment float64
	}{
		{"tiny file", 10, 1, 3, 0},
		{"typical file", 800, 4, 120, 15},
		{"huge complex file", 200000, 60, 8000, 0},
		{"fully commented", 500, 2, 50, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mi := maintain.Index(tc.volume, tc.avgComplexity, tc.sloc, tc.percentComment)
			assert.GreaterOrEqual(t, mi, 0.0)
			assert.LessOrEqual(t, mi, 100.0)
		})
	}
}

func TestIndexClampsToZero(t *testing.T) {
	t.Parallel()

	// Pathological inputs drive the raw formula negative.
	mi := maintain.Index(1e12, 500, 1000000, 0)
	assert.InDelta(t, 0.0, mi, 1e-9)
}

func TestIndexMonotonicInVolume(t *testing.T) {
	t.Parallel()

	small := maintain.Index(100, 3, 50, 10)
	large := maintain.Index(10000, 3, 50, 10)
	assert.Greater(t, small, large)
}

func TestIndexCommentsHelp(t *testing.T) {
	t.Parallel()

	bare := maintain.Index(800, 4, 120, 0)
	documented := maintain.Index(800, 4, 120, 20)
	assert.Greater(t, documented, bare)
}

func TestRankBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mi   float64
		rank string
	}{
		{100, "A"},
		{19.01, "A"},
		{19, "B"},
		{9.01, "B"},
		{9, "C"},
		{0, "C"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.rank, maintain.RankOf(tc.mi), "mi=%v", tc.mi)
	}
}
