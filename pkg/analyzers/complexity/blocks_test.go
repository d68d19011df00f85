package complexity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
)

func TestRankBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  string
	}{
		{1, "A"},
		{5, "A"},
		{6, "B"},
		{10, "B"},
		{11, "C"},
		{20, "C"},
		{21, "D"},
		{30, "D"},
		{31, "E"},
		{40, "E"},
		{41, "F"},
		{100, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, complexity.Rank(tc.score), "score %d", tc.score)
	}
}

func TestFlattenPreOrder(t *testing.T) {
	t.Parallel()

	inner := &complexity.CodeBlock{Name: "inner", FullName: "outer.inner", Complexity: 2}
	outer := &complexity.CodeBlock{
		Name:       "outer",
		FullName:   "outer",
		Complexity: 3,
		Closures:   []*complexity.CodeBlock{inner},
	}
	sibling := &complexity.CodeBlock{Name: "sibling", FullName: "sibling", Complexity: 1}

	flat := complexity.Flatten([]*complexity.CodeBlock{outer, sibling})

	require.Len(t, flat, 3)
	assert.Equal(t, "outer", flat[0].Block.Name)
	assert.Equal(t, 0, flat[0].Depth)
	assert.Equal(t, "inner", flat[1].Block.Name)
	assert.Equal(t, 1, flat[1].Depth)
	assert.Equal(t, "sibling", flat[2].Block.Name)
	assert.Equal(t, 0, flat[2].Depth)
}

func TestAverageComplexityIncludesClosures(t *testing.T) {
	t.Parallel()

	blocks := []*complexity.CodeBlock{
		{
			Name:       "a",
			Complexity: 4,
			Closures:   []*complexity.CodeBlock{{Name: "a.b", Complexity: 2}},
		},
	}

	average, ok := complexity.AverageComplexity(blocks)

	require.True(t, ok)
	assert.InDelta(t, 3.0, average, 1e-9)
}

func TestAverageComplexityEmpty(t *testing.T) {
	t.Parallel()

	average, ok := complexity.AverageComplexity(nil)

	assert.False(t, ok)
	assert.Zero(t, average)
}

func TestBlockLines(t *testing.T) {
	t.Parallel()

	block := &complexity.CodeBlock{StartLine: 10, EndLine: 14}
	assert.Equal(t, 5, block.Lines())
}
