package halstead_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/halstead"
)

func TestDeriveBasicCounts(t *testing.T) {
	t.Parallel()

	c := halstead.NewCounters()
	c.AddOperator("=")
	c.AddOperator("=")
	c.AddOperator("+")
	c.AddOperand("a")
	c.AddOperand("a")
	c.AddOperand("b")
	c.AddOperand("b")
	c.AddOperand("2")

	m := c.Derive()

	assert.Equal(t, 2, m.DistinctOperators)
	assert.Equal(t, 3, m.DistinctOperands)
	assert.Equal(t, 3, m.TotalOperators)
	assert.Equal(t, 5, m.TotalOperands)
	assert.Equal(t, 5, m.Vocabulary)
	assert.Equal(t, 8, m.Length)

	wantVolume := 8 * math.Log2(5)
	assert.InDelta(t, wantVolume, m.Volume, 1e-9)

	wantDifficulty := (2.0 / 2.0) * (5.0 / 3.0)
	assert.InDelta(t, wantDifficulty, m.Difficulty, 1e-9)
	assert.InDelta(t, wantDifficulty*wantVolume, m.Effort, 1e-9)
	assert.InDelta(t, m.Effort/18, m.TimeToProgram, 1e-9)
	assert.InDelta(t, m.Volume/3000, m.DeliveredBugs, 1e-9)

	wantEstimated := 2*math.Log2(2) + 3*math.Log2(3)
	assert.InDelta(t, wantEstimated, m.EstimatedLength, 1e-9)
}

func TestDeriveEmptyCounters(t *testing.T) {
	t.Parallel()

	m := halstead.NewCounters().Derive()

	assert.Zero(t, m.Volume)
	assert.Zero(t, m.Difficulty)
	assert.Zero(t, m.Effort)
	assert.Zero(t, m.TimeToProgram)
	assert.Zero(t, m.DeliveredBugs)
	assert.False(t, math.IsNaN(m.Volume))
}

func TestDeriveSingleVocabularyEntry(t *testing.T) {
	t.Parallel()

	// Vocabulary of one: volume is undefined, reported as zero.
	c := halstead.NewCounters()
	c.AddOperand("x")
	c.AddOperand("x")

	m := c.Derive()

	assert.Equal(t, 1, m.Vocabulary)
	assert.Equal(t, 2, m.Length)
	assert.Zero(t, m.Volume)
	assert.Zero(t, m.Difficulty)
}

func TestDeriveNoOperands(t *testing.T) {
	t.Parallel()

	c := halstead.NewCounters()
	c.AddOperator("pass")
	c.AddOperator("return")

	m := c.Derive()

	// Difficulty needs at least one distinct operand.
	assert.Zero(t, m.Difficulty)
	assert.Zero(t, m.Effort)
	assert.Positive(t, m.Volume)
}
