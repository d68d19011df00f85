package mathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codegauge/pkg/mathutil"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, mathutil.Clamp(-3.5, 0, 100), 1e-9)
	assert.InDelta(t, 100.0, mathutil.Clamp(240.1, 0, 100), 1e-9)
	assert.InDelta(t, 42.0, mathutil.Clamp(42, 0, 100), 1e-9)
}

func TestMeanInt(t *testing.T) {
	t.Parallel()

	mean, ok := mathutil.MeanInt([]int{1, 2, 3, 6})
	assert.True(t, ok)
	assert.InDelta(t, 3.0, mean, 1e-9)

	_, ok = mathutil.MeanInt(nil)
	assert.False(t, ok)
}
