package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
)

const branchySource = "def f(x):\n    if x:\n        return 1\n    return 2\n"

func TestListToolNames(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	names := srv.ListToolNames()
	require.Len(t, names, toolCount)
	assert.Equal(t, []string{
		ToolNameComplexity,
		ToolNameHalstead,
		ToolNameMaintain,
		ToolNameRaw,
		ToolNameRank,
	}, names)
}

func TestComplexityTool(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, output, err := srv.handleComplexity(context.Background(), nil, ComplexityInput{Code: branchySource})
	require.NoError(t, err)
	require.False(t, result.IsError)

	report, ok := output.Data.(analyze.Report)
	require.True(t, ok)
	assert.Equal(t, 1, reportutil.GetInt(report, "total_blocks"))
	assert.Equal(t, 2, reportutil.GetInt(report, "total_complexity"))
}

func TestHalsteadTool(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, output, err := srv.handleHalstead(context.Background(), nil, HalsteadInput{Code: branchySource})
	require.NoError(t, err)
	require.False(t, result.IsError)

	report, ok := output.Data.(analyze.Report)
	require.True(t, ok)
	assert.Equal(t, 1, reportutil.GetInt(report, "total_functions"))
	assert.Positive(t, reportutil.GetFloat64(report, "volume"))
}

func TestRawTool(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, output, err := srv.handleRaw(context.Background(), nil, RawInput{Code: branchySource})
	require.NoError(t, err)
	require.False(t, result.IsError)

	report, ok := output.Data.(analyze.Report)
	require.True(t, ok)
	assert.Equal(t, 4, reportutil.GetInt(report, "loc"))
	assert.Equal(t, 4, reportutil.GetInt(report, "sloc"))
}

func TestMaintainTool(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, output, err := srv.handleMaintain(context.Background(), nil, MaintainInput{Code: branchySource})
	require.NoError(t, err)
	require.False(t, result.IsError)

	report, ok := output.Data.(analyze.Report)
	require.True(t, ok)

	mi := reportutil.GetFloat64(report, "mi")
	assert.Greater(t, mi, 0.0)
	assert.LessOrEqual(t, mi, 100.0)
	assert.NotEmpty(t, reportutil.GetString(report, "rank"))
}

func TestRankTool(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, output, err := srv.handleRank(context.Background(), nil, RankInput{Code: branchySource})
	require.NoError(t, err)
	require.False(t, result.IsError)

	report, ok := output.Data.(analyze.Report)
	require.True(t, ok)
	assert.NotEmpty(t, report["rank"])

	blocks, ok := report["blocks"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)
	assert.Equal(t, "f", blocks[0]["name"])
	assert.Equal(t, "A", blocks[0]["rank"])
}

func TestEmptyCodeRejected(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, _, err := srv.handleComplexity(context.Background(), nil, ComplexityInput{})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestOversizedCodeRejected(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{MaxInputSize: 8})

	result, _, err := srv.handleRaw(context.Background(), nil, RawInput{Code: branchySource})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestSyntaxErrorBecomesToolError(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{})

	result, _, err := srv.handleComplexity(context.Background(), nil, ComplexityInput{Code: "def (:\n"})
	require.NoError(t, err)
	require.True(t, result.IsError)
}

func TestResultCaching(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{CacheCapacity: 4})

	_, _, err := srv.handleHalstead(context.Background(), nil, HalsteadInput{Code: branchySource})
	require.NoError(t, err)

	_, _, err = srv.handleHalstead(context.Background(), nil, HalsteadInput{Code: branchySource})
	require.NoError(t, err)

	stats := srv.CacheStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestCacheKeySeparatesOptions(t *testing.T) {
	t.Parallel()

	withAssert := cacheKey(ToolNameComplexity, "x", false)
	withoutAssert := cacheKey(ToolNameComplexity, "x", true)
	assert.NotEqual(t, withAssert, withoutAssert)

	otherTool := cacheKey(ToolNameRaw, "x", false)
	assert.NotEqual(t, withAssert, otherTool)
}

func TestValidateCodeMessages(t *testing.T) {
	t.Parallel()

	srv := NewServer(ServerDeps{MaxInputSize: 4})

	require.ErrorIs(t, srv.validateCode(""), ErrEmptyCode)

	err := srv.validateCode(strings.Repeat("a", 5))
	require.ErrorIs(t, err, ErrCodeTooLarge)
}
