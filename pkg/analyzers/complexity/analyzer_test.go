package complexity_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/common/reportutil"
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

func sampleUnit() *syntax.Unit {
	tree := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "simple").WithSpan(1, 0, 2, 8),
		syntax.New(syntax.KindFunction, "branchy").WithSpan(4, 0, 9, 8).WithChildren(
			syntax.New(syntax.KindIf, "if"),
			syntax.New(syntax.KindIf, "if"),
			syntax.New(syntax.KindWhile, "while"),
		),
	)

	return &syntax.Unit{Path: "sample.py", Tree: tree}
}

func TestAnalyzeReportShape(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()

	report, err := analyzer.Analyze(sampleUnit())
	require.NoError(t, err)

	assert.Equal(t, "complexity", reportutil.GetString(report, "analyzer_name"))
	assert.Equal(t, 2, reportutil.GetInt(report, "total_blocks"))
	assert.Equal(t, 5, reportutil.GetInt(report, "total_complexity"))
	assert.Equal(t, 4, reportutil.GetInt(report, "max_complexity"))
	assert.InDelta(t, 2.5, reportutil.GetFloat64(report, "average_complexity"), 1e-9)
	assert.Zero(t, reportutil.GetInt(report, "warnings"))

	blocks := reportutil.GetBlocks(report, "blocks")
	require.Len(t, blocks, 2)
	assert.Equal(t, "simple", blocks[0]["name"])
	assert.Equal(t, "A", blocks[1]["rank"])
	assert.Equal(t, 4, blocks[1]["start_line"])
}

func TestAnalyzeNilUnit(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()

	_, err := analyzer.Analyze(nil)
	require.ErrorIs(t, err, analyze.ErrNilUnit)

	_, err = analyzer.Analyze(&syntax.Unit{Path: "empty.py"})
	require.ErrorIs(t, err, analyze.ErrNilUnit)
}

func TestConfigureOptions(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()
	require.NoError(t, analyzer.Configure(map[string]any{
		complexity.OptionNoAssert: true,
	}))

	tree := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(
			syntax.New(syntax.KindAssert, "assert"),
		),
	)

	report, err := analyzer.Analyze(&syntax.Unit{Path: "f.py", Tree: tree})
	require.NoError(t, err)
	assert.Equal(t, 1, reportutil.GetInt(report, "total_complexity"))
}

func TestShowClosuresExpandsTable(t *testing.T) {
	t.Parallel()

	tree := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "outer").WithChildren(
			syntax.New(syntax.KindFunction, "inner"),
		),
	)
	unit := &syntax.Unit{Path: "nested.py", Tree: tree}

	analyzer := complexity.NewAnalyzer()
	report, err := analyzer.Analyze(unit)
	require.NoError(t, err)

	// Default: nested blocks counted but folded out of the table.
	assert.Equal(t, 2, reportutil.GetInt(report, "total_blocks"))
	assert.Len(t, reportutil.GetBlocks(report, "blocks"), 1)

	require.NoError(t, analyzer.Configure(map[string]any{
		complexity.OptionShowClosures: true,
	}))

	report, err = analyzer.Analyze(unit)
	require.NoError(t, err)

	blocks := reportutil.GetBlocks(report, "blocks")
	require.Len(t, blocks, 2)
	assert.Equal(t, "outer.inner", blocks[1]["full_name"])
	assert.Equal(t, 1, blocks[1]["depth"])
}

func TestDescriptorAndOptions(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()

	assert.Equal(t, "complexity", analyzer.Name())
	assert.Equal(t, "complexity", analyzer.Flag())
	assert.NotEmpty(t, analyzer.Description())

	options := analyzer.ListConfigurationOptions()
	require.Len(t, options, 2)
	assert.Equal(t, complexity.OptionNoAssert, options[0].Name)
	assert.Equal(t, complexity.OptionShowClosures, options[1].Name)

	thresholds := analyzer.Thresholds()
	require.Contains(t, thresholds, "complexity")
}

func TestFormatReportText(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()
	report, err := analyzer.Analyze(sampleUnit())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, analyzer.FormatReport(report, &buf))

	output := buf.String()
	assert.Contains(t, output, "COMPLEXITY")
	assert.Contains(t, output, "Total Blocks")
	assert.Contains(t, output, "branchy")
}

func TestFormatReportJSON(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()
	report, err := analyzer.Analyze(sampleUnit())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, analyzer.FormatReportJSON(report, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 2, decoded["total_blocks"])
}

func TestFormatReportBinaryRoundTrip(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()
	report, err := analyzer.Analyze(sampleUnit())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, analyzer.FormatReportBinary(report, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), reportutil.BinaryMagic))

	raw, err := reportutil.DecodeBinaryEnvelope(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 5, decoded["total_complexity"])
}

func TestVisitorSharedTraversal(t *testing.T) {
	t.Parallel()

	analyzer := complexity.NewAnalyzer()
	unit := sampleUnit()

	visitor := analyzer.CreateVisitor(unit)
	require.NotNil(t, visitor)

	traverser := analyze.NewMultiTraverser()
	traverser.Register(visitor)
	traverser.Traverse(unit.Tree)

	report := visitor.GetReport()
	assert.Equal(t, 2, reportutil.GetInt(report, "total_blocks"))
	assert.Equal(t, 5, reportutil.GetInt(report, "total_complexity"))
}
