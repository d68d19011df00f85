package halstead_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/halstead"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// assignTree models `x = y + 1` as the frontend emits it.
func assignTree() *syntax.Node {
	return syntax.New(syntax.KindAssign, "=").WithChildren(
		syntax.New(syntax.KindIdentifier, "x"),
		syntax.New(syntax.KindBinaryOp, "+").WithChildren(
			syntax.New(syntax.KindIdentifier, "y"),
			syntax.New(syntax.KindNumber, "1"),
		),
	)
}

func TestOperatorAndOperandCounting(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(assignTree()),
	)

	blocks, file := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 1)
	assert.Equal(t, "f", blocks[0].Name)
	assert.Equal(t, 2, blocks[0].DistinctOperators) // = and +
	assert.Equal(t, 3, blocks[0].DistinctOperands)  // x, y, 1
	assert.Equal(t, 2, blocks[0].TotalOperators)
	assert.Equal(t, 3, blocks[0].TotalOperands)

	// The file counters see the same occurrences.
	assert.Equal(t, 2, file.DistinctOperators)
	assert.Equal(t, 3, file.DistinctOperands)
}

func TestModuleLevelCodeCountsTowardFile(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(assignTree())

	blocks, file := halstead.AnalyzeTree(module)

	assert.Empty(t, blocks)
	assert.Equal(t, 2, file.TotalOperators)
	assert.Equal(t, 3, file.TotalOperands)
}

func TestFileDistinctsSpanFunctions(t *testing.T) {
	t.Parallel()

	// Both functions use `=`; the file must count it once as distinct.
	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(
			syntax.New(syntax.KindAssign, "=").WithChildren(
				syntax.New(syntax.KindIdentifier, "a"),
			),
		),
		syntax.New(syntax.KindFunction, "g").WithChildren(
			syntax.New(syntax.KindAssign, "=").WithChildren(
				syntax.New(syntax.KindIdentifier, "a"),
			),
		),
	)

	blocks, file := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 2)
	assert.Equal(t, 1, file.DistinctOperators)
	assert.Equal(t, 2, file.TotalOperators)
	assert.Equal(t, 1, file.DistinctOperands)
	assert.Equal(t, 2, file.TotalOperands)
}

func TestKeywordConstructsAreOperators(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(
			syntax.New(syntax.KindIf, "if").WithChildren(
				syntax.New(syntax.KindIdentifier, "flag"),
				syntax.New(syntax.KindKeyword, "return"),
			),
			syntax.New(syntax.KindFor, "for"),
			syntax.New(syntax.KindKeyword, "pass"),
		),
	)

	blocks, _ := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 1)
	assert.Contains(t, blocks[0].Operators, "if")
	assert.Contains(t, blocks[0].Operators, "return")
	assert.Contains(t, blocks[0].Operators, "for")
	assert.Contains(t, blocks[0].Operators, "pass")
	assert.Equal(t, 1, blocks[0].TotalOperands)
}

func TestCallSubscriptAndAttributeKeys(t *testing.T) {
	t.Parallel()

	// obj.items[0]() as call(subscript(attribute(obj)))
	expr := syntax.New(syntax.KindCall, "").WithChildren(
		syntax.New(syntax.KindSubscript, "").WithChildren(
			syntax.New(syntax.KindAttribute, "items").WithChildren(
				syntax.New(syntax.KindIdentifier, "obj"),
			),
			syntax.New(syntax.KindNumber, "0"),
		),
	)

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(expr),
	)

	blocks, _ := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Operators["call"])
	assert.Equal(t, 1, blocks[0].Operators["subscript"])
	assert.Equal(t, 1, blocks[0].Operands["items"])
	assert.Equal(t, 1, blocks[0].Operands["obj"])
	assert.Equal(t, 1, blocks[0].Operands["0"])
}

func TestNestedFunctionScoping(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "outer").WithChildren(
			syntax.New(syntax.KindIdentifier, "a"),
			syntax.New(syntax.KindFunction, "inner").WithChildren(
				syntax.New(syntax.KindIdentifier, "b"),
			),
		),
	)

	blocks, file := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 2)

	// Inner scopes close first.
	assert.Equal(t, "outer.inner", blocks[0].Name)
	assert.Equal(t, 1, blocks[0].TotalOperands)
	assert.Equal(t, "outer", blocks[1].Name)
	// The inner identifier belongs to the inner scope, not the outer one.
	assert.Equal(t, 1, blocks[1].TotalOperands)

	assert.Equal(t, 2, file.TotalOperands)
}

func TestMethodQualification(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindClass, "Parser").WithChildren(
			syntax.New(syntax.KindFunction, "parse").WithChildren(
				syntax.New(syntax.KindIdentifier, "data"),
			),
		),
	)

	blocks, _ := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 1)
	assert.Equal(t, "Parser.parse", blocks[0].Name)
}

func TestLambdaCountsAsOperator(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithChildren(
			syntax.New(syntax.KindLambda, "lambda").WithChildren(
				syntax.New(syntax.KindIdentifier, "x"),
			),
		),
	)

	blocks, _ := halstead.AnalyzeTree(module)

	// Lambdas do not open scopes: their contents count into the
	// enclosing function.
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Operators["lambda"])
	assert.Equal(t, 1, blocks[0].Operands["x"])
}

func TestBlockSpans(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(
		syntax.New(syntax.KindFunction, "f").WithSpan(3, 0, 9, 12),
	)

	blocks, _ := halstead.AnalyzeTree(module)

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, 9, blocks[0].EndLine)
}
