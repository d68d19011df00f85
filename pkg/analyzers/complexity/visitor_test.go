package complexity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/complexity"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

func functionNode(name string, body ...*syntax.Node) *syntax.Node {
	return syntax.New(syntax.KindFunction, name).WithChildren(body...)
}

func analyzeBlocks(t *testing.T, body ...*syntax.Node) []*complexity.CodeBlock {
	t.Helper()

	module := syntax.New(syntax.KindModule, "").WithChildren(body...)
	blocks, warnings := complexity.AnalyzeTree(module, complexity.Options{})

	require.Zero(t, warnings)

	return blocks
}

func TestBranchlessFunctionScoresOne(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindKeyword, "pass"),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Complexity)
	assert.Equal(t, "A", complexity.Rank(blocks[0].Complexity))
}

func TestEmptyBodyStaysOne(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f"))

	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Complexity)
}

func TestThreeIfsScoreFour(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindIf, "if"),
		syntax.New(syntax.KindIf, "if"),
		syntax.New(syntax.KindIf, "if"),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 4, blocks[0].Complexity)
}

func TestBooleanChainUnderIf(t *testing.T) {
	t.Parallel()

	// if (a and b) or c: two BoolOp nodes plus the if itself.
	chain := syntax.New(syntax.KindBoolOp, "or").WithChildren(
		syntax.New(syntax.KindBoolOp, "and").WithChildren(
			syntax.New(syntax.KindIdentifier, "a"),
			syntax.New(syntax.KindIdentifier, "b"),
		),
		syntax.New(syntax.KindIdentifier, "c"),
	)

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindIf, "if").WithChildren(chain),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 4, blocks[0].Complexity)
}

func TestTryWithTwoExcepts(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindTry, "try").WithChildren(
			syntax.New(syntax.KindExcept, "except"),
			syntax.New(syntax.KindExcept, "except"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestTryElseAddsOne(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindTry, "try").WithChildren(
			syntax.New(syntax.KindExcept, "except"),
			syntax.New(syntax.KindElse, "else"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestTryFinallyAddsNothing(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindTry, "try").WithChildren(
			syntax.New(syntax.KindFinally, "finally"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Complexity)
}

func TestLoopElseAddsOne(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindFor, "for").WithChildren(
			syntax.New(syntax.KindElse, "else"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestIfElseAddsNothing(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindIf, "if").WithChildren(
			syntax.New(syntax.KindElse, "else"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Complexity)
}

func TestMatchWildcardDiscounted(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindMatch, "match").WithChildren(
			syntax.New(syntax.KindCaseArm, "case"),
			syntax.New(syntax.KindCaseArm, "case"),
			syntax.New(syntax.KindCaseWildcard, "case"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestMatchWithoutWildcard(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindMatch, "match").WithChildren(
			syntax.New(syntax.KindCaseArm, "case"),
			syntax.New(syntax.KindCaseArm, "case"),
		),
	))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestArmlessMatchWarns(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(functionNode("f",
		syntax.New(syntax.KindMatch, "match"),
	))

	blocks, warnings := complexity.AnalyzeTree(module, complexity.Options{})

	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Complexity)
	assert.Equal(t, 1, warnings)
}

func TestAssertCountsUnlessDisabled(t *testing.T) {
	t.Parallel()

	module := syntax.New(syntax.KindModule, "").WithChildren(functionNode("f",
		syntax.New(syntax.KindAssert, "assert"),
	))

	blocks, _ := complexity.AnalyzeTree(module, complexity.Options{})
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Complexity)

	blocks, _ = complexity.AnalyzeTree(module, complexity.Options{NoAssert: true})
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Complexity)
}

func TestModuleLevelConstructsNotScored(t *testing.T) {
	t.Parallel()

	blocks := analyzeBlocks(t,
		syntax.New(syntax.KindIf, "if"),
		syntax.New(syntax.KindFor, "for"),
	)

	assert.Empty(t, blocks)
}

func TestMethodNamingAndClassBlock(t *testing.T) {
	t.Parallel()

	class := syntax.New(syntax.KindClass, "Parser").WithChildren(
		syntax.New(syntax.KindIf, "if"),
		functionNode("parse",
			syntax.New(syntax.KindWhile, "while"),
		),
	)

	blocks := analyzeBlocks(t, class)

	require.Len(t, blocks, 1)
	classBlock := blocks[0]
	assert.Equal(t, complexity.BlockClass, classBlock.Kind)
	// Only the class's own body scores here; methods score separately.
	assert.Equal(t, 2, classBlock.Complexity)

	require.Len(t, classBlock.Closures, 1)
	method := classBlock.Closures[0]
	assert.Equal(t, complexity.BlockMethod, method.Kind)
	assert.Equal(t, "Parser.parse", method.FullName)
	assert.Equal(t, 2, method.Complexity)
}

func TestClosureNesting(t *testing.T) {
	t.Parallel()

	outer := functionNode("outer",
		syntax.New(syntax.KindIf, "if"),
		functionNode("inner",
			syntax.New(syntax.KindIf, "if"),
		),
	)

	blocks := analyzeBlocks(t, outer)

	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Complexity)

	require.Len(t, blocks[0].Closures, 1)
	inner := blocks[0].Closures[0]
	assert.Equal(t, complexity.BlockFunction, inner.Kind)
	assert.Equal(t, "outer.inner", inner.FullName)
	assert.Equal(t, 2, inner.Complexity)
}

func TestComprehensionClauses(t *testing.T) {
	t.Parallel()

	// [x for x in xs if x] inside a function: CompFor + CompIf.
	comp := syntax.New(syntax.KindComprehension, "").WithChildren(
		syntax.New(syntax.KindCompFor, "for"),
		syntax.New(syntax.KindCompIf, "if"),
	)

	blocks := analyzeBlocks(t, functionNode("f", comp))

	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Complexity)
}

func TestComplexityMonotoneDuringTraversal(t *testing.T) {
	t.Parallel()

	// Adding constructs can only raise the score, never lower it.
	base := analyzeBlocks(t, functionNode("f", syntax.New(syntax.KindIf, "if")))
	extended := analyzeBlocks(t, functionNode("f",
		syntax.New(syntax.KindIf, "if"),
		syntax.New(syntax.KindWhile, "while"),
	))

	require.Len(t, base, 1)
	require.Len(t, extended, 1)
	assert.GreaterOrEqual(t, extended[0].Complexity, base[0].Complexity)
	assert.GreaterOrEqual(t, base[0].Complexity, 1)
}
