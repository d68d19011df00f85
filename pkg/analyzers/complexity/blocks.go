// Package complexity computes per-block cyclomatic complexity for Python
// sources: one score per function, method, and class, counting the decision
// points inside the block's own body.
package complexity

import "github.com/Sumatoshi-tech/codegauge/pkg/mathutil"

// BlockKind classifies a scored code block.
type BlockKind string

// Block kind constants.
const (
	BlockFunction BlockKind = "function"
	BlockMethod   BlockKind = "method"
	BlockClass    BlockKind = "class"
)

// CodeBlock is one scored block. Closures holds lexically nested blocks in
// source order; a method is a nested block of its class.
type CodeBlock struct {
	Name       string
	FullName   string
	Kind       BlockKind
	StartLine  int
	EndLine    int
	Complexity int
	Closures   []*CodeBlock
}

// Lines returns the number of physical lines the block spans.
func (b *CodeBlock) Lines() int {
	if b.EndLine < b.StartLine {
		return 0
	}

	return b.EndLine - b.StartLine + 1
}

// Rank boundaries on the integer complexity score.
const (
	rankAMax = 5
	rankBMax = 10
	rankCMax = 20
	rankDMax = 30
	rankEMax = 40
)

// Rank maps a complexity score to its letter rank: A 1-5, B 6-10, C 11-20,
// D 21-30, E 31-40, F 41 and above.
func Rank(score int) string {
	switch {
	case score <= rankAMax:
		return "A"
	case score <= rankBMax:
		return "B"
	case score <= rankCMax:
		return "C"
	case score <= rankDMax:
		return "D"
	case score <= rankEMax:
		return "E"
	default:
		return "F"
	}
}

// FlatBlock pairs a block with its nesting depth in the flattened sequence.
type FlatBlock struct {
	Block *CodeBlock
	Depth int
}

// Flatten produces the pre-order sequence of blocks and their closures, each
// block before its children, tagged with nesting depth.
func Flatten(blocks []*CodeBlock) []FlatBlock {
	var result []FlatBlock

	type frame struct {
		block *CodeBlock
		depth int
	}

	stack := make([]frame, 0, len(blocks))
	for idx := len(blocks) - 1; idx >= 0; idx-- {
		stack = append(stack, frame{block: blocks[idx], depth: 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		result = append(result, FlatBlock{Block: top.block, Depth: top.depth})

		closures := top.block.Closures
		for idx := len(closures) - 1; idx >= 0; idx-- {
			stack = append(stack, frame{block: closures[idx], depth: top.depth + 1})
		}
	}

	return result
}

// AverageComplexity returns the unweighted mean complexity over the flattened
// block set. ok is false when there are no blocks.
func AverageComplexity(blocks []*CodeBlock) (float64, bool) {
	flat := Flatten(blocks)

	scores := make([]int, 0, len(flat))
	for _, entry := range flat {
		scores = append(scores, entry.Block.Complexity)
	}

	return mathutil.MeanInt(scores)
}
