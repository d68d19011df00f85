package complexity

import (
	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

const anonymousBlockName = "<anonymous>"

// Options controls scoring behavior.
type Options struct {
	// NoAssert disables the +1 for assert statements.
	NoAssert bool
	// ShowClosures flattens nested blocks into the report's block table.
	ShowClosures bool
}

// Visitor scores cyclomatic complexity during a single tree walk. Every
// decision point increments the innermost enclosing block; module-level
// constructs outside any block are not scored.
type Visitor struct {
	opts     Options
	stack    []*CodeBlock
	blocks   []*CodeBlock
	warnings int
}

// NewVisitor creates a complexity visitor with the given options.
func NewVisitor(opts Options) *Visitor {
	return &Visitor{opts: opts}
}

// OnEnter pushes definition blocks and scores decision points. Lambdas do
// not open a block: their decision points score into the enclosing one.
func (v *Visitor) OnEnter(n *syntax.Node, _ int) {
	if n.Kind.IsDefinition() {
		v.pushBlock(n)

		return
	}

	current := v.current()
	if current == nil {
		return
	}

	current.Complexity += v.scoreNode(n)
}

// OnExit pops definition blocks, attaching them to their lexical parent.
func (v *Visitor) OnExit(n *syntax.Node, _ int) {
	if n.Kind.IsDefinition() {
		v.popBlock()
	}
}

// scoreNode returns the increment a node contributes to its enclosing block.
func (v *Visitor) scoreNode(n *syntax.Node) int {
	switch n.Kind {
	case syntax.KindIf, syntax.KindElif, syntax.KindTernary,
		syntax.KindCompFor, syntax.KindCompIf, syntax.KindBoolOp:
		return 1
	case syntax.KindFor, syntax.KindWhile:
		// The loop itself plus its else clause, which only runs when the
		// loop finishes without break.
		increment := 1
		if n.CountChildren(syntax.KindElse) > 0 {
			increment++
		}

		return increment
	case syntax.KindTry:
		return n.CountChildren(syntax.KindExcept) + min(n.CountChildren(syntax.KindElse), 1)
	case syntax.KindMatch:
		return v.scoreMatch(n)
	case syntax.KindAssert:
		if v.opts.NoAssert {
			return 0
		}

		return 1
	default:
		return 0
	}
}

// scoreMatch counts arms, discounting one wildcard arm. An armless match is
// malformed: it scores nothing and is reported as a warning.
func (v *Visitor) scoreMatch(n *syntax.Node) int {
	arms := n.CountChildren(syntax.KindCaseArm, syntax.KindCaseWildcard)
	if arms == 0 {
		v.warnings++

		return 0
	}

	if n.CountChildren(syntax.KindCaseWildcard) > 0 {
		arms--
	}

	return arms
}

func (v *Visitor) pushBlock(n *syntax.Node) {
	name := n.Name
	if name == "" {
		name = anonymousBlockName
	}

	block := &CodeBlock{
		Name:       name,
		FullName:   v.qualifiedName(name),
		Kind:       v.blockKind(n),
		StartLine:  n.Span.StartLine,
		EndLine:    n.Span.EndLine,
		Complexity: 1,
	}

	v.stack = append(v.stack, block)
}

func (v *Visitor) popBlock() {
	if len(v.stack) == 0 {
		return
	}

	block := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]

	if parent := v.current(); parent != nil {
		parent.Closures = append(parent.Closures, block)

		return
	}

	v.blocks = append(v.blocks, block)
}

func (v *Visitor) current() *CodeBlock {
	if len(v.stack) == 0 {
		return nil
	}

	return v.stack[len(v.stack)-1]
}

// blockKind is method for a function directly inside a class, otherwise the
// node kind decides.
func (v *Visitor) blockKind(n *syntax.Node) BlockKind {
	if n.Kind == syntax.KindClass {
		return BlockClass
	}

	if parent := v.current(); parent != nil && parent.Kind == BlockClass {
		return BlockMethod
	}

	return BlockFunction
}

func (v *Visitor) qualifiedName(name string) string {
	if parent := v.current(); parent != nil {
		return parent.FullName + "." + name
	}

	return name
}

// Blocks returns the completed top-level blocks in source order.
func (v *Visitor) Blocks() []*CodeBlock {
	return v.blocks
}

// Warnings returns the number of malformed constructs skipped.
func (v *Visitor) Warnings() int {
	return v.warnings
}

// GetReport builds the per-file report from the collected blocks.
func (v *Visitor) GetReport() analyze.Report {
	return buildReport(v.blocks, v.warnings, v.opts)
}

// AnalyzeTree walks one tree and returns its blocks and warning count.
// This is the pure entry point the maintainability analyzer reuses.
func AnalyzeTree(tree *syntax.Node, opts Options) ([]*CodeBlock, int) {
	visitor := NewVisitor(opts)
	syntax.Walk(tree, walkAdapter{visitor})

	return visitor.Blocks(), visitor.Warnings()
}

// walkAdapter bridges the analyze visitor signature onto syntax.Visitor.
type walkAdapter struct {
	v *Visitor
}

func (a walkAdapter) OnEnter(n *syntax.Node, depth int) { a.v.OnEnter(n, depth) }
func (a walkAdapter) OnLeave(n *syntax.Node, depth int) { a.v.OnExit(n, depth) }
