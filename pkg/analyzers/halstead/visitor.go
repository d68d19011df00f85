package halstead

import (
	"strings"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/analyze"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

const anonymousFunctionName = "<anonymous>"

// BlockMetrics pairs one function's derived measures with its identity.
type BlockMetrics struct {
	Name      string
	StartLine int
	EndLine   int
	Metrics
}

type scope struct {
	name      string
	startLine int
	endLine   int
	counters  *Counters
}

// Visitor counts operators and operands in one pass. Every occurrence is
// recorded twice: into the innermost enclosing function scope, if any, and
// into the file counters, so file distincts stay true global distincts and
// module-level code is not lost.
type Visitor struct {
	file   *Counters
	scopes []*scope
	names  []string
	blocks []*BlockMetrics
}

// NewVisitor creates a Visitor with empty counters.
func NewVisitor() *Visitor {
	return &Visitor{file: NewCounters()}
}

// OnEnter opens a scope on function definitions and records everything else.
func (v *Visitor) OnEnter(n *syntax.Node, _ int) {
	switch n.Kind {
	case syntax.KindFunction:
		v.names = append(v.names, v.definitionName(n))
		v.scopes = append(v.scopes, &scope{
			name:      v.qualifiedName(),
			startLine: n.Span.StartLine,
			endLine:   n.Span.EndLine,
			counters:  NewCounters(),
		})

		return
	case syntax.KindClass:
		// Classes qualify names but do not open a counting scope.
		v.names = append(v.names, v.definitionName(n))

		return
	default:
	}

	if key, ok := operatorKey(n); ok {
		v.record((*Counters).AddOperator, key)

		return
	}

	if key, ok := operandKey(n); ok {
		v.record((*Counters).AddOperand, key)
	}
}

// OnExit closes function scopes and derives their metrics.
func (v *Visitor) OnExit(n *syntax.Node, _ int) {
	switch n.Kind {
	case syntax.KindFunction:
		top := v.scopes[len(v.scopes)-1]
		v.scopes = v.scopes[:len(v.scopes)-1]
		v.names = v.names[:len(v.names)-1]

		v.blocks = append(v.blocks, &BlockMetrics{
			Name:      top.name,
			StartLine: top.startLine,
			EndLine:   top.endLine,
			Metrics:   top.counters.Derive(),
		})
	case syntax.KindClass:
		v.names = v.names[:len(v.names)-1]
	default:
	}
}

// record applies add to the file counters and the innermost function scope.
func (v *Visitor) record(add func(*Counters, string), key string) {
	add(v.file, key)

	if len(v.scopes) > 0 {
		add(v.scopes[len(v.scopes)-1].counters, key)
	}
}

func (v *Visitor) definitionName(n *syntax.Node) string {
	if n.Name == "" {
		return anonymousFunctionName
	}

	return n.Name
}

func (v *Visitor) qualifiedName() string {
	return strings.Join(v.names, ".")
}

// operatorKey classifies n as an operator and returns its counting key.
// Symbolic operators key on their symbol, keyword constructs on their
// keyword, calls and subscripts on fixed keys.
func operatorKey(n *syntax.Node) (string, bool) {
	switch n.Kind {
	case syntax.KindCall:
		return "call", true
	case syntax.KindSubscript:
		return "subscript", true
	case syntax.KindBinaryOp, syntax.KindUnaryOp, syntax.KindBoolOp, syntax.KindCompareOp,
		syntax.KindAssign, syntax.KindAugAssign,
		syntax.KindKeyword, syntax.KindAssert, syntax.KindLambda,
		syntax.KindIf, syntax.KindElif, syntax.KindElse, syntax.KindTernary,
		syntax.KindFor, syntax.KindWhile,
		syntax.KindTry, syntax.KindExcept, syntax.KindFinally,
		syntax.KindMatch, syntax.KindCaseArm, syntax.KindCaseWildcard,
		syntax.KindCompFor, syntax.KindCompIf:
		if n.Name == "" {
			return "", false
		}

		return n.Name, true
	default:
		return "", false
	}
}

// operandKey classifies n as an operand. Leaf values key on their text,
// attributes on the attribute name; the object expression is still visited
// so its own operands count separately.
func operandKey(n *syntax.Node) (string, bool) {
	switch n.Kind {
	case syntax.KindIdentifier, syntax.KindNumber, syntax.KindString, syntax.KindConstant,
		syntax.KindAttribute:
		if n.Name == "" {
			return "", false
		}

		return n.Name, true
	default:
		return "", false
	}
}

// Blocks returns the per-function metrics in completion order.
func (v *Visitor) Blocks() []*BlockMetrics {
	return v.blocks
}

// FileMetrics derives the file-level measures from the global counters.
func (v *Visitor) FileMetrics() Metrics {
	return v.file.Derive()
}

// GetReport returns the collected metrics as a report.
func (v *Visitor) GetReport() analyze.Report {
	return buildReport(v.Blocks(), v.FileMetrics())
}

// AnalyzeTree runs a full Halstead pass over one tree.
func AnalyzeTree(tree *syntax.Node) ([]*BlockMetrics, Metrics) {
	visitor := NewVisitor()
	syntax.Walk(tree, walkAdapter{visitor})

	return visitor.Blocks(), visitor.FileMetrics()
}

type walkAdapter struct {
	v *Visitor
}

func (a walkAdapter) OnEnter(n *syntax.Node, depth int) { a.v.OnEnter(n, depth) }
func (a walkAdapter) OnLeave(n *syntax.Node, depth int) { a.v.OnExit(n, depth) }
