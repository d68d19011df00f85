package analyze

import "github.com/Sumatoshi-tech/codegauge/pkg/syntax"

// NodeVisitor receives enter/exit callbacks during syntax tree traversal.
type NodeVisitor interface {
	OnEnter(n *syntax.Node, depth int)
	OnExit(n *syntax.Node, depth int)
}

// AnalysisVisitor extends NodeVisitor to provide analysis results.
type AnalysisVisitor interface {
	NodeVisitor
	GetReport() Report
}

// MultiTraverser fans one tree walk out to several visitors so analyzers
// sharing a pass never traverse the tree twice.
type MultiTraverser struct {
	visitors []NodeVisitor
}

// NewMultiTraverser creates an empty MultiTraverser.
func NewMultiTraverser() *MultiTraverser {
	return &MultiTraverser{visitors: make([]NodeVisitor, 0)}
}

// Register adds a visitor to be called during traversal.
func (t *MultiTraverser) Register(v NodeVisitor) {
	t.visitors = append(t.visitors, v)
}

// Traverse walks the tree once, calling every visitor's OnEnter in pre-order
// and OnExit in post-order.
func (t *MultiTraverser) Traverse(root *syntax.Node) {
	if root == nil || len(t.visitors) == 0 {
		return
	}

	syntax.Walk(root, multiVisitor{visitors: t.visitors})
}

type multiVisitor struct {
	visitors []NodeVisitor
}

func (m multiVisitor) OnEnter(n *syntax.Node, depth int) {
	for _, v := range m.visitors {
		v.OnEnter(n, depth)
	}
}

func (m multiVisitor) OnLeave(n *syntax.Node, depth int) {
	for _, v := range m.visitors {
		v.OnExit(n, depth)
	}
}
