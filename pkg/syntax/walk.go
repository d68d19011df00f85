package syntax

// Visitor receives enter and leave callbacks during a tree walk. OnEnter runs
// before any of the node's children, OnLeave after all of them.
type Visitor interface {
	OnEnter(n *Node, depth int)
	OnLeave(n *Node, depth int)
}

// walkFrame is one pending step of an iterative walk. A node is pushed twice:
// first to enter it, then (entered=true) to leave it after its subtree.
type walkFrame struct {
	node    *Node
	depth   int
	entered bool
}

// Walk traverses the tree with an explicit stack, calling the visitor's
// OnEnter in pre-order and OnLeave in post-order. Child order is preserved.
func Walk(root *Node, v Visitor) {
	if root == nil {
		return
	}

	stack := []walkFrame{{node: root, depth: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.entered {
			v.OnLeave(top.node, top.depth)

			continue
		}

		v.OnEnter(top.node, top.depth)

		stack = append(stack, walkFrame{node: top.node, depth: top.depth, entered: true})

		children := top.node.Children
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, walkFrame{node: children[idx], depth: top.depth + 1})
		}
	}
}

// VisitPreOrder visits every node in pre-order (node before its children).
func VisitPreOrder(root *Node, fn func(n *Node, depth int)) {
	if root == nil {
		return
	}

	stack := []walkFrame{{node: root, depth: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		fn(top.node, top.depth)

		children := top.node.Children
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, walkFrame{node: children[idx], depth: top.depth + 1})
		}
	}
}

// Find returns all nodes for which the predicate holds, in pre-order.
func Find(root *Node, predicate func(*Node) bool) []*Node {
	var result []*Node

	VisitPreOrder(root, func(n *Node, _ int) {
		if predicate(n) {
			result = append(result, n)
		}
	})

	return result
}
