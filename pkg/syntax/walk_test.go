package syntax

import (
	"reflect"
	"strconv"
	"testing"
)

// makeWalkTree builds:
//
//	module
//	 ├── func f
//	 │    ├── if
//	 │    └── for
//	 └── class C
//	      └── func m
func makeWalkTree() *Node {
	return New(KindModule, "").WithChildren(
		New(KindFunction, "f").WithChildren(
			New(KindIf, ""),
			New(KindFor, ""),
		),
		New(KindClass, "C").WithChildren(
			New(KindFunction, "m"),
		),
	)
}

type traceVisitor struct {
	events []string
}

func (v *traceVisitor) OnEnter(n *Node, depth int) {
	v.events = append(v.events, "enter "+n.String()+" d"+strconv.Itoa(depth))
}

func (v *traceVisitor) OnLeave(n *Node, depth int) {
	v.events = append(v.events, "leave "+n.String()+" d"+strconv.Itoa(depth))
}

func TestWalkEnterLeaveOrder(t *testing.T) {
	t.Parallel()

	visitor := &traceVisitor{}
	Walk(makeWalkTree(), visitor)

	want := []string{
		"enter Module/2 d0",
		"enter Function(f)/2 d1",
		"enter If d2",
		"leave If d2",
		"enter For d2",
		"leave For d2",
		"leave Function(f)/2 d1",
		"enter Class(C)/1 d1",
		"enter Function(m) d2",
		"leave Function(m) d2",
		"leave Class(C)/1 d1",
		"leave Module/2 d0",
	}

	if !reflect.DeepEqual(visitor.events, want) {
		t.Errorf("Walk order:\n got %v\nwant %v", visitor.events, want)
	}
}

func TestWalkNilRoot(t *testing.T) {
	t.Parallel()

	visitor := &traceVisitor{}
	Walk(nil, visitor)

	if len(visitor.events) != 0 {
		t.Errorf("Walk(nil) should not visit anything, got %v", visitor.events)
	}
}

func TestVisitPreOrder(t *testing.T) {
	t.Parallel()

	var got []string

	VisitPreOrder(makeWalkTree(), func(n *Node, _ int) {
		got = append(got, n.Kind.String())
	})

	want := []string{"Module", "Function", "If", "For", "Class", "Function"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("VisitPreOrder: got %v, want %v", got, want)
	}
}

func TestFind(t *testing.T) {
	t.Parallel()

	found := Find(makeWalkTree(), func(n *Node) bool { return n.Kind == KindFunction })

	var names []string
	for _, n := range found {
		names = append(names, n.Name)
	}

	want := []string{"f", "m"}

	if !reflect.DeepEqual(names, want) {
		t.Errorf("Find(Function): got %v, want %v", names, want)
	}
}

// Deep trees must not exhaust the goroutine stack. A linear chain of fifty
// thousand nodes would overflow a recursive walker long before this.
func TestWalkDeepChain(t *testing.T) {
	t.Parallel()

	const depth = 50000

	root := New(KindModule, "")

	current := root
	for range depth {
		child := New(KindIf, "")
		current.AddChild(child)
		current = child
	}

	count := 0

	VisitPreOrder(root, func(_ *Node, _ int) { count++ })

	if count != depth+1 {
		t.Errorf("visited %d nodes, want %d", count, depth+1)
	}
}
