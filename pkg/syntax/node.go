// Package syntax defines the language-neutral syntax tree and lexical token
// stream consumed by the metric engines. A front end (see pkg/frontend)
// produces one Unit per source file; the engines never parse text themselves.
package syntax

import (
	"strconv"
	"strings"
)

// Kind identifies the construct a Node represents. The set is closed: engines
// switch over it exhaustively and treat KindOther as inert structure.
type Kind uint8

// Node kind constants.
const (
	KindOther Kind = iota
	KindModule
	KindFunction
	KindClass
	KindLambda
	KindIf
	KindElif
	KindElse
	KindTernary
	KindFor
	KindWhile
	KindTry
	KindExcept
	KindFinally
	KindMatch
	KindCaseArm
	KindCaseWildcard
	KindComprehension
	KindCompFor
	KindCompIf
	KindBoolOp
	KindBinaryOp
	KindUnaryOp
	KindCompareOp
	KindAssign
	KindAugAssign
	KindCall
	KindSubscript
	KindAttribute
	KindIdentifier
	KindNumber
	KindString
	KindConstant
	KindKeyword
	KindAssert
)

// kindNames maps each Kind to its display name. Indexed by the Kind value.
//
//nolint:gochecknoglobals // static lookup table.
var kindNames = [...]string{
	KindOther:         "Other",
	KindModule:        "Module",
	KindFunction:      "Function",
	KindClass:         "Class",
	KindLambda:        "Lambda",
	KindIf:            "If",
	KindElif:          "Elif",
	KindElse:          "Else",
	KindTernary:       "Ternary",
	KindFor:           "For",
	KindWhile:         "While",
	KindTry:           "Try",
	KindExcept:        "Except",
	KindFinally:       "Finally",
	KindMatch:         "Match",
	KindCaseArm:       "CaseArm",
	KindCaseWildcard:  "CaseWildcard",
	KindComprehension: "Comprehension",
	KindCompFor:       "CompFor",
	KindCompIf:        "CompIf",
	KindBoolOp:        "BoolOp",
	KindBinaryOp:      "BinaryOp",
	KindUnaryOp:       "UnaryOp",
	KindCompareOp:     "CompareOp",
	KindAssign:        "Assign",
	KindAugAssign:     "AugAssign",
	KindCall:          "Call",
	KindSubscript:     "Subscript",
	KindAttribute:     "Attribute",
	KindIdentifier:    "Identifier",
	KindNumber:        "Number",
	KindString:        "String",
	KindConstant:      "Constant",
	KindKeyword:       "Keyword",
	KindAssert:        "Assert",
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsDefinition reports whether the kind opens a new code block context.
func (k Kind) IsDefinition() bool {
	return k == KindFunction || k == KindClass
}

// IsLeafValue reports whether the kind carries a value and never has children
// of its own in a well-formed tree.
func (k Kind) IsLeafValue() bool {
	switch k {
	case KindIdentifier, KindNumber, KindString, KindConstant:
		return true
	default:
		return false
	}
}

// Span locates a construct in the source file. Lines and columns are 1-based;
// EndLine/EndCol are inclusive.
type Span struct {
	StartLine int `json:"start_line"`
	StartCol  int `json:"start_col"`
	EndLine   int `json:"end_line"`
	EndCol    int `json:"end_col"`
}

// Lines returns the number of physical lines the span covers.
func (s Span) Lines() int {
	if s.EndLine < s.StartLine {
		return 0
	}

	return s.EndLine - s.StartLine + 1
}

// Covers reports whether the span includes the given physical line.
func (s Span) Covers(line int) bool {
	return line >= s.StartLine && line <= s.EndLine
}

// Node is a single construct in the syntax tree.
//
// Fields:
//
//	Kind: the construct variant (closed enum).
//	Name: identifier text, operator symbol, keyword, or literal text.
//	Span: source location (start/end line and column, 1-based).
//	Children: nested constructs in source order.
//
// Trees are built once by the front end and read-only afterwards.
type Node struct {
	Name     string  `json:"name,omitempty"`
	Kind     Kind    `json:"kind"`
	Span     Span    `json:"span"`
	Children []*Node `json:"children,omitempty"`
}

// New creates a node with the given kind and name.
func New(kind Kind, name string) *Node {
	return &Node{Kind: kind, Name: name}
}

// WithSpan sets the node span and returns the node for chaining.
func (n *Node) WithSpan(startLine, startCol, endLine, endCol int) *Node {
	n.Span = Span{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}

	return n
}

// WithChildren appends child nodes and returns the node for chaining.
func (n *Node) WithChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)

	return n
}

// AddChild appends one child node.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Is reports whether the node is non-nil and has any of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}

	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}

	return false
}

// CountChildren returns the number of direct children with any of the given kinds.
func (n *Node) CountChildren(kinds ...Kind) int {
	if n == nil {
		return 0
	}

	count := 0

	for _, child := range n.Children {
		if child.Is(kinds...) {
			count++
		}
	}

	return count
}

// String returns a compact representation for logs and test failures.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}

	var buf strings.Builder

	buf.WriteString(n.Kind.String())

	if n.Name != "" {
		buf.WriteString("(")
		buf.WriteString(n.Name)
		buf.WriteString(")")
	}

	if len(n.Children) > 0 {
		buf.WriteString("/")
		buf.WriteString(strconv.Itoa(len(n.Children)))
	}

	return buf.String()
}

// Unit bundles everything the engines need to know about one source file.
type Unit struct {
	Path   string
	Tree   *Node
	Tokens *TokenStream
}
