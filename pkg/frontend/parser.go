// Package frontend turns Python source into the language-neutral syntax tree
// and token stream defined by pkg/syntax. Parsing is delegated to
// tree-sitter; this package maps the grammar onto the closed construct set
// and synthesizes the lexical tokens the raw metrics consume.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/python"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/codegauge/pkg/safeconv"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// Sentinel errors for parsing.
var (
	// ErrParse reports that the source could not be parsed into a valid tree.
	// A file failing with ErrParse produces no partial results.
	ErrParse      = errors.New("source contains syntax errors")
	errNoRootNode = errors.New("parser returned no root node")
	errPoolType   = errors.New("parser pool returned unexpected type")
)

//nolint:gochecknoglobals // the grammar is process-wide and loaded once.
var pythonLanguage = sync.OnceValue(func() *sitter.Language {
	return sitter.NewLanguage(python.GetLanguage())
})

// Parser converts Python source files into analysis units. It is safe for
// concurrent use; tree-sitter parsers are pooled per instance.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Parser for Python sources.
func NewParser() *Parser {
	lang := pythonLanguage()

	return &Parser{
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Parse builds the syntax tree and token stream for one source file.
// Content with syntax errors fails with a wrapped [ErrParse].
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*syntax.Unit, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, fmt.Errorf("parse %s: %w", path, errNoRootNode)
	}

	conv := &converter{src: content}

	unitTree := conv.convert(root)
	if conv.errSpan != nil {
		return nil, fmt.Errorf("parse %s: line %d: %w", path, conv.errSpan.StartLine, ErrParse)
	}

	if unitTree == nil {
		unitTree = syntax.New(syntax.KindModule, "")
	}

	return &syntax.Unit{
		Path:   path,
		Tree:   unitTree,
		Tokens: synthesizeTokens(root, content),
	}, nil
}

// converter maps tree-sitter node types onto the closed construct set.
// The grammar's surface is wide; anything without metric meaning becomes
// KindOther so its children still flow to the visitors.
type converter struct {
	src     []byte
	errSpan *syntax.Span
}

// keywordStatements maps statement node types to the keyword they begin with.
//
//nolint:gochecknoglobals // static lookup table.
var keywordStatements = map[string]string{
	"return_statement":      "return",
	"raise_statement":       "raise",
	"pass_statement":        "pass",
	"break_statement":       "break",
	"continue_statement":    "continue",
	"delete_statement":      "del",
	"global_statement":      "global",
	"nonlocal_statement":    "nonlocal",
	"import_statement":      "import",
	"import_from_statement": "from",
	"with_statement":        "with",
	"await":                 "await",
	"yield":                 "yield",
	"exec_statement":        "exec",
	"print_statement":       "print",
}

func (c *converter) convert(ts sitter.Node) *syntax.Node {
	nodeType := ts.Type()

	if nodeType == "ERROR" {
		c.recordError(ts)

		return nil
	}

	if keyword, ok := keywordStatements[nodeType]; ok {
		return c.withSpan(c.convertInto(syntax.New(syntax.KindKeyword, keyword), ts), ts)
	}

	switch nodeType {
	case "module":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindModule, ""), ts), ts)
	case "comment":
		return nil
	case "function_definition":
		return c.convertDefinition(ts, syntax.KindFunction)
	case "class_definition":
		return c.convertDefinition(ts, syntax.KindClass)
	case "lambda":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindLambda, "lambda"), ts), ts)
	case "if_statement":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindIf, "if"), ts), ts)
	case "elif_clause":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindElif, "elif"), ts), ts)
	case "else_clause":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindElse, "else"), ts), ts)
	case "conditional_expression":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindTernary, "if"), ts), ts)
	case "for_statement":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindFor, "for"), ts), ts)
	case "while_statement":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindWhile, "while"), ts), ts)
	case "try_statement":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindTry, "try"), ts), ts)
	case "except_clause", "except_group_clause":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindExcept, "except"), ts), ts)
	case "finally_clause":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindFinally, "finally"), ts), ts)
	case "match_statement":
		return c.convertMatch(ts)
	case "case_clause":
		return c.convertCaseArm(ts)
	case "list_comprehension", "set_comprehension", "dictionary_comprehension", "generator_expression":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindComprehension, ""), ts), ts)
	case "for_in_clause":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindCompFor, "for"), ts), ts)
	case "if_clause":
		// A bare if_clause is a comprehension filter. Case guards are
		// unwrapped by convertCaseArm before reaching this point.
		return c.withSpan(c.convertInto(syntax.New(syntax.KindCompIf, "if"), ts), ts)
	case "boolean_operator":
		return c.convertOperator(ts, syntax.KindBoolOp)
	case "binary_operator":
		return c.convertOperator(ts, syntax.KindBinaryOp)
	case "unary_operator":
		return c.convertOperator(ts, syntax.KindUnaryOp)
	case "not_operator":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindUnaryOp, "not"), ts), ts)
	case "comparison_operator":
		return c.convertComparison(ts)
	case "assignment":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindAssign, "="), ts), ts)
	case "named_expression":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindAssign, ":="), ts), ts)
	case "augmented_assignment":
		return c.convertOperator(ts, syntax.KindAugAssign)
	case "call":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindCall, ""), ts), ts)
	case "subscript":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindSubscript, ""), ts), ts)
	case "attribute":
		return c.convertAttribute(ts)
	case "identifier":
		return c.withSpan(syntax.New(syntax.KindIdentifier, c.text(ts)), ts)
	case "integer", "float":
		return c.withSpan(syntax.New(syntax.KindNumber, c.text(ts)), ts)
	case "string", "concatenated_string":
		// Strings are atomic: interpolations inside f-strings are not
		// descended into, and implicit concatenation is one literal.
		return c.withSpan(syntax.New(syntax.KindString, c.text(ts)), ts)
	case "true", "false", "none", "ellipsis":
		return c.withSpan(syntax.New(syntax.KindConstant, c.text(ts)), ts)
	case "assert_statement":
		return c.withSpan(c.convertInto(syntax.New(syntax.KindAssert, "assert"), ts), ts)
	default:
		return c.withSpan(c.convertInto(syntax.New(syntax.KindOther, ""), ts), ts)
	}
}

// convertInto converts the named children of ts and appends them to parent.
func (c *converter) convertInto(parent *syntax.Node, ts sitter.Node) *syntax.Node {
	for idx := range ts.NamedChildCount() {
		child := c.convert(ts.NamedChild(idx))
		if child != nil {
			parent.AddChild(child)
		}
	}

	return parent
}

// convertDefinition handles function and class definitions. The name field
// becomes the node name rather than an identifier child.
func (c *converter) convertDefinition(ts sitter.Node, kind syntax.Kind) *syntax.Node {
	result := syntax.New(kind, "")

	var nameStart, nameEnd uint

	hasName := false

	nameNode := ts.ChildByFieldName("name")
	if !nameNode.IsNull() {
		result.Name = c.text(nameNode)
		nameStart, nameEnd = nameNode.StartByte(), nameNode.EndByte()
		hasName = true
	}

	for idx := range ts.NamedChildCount() {
		tsChild := ts.NamedChild(idx)
		if hasName && tsChild.StartByte() == nameStart && tsChild.EndByte() == nameEnd {
			continue
		}

		child := c.convert(tsChild)
		if child != nil {
			result.AddChild(child)
		}
	}

	return c.withSpan(result, ts)
}

// convertMatch flattens the case block so arms are direct children.
func (c *converter) convertMatch(ts sitter.Node) *syntax.Node {
	result := syntax.New(syntax.KindMatch, "match")

	for idx := range ts.NamedChildCount() {
		tsChild := ts.NamedChild(idx)

		if tsChild.Type() == "block" {
			c.convertInto(result, tsChild)

			continue
		}

		child := c.convert(tsChild)
		if child != nil {
			result.AddChild(child)
		}
	}

	return c.withSpan(result, ts)
}

// convertCaseArm classifies `case _:` without a guard as the wildcard arm.
// A guard clause is unwrapped: its condition joins the arm's children so
// boolean chains inside it still score.
func (c *converter) convertCaseArm(ts sitter.Node) *syntax.Node {
	kind := syntax.KindCaseArm

	guard := ts.ChildByFieldName("guard")
	if guard.IsNull() && c.isWildcardPattern(ts) {
		kind = syntax.KindCaseWildcard
	}

	result := syntax.New(kind, "case")

	for idx := range ts.NamedChildCount() {
		tsChild := ts.NamedChild(idx)

		if tsChild.Type() == "if_clause" && !guard.IsNull() && tsChild.StartByte() == guard.StartByte() {
			c.convertInto(result, tsChild)

			continue
		}

		child := c.convert(tsChild)
		if child != nil {
			result.AddChild(child)
		}
	}

	return c.withSpan(result, ts)
}

// isWildcardPattern reports whether the case clause matches exactly `_`.
func (c *converter) isWildcardPattern(ts sitter.Node) bool {
	patterns := 0
	wildcard := false

	for idx := range ts.NamedChildCount() {
		tsChild := ts.NamedChild(idx)
		if tsChild.Type() != "case_pattern" {
			continue
		}

		patterns++
		wildcard = c.text(tsChild) == "_"
	}

	return patterns == 1 && wildcard
}

// convertOperator handles nodes with an operator field: the operator text
// becomes the node name, the named children become operands.
func (c *converter) convertOperator(ts sitter.Node, kind syntax.Kind) *syntax.Node {
	result := syntax.New(kind, "")

	opNode := ts.ChildByFieldName("operator")
	if !opNode.IsNull() {
		result.Name = c.text(opNode)
	}

	return c.withSpan(c.convertInto(result, ts), ts)
}

// convertComparison decomposes a chained comparison into a left fold of
// binary comparison nodes, one per operator: a < b <= c becomes
// CompareOp(<=){CompareOp(<){a, b}, c}.
func (c *converter) convertComparison(ts sitter.Node) *syntax.Node {
	var (
		operands  []*syntax.Node
		operators []string
	)

	pendingNot := false

	for idx := range ts.ChildCount() {
		tsChild := ts.Child(idx)

		if tsChild.IsNamed() {
			if operand := c.convert(tsChild); operand != nil {
				operands = append(operands, operand)
			}

			continue
		}

		// `not in` and `is not` arrive as two adjacent keyword tokens.
		switch opText := c.text(tsChild); opText {
		case "not":
			if len(operators) > 0 && operators[len(operators)-1] == "is" {
				operators[len(operators)-1] = "is not"
			} else {
				pendingNot = true
			}
		case "in":
			if pendingNot {
				operators = append(operators, "not in")
				pendingNot = false
			} else {
				operators = append(operators, opText)
			}
		default:
			operators = append(operators, opText)
		}
	}

	if len(operands) == 0 {
		return nil
	}

	result := operands[0]

	for idx, op := range operators {
		if idx+1 >= len(operands) {
			break
		}

		result = syntax.New(syntax.KindCompareOp, op).WithChildren(result, operands[idx+1])
	}

	return c.withSpan(result, ts)
}

// convertAttribute keys the node by the attribute name; the object
// expression remains a child so its own operands still count.
func (c *converter) convertAttribute(ts sitter.Node) *syntax.Node {
	result := syntax.New(syntax.KindAttribute, "")

	attrNode := ts.ChildByFieldName("attribute")
	if !attrNode.IsNull() {
		result.Name = c.text(attrNode)
	}

	objNode := ts.ChildByFieldName("object")
	if !objNode.IsNull() {
		if child := c.convert(objNode); child != nil {
			result.AddChild(child)
		}
	}

	return c.withSpan(result, ts)
}

func (c *converter) recordError(ts sitter.Node) {
	if c.errSpan != nil {
		return
	}

	span := tsSpan(ts)
	c.errSpan = &span
}

func (c *converter) text(ts sitter.Node) string {
	start, end := ts.StartByte(), ts.EndByte()
	if start >= end || safeconv.MustUintToInt(end) > len(c.src) {
		return ""
	}

	return string(c.src[start:end])
}

func (c *converter) withSpan(n *syntax.Node, ts sitter.Node) *syntax.Node {
	if n != nil {
		n.Span = tsSpan(ts)
	}

	return n
}

// tsSpan converts tree-sitter's 0-based points to 1-based inclusive spans.
func tsSpan(ts sitter.Node) syntax.Span {
	start := ts.StartPoint()
	end := ts.EndPoint()

	endLine := safeconv.MustUintToInt(uint(end.Row)) + 1
	endCol := safeconv.MustUintToInt(uint(end.Column))

	// Tree-sitter end points are exclusive. A node ending at column zero
	// stops at the previous line's end.
	if endCol == 0 && endLine > safeconv.MustUintToInt(uint(start.Row))+1 {
		endLine--
	}

	return syntax.Span{
		StartLine: safeconv.MustUintToInt(uint(start.Row)) + 1,
		StartCol:  safeconv.MustUintToInt(uint(start.Column)) + 1,
		EndLine:   endLine,
		EndCol:    endCol,
	}
}
