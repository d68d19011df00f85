package frontend

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/codegauge/pkg/safeconv"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

// pythonKeywords is the reserved word set. Soft keywords (match, case) stay
// identifiers, the way the CPython tokenizer reports them.
//
//nolint:gochecknoglobals // static lookup table.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true,
	"and": true, "as": true, "assert": true, "async": true, "await": true,
	"break": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "nonlocal": true, "not": true, "or": true,
	"pass": true, "raise": true, "return": true, "try": true, "while": true,
	"with": true, "yield": true,
}

const tabWidth = 8

// synthesizeTokens derives the lexical token stream from a parsed tree: the
// concrete tokens come from the tree's leaves, and the structural tokens
// (Newline, NL, Indent, Dedent, EndMarker) are reconstructed from line
// boundaries, bracket depth, and indentation.
func synthesizeTokens(root sitter.Node, src []byte) *syntax.TokenStream {
	collector := &tokenCollector{src: src, contLines: make(map[int]bool)}
	collector.collect(root)

	return assembleStream(collector.tokens, collector.contLines, src)
}

// tokenCollector gathers concrete tokens from tree leaves in source order.
type tokenCollector struct {
	src       []byte
	tokens    []syntax.Token
	contLines map[int]bool
}

func (tc *tokenCollector) collect(ts sitter.Node) {
	switch ts.Type() {
	case "comment":
		tc.append(ts, syntax.TokenComment)

		return
	case "string":
		// One token per string literal, interpolations included.
		tc.append(ts, syntax.TokenString)

		return
	case "line_continuation":
		// A backslash escaping the line break. Not a token of its own,
		// but it suppresses the boundary at its line.
		tc.contLines[tsSpan(ts).StartLine] = true

		return
	}

	count := ts.ChildCount()
	if count == 0 {
		tc.appendLeaf(ts)

		return
	}

	for idx := range count {
		tc.collect(ts.Child(idx))
	}
}

func (tc *tokenCollector) appendLeaf(ts sitter.Node) {
	start, end := ts.StartByte(), ts.EndByte()
	if start >= end || safeconv.MustUintToInt(end) > len(tc.src) {
		return
	}

	text := string(tc.src[start:end])

	tc.tokens = append(tc.tokens, syntax.Token{
		Kind: classifyLeaf(ts.Type(), text),
		Text: text,
		Span: tsSpan(ts),
	})
}

func (tc *tokenCollector) append(ts sitter.Node, kind syntax.TokenKind) {
	start, end := ts.StartByte(), ts.EndByte()
	if start >= end || safeconv.MustUintToInt(end) > len(tc.src) {
		return
	}

	tc.tokens = append(tc.tokens, syntax.Token{
		Kind: kind,
		Text: string(tc.src[start:end]),
		Span: tsSpan(ts),
	})
}

func classifyLeaf(nodeType, text string) syntax.TokenKind {
	switch nodeType {
	case "integer", "float":
		return syntax.TokenNumber
	}

	if pythonKeywords[text] {
		return syntax.TokenKeyword
	}

	if isIdentifierText(text) {
		return syntax.TokenIdentifier
	}

	return syntax.TokenOperator
}

func isIdentifierText(text string) bool {
	if text == "" {
		return false
	}

	first := text[0]

	return first == '_' || (first >= 'a' && first <= 'z') || (first >= 'A' && first <= 'Z') || first >= 0x80
}

// streamAssembler rebuilds the structural tokens between concrete ones.
type streamAssembler struct {
	stream      *syntax.TokenStream
	contLines   map[int]bool
	lineIndents []int
	indents     []int
	depth       int
	curLine     int
	lineHasSig  bool
	atLineStart bool
}

func assembleStream(tokens []syntax.Token, contLines map[int]bool, src []byte) *syntax.TokenStream {
	asm := &streamAssembler{
		stream:      &syntax.TokenStream{Lines: countLines(src)},
		contLines:   contLines,
		lineIndents: computeLineIndents(src),
		indents:     []int{0},
		curLine:     1,
		atLineStart: true,
	}

	for _, tok := range tokens {
		asm.advanceTo(tok.Span.StartLine)
		asm.push(tok)
	}

	asm.advanceTo(asm.stream.Lines + 1)
	asm.close()

	return asm.stream
}

// advanceTo emits boundary tokens for every line before the target line.
func (asm *streamAssembler) advanceTo(line int) {
	for asm.curLine < line {
		asm.closeLine(asm.curLine)
		asm.curLine++
		asm.lineHasSig = false
	}
}

func (asm *streamAssembler) closeLine(line int) {
	boundary := syntax.Span{StartLine: line, EndLine: line}

	switch {
	case asm.contLines[line]:
		// Escaped break: the logical line continues, no token at all.
	case asm.depth > 0:
		asm.stream.Append(syntax.Token{Kind: syntax.TokenNL, Span: boundary})
	case asm.lineHasSig:
		asm.stream.Append(syntax.Token{Kind: syntax.TokenNewline, Span: boundary})
		asm.atLineStart = true
	default:
		asm.stream.Append(syntax.Token{Kind: syntax.TokenNL, Span: boundary})
	}
}

func (asm *streamAssembler) push(tok syntax.Token) {
	if tok.IsSignificant() {
		if asm.atLineStart && asm.depth == 0 {
			asm.applyIndent(tok.Span.StartLine)
			asm.atLineStart = false
		}

		asm.lineHasSig = true
		asm.trackDepth(tok)
	}

	asm.stream.Append(tok)

	if tok.Span.EndLine > asm.curLine {
		asm.curLine = tok.Span.EndLine
	}
}

func (asm *streamAssembler) trackDepth(tok syntax.Token) {
	if tok.Kind != syntax.TokenOperator {
		return
	}

	switch tok.Text {
	case "(", "[", "{":
		asm.depth++
	case ")", "]", "}":
		if asm.depth > 0 {
			asm.depth--
		}
	}
}

func (asm *streamAssembler) applyIndent(line int) {
	width := 0
	if line-1 < len(asm.lineIndents) {
		width = asm.lineIndents[line-1]
	}

	marker := syntax.Span{StartLine: line, StartCol: 1, EndLine: line, EndCol: width}

	top := asm.indents[len(asm.indents)-1]
	if width > top {
		asm.indents = append(asm.indents, width)
		asm.stream.Append(syntax.Token{Kind: syntax.TokenIndent, Span: marker})

		return
	}

	for width < asm.indents[len(asm.indents)-1] {
		asm.indents = asm.indents[:len(asm.indents)-1]
		asm.stream.Append(syntax.Token{Kind: syntax.TokenDedent, Span: marker})
	}
}

// close drains remaining dedents and terminates the stream.
func (asm *streamAssembler) close() {
	final := syntax.Span{StartLine: asm.stream.Lines, EndLine: asm.stream.Lines}

	for len(asm.indents) > 1 {
		asm.indents = asm.indents[:len(asm.indents)-1]
		asm.stream.Append(syntax.Token{Kind: syntax.TokenDedent, Span: final})
	}

	asm.stream.Append(syntax.Token{Kind: syntax.TokenEndMarker, Span: final})
}

func countLines(src []byte) int {
	if len(src) == 0 {
		return 0
	}

	lines := 0

	for _, b := range src {
		if b == '\n' {
			lines++
		}
	}

	if src[len(src)-1] != '\n' {
		lines++
	}

	return lines
}

// computeLineIndents returns the indentation width of every line, tabs
// advancing to the next multiple of eight columns.
func computeLineIndents(src []byte) []int {
	var widths []int

	width := 0
	measuring := true

	for _, b := range src {
		switch {
		case b == '\n':
			widths = append(widths, width)
			width = 0
			measuring = true
		case !measuring:
		case b == ' ':
			width++
		case b == '\t':
			width = (width/tabWidth + 1) * tabWidth
		case b == '\f':
			width = 0
		default:
			measuring = false
		}
	}

	if len(src) > 0 && src[len(src)-1] != '\n' {
		widths = append(widths, width)
	}

	return widths
}
