package rawmetrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codegauge/pkg/analyzers/rawmetrics"
	"github.com/Sumatoshi-tech/codegauge/pkg/syntax"
)

func tok(kind syntax.TokenKind, text string, line int) syntax.Token {
	return syntax.Token{
		Kind: kind,
		Text: text,
		Span: syntax.Span{StartLine: line, StartCol: 1, EndLine: line, EndCol: 1 + len(text)},
	}
}

func spanTok(kind syntax.TokenKind, text string, startLine, endLine int) syntax.Token {
	return syntax.Token{
		Kind: kind,
		Text: text,
		Span: syntax.Span{StartLine: startLine, StartCol: 1, EndLine: endLine, EndCol: 4},
	}
}

func stream(lines int, tokens ...syntax.Token) *syntax.TokenStream {
	return &syntax.TokenStream{Tokens: tokens, Lines: lines}
}

func assertPartition(t *testing.T, counts rawmetrics.Counts) {
	t.Helper()
	assert.Equal(t, counts.Total, counts.Blank+counts.CommentOnly+counts.Multi+counts.Code,
		"line categories must partition the file")
}

func TestSimpleAssignment(t *testing.T) {
	t.Parallel()

	// x = 1
	counts := rawmetrics.Classify(stream(1,
		tok(syntax.TokenIdentifier, "x", 1),
		tok(syntax.TokenOperator, "=", 1),
		tok(syntax.TokenNumber, "1", 1),
		tok(syntax.TokenNewline, "\n", 1),
	), rawmetrics.Options{})

	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 1, counts.Code)
	assert.Equal(t, 1, counts.LLOC)
	assertPartition(t, counts)
}

func TestCompoundHeaderWithInlineBody(t *testing.T) {
	t.Parallel()

	// if x: return 0  -> one physical line, two logical lines.
	counts := rawmetrics.Classify(stream(1,
		tok(syntax.TokenKeyword, "if", 1),
		tok(syntax.TokenIdentifier, "x", 1),
		tok(syntax.TokenOperator, ":", 1),
		tok(syntax.TokenKeyword, "return", 1),
		tok(syntax.TokenNumber, "0", 1),
		tok(syntax.TokenNewline, "\n", 1),
	), rawmetrics.Options{})

	assert.Equal(t, 1, counts.Total)
	assert.Equal(t, 2, counts.LLOC)
	assertPartition(t, counts)
}

func TestBareCompoundHeaderCountsOnce(t *testing.T) {
	t.Parallel()

	// else: (colon is the last significant token)
	counts := rawmetrics.Classify(stream(1,
		tok(syntax.TokenKeyword, "else", 1),
		tok(syntax.TokenOperator, ":", 1),
		tok(syntax.TokenNewline, "\n", 1),
	), rawmetrics.Options{})

	assert.Equal(t, 1, counts.LLOC)
}

func TestSemicolonsSplitStatements(t *testing.T) {
	t.Parallel()

	// a = 1; b = 2;
	counts := rawmetrics.Classify(stream(1,
		tok(syntax.TokenIdentifier, "a", 1),
		tok(syntax.TokenOperator, "=", 1),
		tok(syntax.TokenNumber, "1", 1),
		tok(syntax.TokenOperator, ";", 1),
		tok(syntax.TokenIdentifier, "b", 1),
		tok(syntax.TokenOperator, "=", 1),
		tok(syntax.TokenNumber, "2", 1),
		tok(syntax.TokenOperator, ";", 1),
		tok(syntax.TokenNewline, "\n", 1),
	), rawmetrics.Options{})

	// The trailing semicolon leaves an empty part which is dropped.
	assert.Equal(t, 2, counts.LLOC)
}

func TestSemicolonInsideBracketsDoesNotSplit(t *testing.T) {
	t.Parallel()

	// f("a;b")-like shape: operator ; at depth > 0.
	counts := rawmetrics.Classify(stream(1,
		tok(syntax.TokenIdentifier, "f", 1),
		tok(syntax.TokenOperator, "(", 1),
		tok(syntax.TokenOperator, ";", 1),
		tok(syntax.TokenOperator, ")", 1),
		tok(syntax.TokenNewline, "\n", 1),
	), rawmetrics.Options{})

	assert.Equal(t, 1, counts.LLOC)
}

func TestBracketContinuationIsOneLogicalLine(t *testing.T) {
	t.Parallel()

	// items = [   <- NL inside brackets, not Newline
	//     1,
	// ]
	counts := rawmetrics.Classify(stream(3,
		tok(syntax.TokenIdentifier, "items", 1),
		tok(syntax.TokenOperator, "=", 1),
		tok(syntax.TokenOperator, "[", 1),
		tok(syntax.TokenNL, "\n", 1),
		tok(syntax.TokenNumber, "1", 2),
		tok(syntax.TokenOperator, ",", 2),
		tok(syntax.TokenNL, "\n", 2),
		tok(syntax.TokenOperator, "]", 3),
		tok(syntax.TokenNewline, "\n", 3),
	), rawmetrics.Options{})

	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 3, counts.Code)
	assert.Equal(t, 1, counts.LLOC)
	assertPartition(t, counts)
}

func TestDocstringOnlyFile(t *testing.T) {
	t.Parallel()

	// A module docstring spanning lines 1-3, blank lines 4-5.
	docstringStream := stream(5,
		spanTok(syntax.TokenString, "\"\"\"doc\"\"\"", 1, 3),
		tok(syntax.TokenNewline, "\n", 3),
		tok(syntax.TokenNL, "\n", 4),
		tok(syntax.TokenNL, "\n", 5),
	)

	withMulti := rawmetrics.Classify(docstringStream, rawmetrics.Options{MultiAsComments: true})
	assert.Zero(t, withMulti.Code)
	assert.Equal(t, 3, withMulti.Multi)
	assert.Equal(t, 2, withMulti.Blank)
	assert.Equal(t, 1, withMulti.LLOC)
	assertPartition(t, withMulti)

	withoutMulti := rawmetrics.Classify(docstringStream, rawmetrics.Options{})
	assert.Equal(t, 3, withoutMulti.Code)
	assert.Zero(t, withoutMulti.Multi)
	assertPartition(t, withoutMulti)
}

func TestAssignedStringIsNotADocstring(t *testing.T) {
	t.Parallel()

	// s = """text""" spans lines 1-2: consumed as a value, stays code.
	counts := rawmetrics.Classify(stream(2,
		tok(syntax.TokenIdentifier, "s", 1),
		tok(syntax.TokenOperator, "=", 1),
		spanTok(syntax.TokenString, "\"\"\"text\"\"\"", 1, 2),
		tok(syntax.TokenNewline, "\n", 2),
	), rawmetrics.Options{MultiAsComments: true})

	assert.Equal(t, 2, counts.Code)
	assert.Zero(t, counts.Multi)
	assertPartition(t, counts)
}

func TestCommentLines(t *testing.T) {
	t.Parallel()

	// Line 1: comment only. Line 2: code with trailing comment. Line 3: blank.
	counts := rawmetrics.Classify(stream(3,
		tok(syntax.TokenComment, "# header", 1),
		tok(syntax.TokenNL, "\n", 1),
		tok(syntax.TokenIdentifier, "x", 2),
		tok(syntax.TokenOperator, "=", 2),
		tok(syntax.TokenNumber, "1", 2),
		tok(syntax.TokenComment, "# trailing", 2),
		tok(syntax.TokenNewline, "\n", 2),
		tok(syntax.TokenNL, "\n", 3),
	), rawmetrics.Options{})

	assert.Equal(t, 1, counts.CommentOnly)
	assert.Equal(t, 1, counts.Code)
	assert.Equal(t, 1, counts.Blank)
	assert.Equal(t, 2, counts.Comments)
	assertPartition(t, counts)
}

func TestEmptyStream(t *testing.T) {
	t.Parallel()

	counts := rawmetrics.Classify(stream(0), rawmetrics.Options{})

	assert.Zero(t, counts.Total)
	assert.Zero(t, counts.LLOC)
	assertPartition(t, counts)
}
