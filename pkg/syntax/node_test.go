package syntax

import (
	"reflect"
	"testing"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind Kind
		want string
	}{
		{KindModule, "Module"},
		{KindFunction, "Function"},
		{KindCaseWildcard, "CaseWildcard"},
		{KindOther, "Other"},
		{Kind(200), "Kind(200)"},
	}

	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("Kind.String() = %q, want %q", got, tc.want)
		}
	}
}

func TestKindIsDefinition(t *testing.T) {
	t.Parallel()

	if !KindFunction.IsDefinition() || !KindClass.IsDefinition() {
		t.Errorf("Function and Class must open block contexts")
	}

	if KindLambda.IsDefinition() || KindIf.IsDefinition() {
		t.Errorf("Lambda and If must not open block contexts")
	}
}

func TestSpanLines(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		span Span
		want int
	}{
		{"single line", Span{StartLine: 3, EndLine: 3}, 1},
		{"multi line", Span{StartLine: 2, EndLine: 7}, 6},
		{"inverted", Span{StartLine: 5, EndLine: 2}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := tc.span.Lines(); got != tc.want {
				t.Errorf("Lines() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSpanCovers(t *testing.T) {
	t.Parallel()

	span := Span{StartLine: 2, EndLine: 4}

	for line, want := range map[int]bool{1: false, 2: true, 3: true, 4: true, 5: false} {
		if got := span.Covers(line); got != want {
			t.Errorf("Covers(%d) = %v, want %v", line, got, want)
		}
	}
}

func TestNodeIs(t *testing.T) {
	t.Parallel()

	n := New(KindFor, "for")

	if !n.Is(KindFor) || !n.Is(KindWhile, KindFor) {
		t.Errorf("Is should match the node kind")
	}

	if n.Is(KindWhile) {
		t.Errorf("Is should reject other kinds")
	}

	var nilNode *Node
	if nilNode.Is(KindFor) {
		t.Errorf("Is on nil node must be false")
	}
}

func TestNodeCountChildren(t *testing.T) {
	t.Parallel()

	try := New(KindTry, "").WithChildren(
		New(KindExcept, ""),
		New(KindExcept, ""),
		New(KindElse, "else"),
		New(KindFinally, ""),
	)

	if got := try.CountChildren(KindExcept); got != 2 {
		t.Errorf("CountChildren(Except) = %d, want 2", got)
	}

	if got := try.CountChildren(KindElse, KindFinally); got != 2 {
		t.Errorf("CountChildren(Else, Finally) = %d, want 2", got)
	}

	if got := try.CountChildren(KindCaseArm); got != 0 {
		t.Errorf("CountChildren(CaseArm) = %d, want 0", got)
	}
}

func TestNodeString(t *testing.T) {
	t.Parallel()

	n := New(KindFunction, "handler").WithChildren(New(KindIf, ""), New(KindFor, ""))

	if got := n.String(); got != "Function(handler)/2" {
		t.Errorf("String() = %q", got)
	}

	var nilNode *Node
	if nilNode.String() != "nil" {
		t.Errorf("nil node String() should be %q", "nil")
	}
}

func TestTokenIsSignificant(t *testing.T) {
	t.Parallel()

	significant := []TokenKind{TokenOperator, TokenIdentifier, TokenKeyword, TokenNumber, TokenString}
	for _, kind := range significant {
		if !(Token{Kind: kind}).IsSignificant() {
			t.Errorf("%v should be significant", kind)
		}
	}

	insignificant := []TokenKind{TokenComment, TokenNewline, TokenNL, TokenIndent, TokenDedent, TokenEndMarker}
	for _, kind := range insignificant {
		if (Token{Kind: kind}).IsSignificant() {
			t.Errorf("%v should not be significant", kind)
		}
	}
}

func TestTokenStreamAppend(t *testing.T) {
	t.Parallel()

	stream := &TokenStream{Lines: 1}
	stream.Append(Token{Kind: TokenIdentifier, Text: "x"})
	stream.Append(Token{Kind: TokenNewline})

	if stream.Len() != 2 {
		t.Errorf("Len() = %d, want 2", stream.Len())
	}

	if !reflect.DeepEqual(stream.Tokens[0].Text, "x") {
		t.Errorf("first token = %q, want %q", stream.Tokens[0].Text, "x")
	}
}
