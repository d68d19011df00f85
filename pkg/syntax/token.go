package syntax

import "strconv"

// TokenKind classifies a lexical token.
type TokenKind uint8

// Token kind constants.
const (
	// TokenOperator covers operator and punctuation tokens.
	TokenOperator TokenKind = iota
	// TokenIdentifier is a name token.
	TokenIdentifier
	// TokenKeyword is a reserved word.
	TokenKeyword
	// TokenNumber is a numeric literal.
	TokenNumber
	// TokenString is a string literal, possibly spanning several lines.
	TokenString
	// TokenComment is a comment, always confined to one line.
	TokenComment
	// TokenNewline terminates a logical line.
	TokenNewline
	// TokenNL is a non-logical line break: blank lines, comment-only lines,
	// and breaks inside bracketed continuations.
	TokenNL
	// TokenIndent marks an increase of the block indentation level.
	TokenIndent
	// TokenDedent marks a decrease of the block indentation level.
	TokenDedent
	// TokenEndMarker closes the stream.
	TokenEndMarker
)

// tokenKindNames maps each TokenKind to its display name.
//
//nolint:gochecknoglobals // static lookup table.
var tokenKindNames = [...]string{
	TokenOperator:   "Operator",
	TokenIdentifier: "Identifier",
	TokenKeyword:    "Keyword",
	TokenNumber:     "Number",
	TokenString:     "String",
	TokenComment:    "Comment",
	TokenNewline:    "Newline",
	TokenNL:         "NL",
	TokenIndent:     "Indent",
	TokenDedent:     "Dedent",
	TokenEndMarker:  "EndMarker",
}

// String returns the display name of the token kind.
func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}

	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// Token is a single lexical token with its source location.
type Token struct {
	Text string
	Span Span
	Kind TokenKind
}

// IsSignificant reports whether the token contributes to a logical line.
// Comments, line breaks, indentation markers and the end marker do not.
func (t Token) IsSignificant() bool {
	switch t.Kind {
	case TokenComment, TokenNewline, TokenNL, TokenIndent, TokenDedent, TokenEndMarker:
		return false
	default:
		return true
	}
}

// TokenStream is the ordered token sequence of one source file.
type TokenStream struct {
	Tokens []Token
	// Lines is the number of physical lines in the file.
	Lines int
}

// Append adds a token to the stream.
func (s *TokenStream) Append(tok Token) {
	s.Tokens = append(s.Tokens, tok)
}

// Len returns the number of tokens in the stream.
func (s *TokenStream) Len() int {
	return len(s.Tokens)
}
