// Package rawmetrics classifies physical lines and counts logical lines
// from the raw token stream, without touching the syntax tree.
package rawmetrics

import "github.com/Sumatoshi-tech/codegauge/pkg/syntax"

// Options control line classification.
type Options struct {
	// MultiAsComments treats standalone string statements (docstrings) as
	// comment-equivalent for every line they span.
	MultiAsComments bool
}

// Counts is the per-file line partition plus derived counts. Blank,
// CommentOnly, Multi, and Code partition the physical lines exactly.
type Counts struct {
	Total       int
	Code        int
	Blank       int
	CommentOnly int
	Multi       int
	LLOC        int
	// Comments counts physical lines carrying at least one comment token,
	// trailing comments included.
	Comments int
}

// compoundKeywords start statements whose header clause may share a line
// with the first body statement.
//
//nolint:gochecknoglobals // static lookup table.
var compoundKeywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true,
	"try": true, "except": true, "finally": true,
	"with": true, "def": true, "class": true,
	"match": true, "case": true,
}

// lineClass is the per-line candidate state before final classification.
type lineClass uint8

const (
	classBlank lineClass = iota
	classCommentOnly
	classMulti
	classCode
)

// Classify walks the token stream once and produces the full count set.
func Classify(stream *syntax.TokenStream, opts Options) Counts {
	counts := Counts{Total: stream.Lines}

	classes := make([]lineClass, stream.Lines+1)
	commentLines := make([]bool, stream.Lines+1)

	groups := splitLogicalGroups(stream)

	for _, group := range groups {
		counts.LLOC += logicalLines(group)

		target := classCode
		if opts.MultiAsComments && isStandaloneString(group) {
			target = classMulti
		}

		for _, tok := range group {
			markSpan(classes, tok.Span, target)
		}
	}

	for _, tok := range stream.Tokens {
		if tok.Kind == syntax.TokenComment {
			markComment(classes, commentLines, tok.Span)
		}
	}

	for line := 1; line <= stream.Lines; line++ {
		if commentLines[line] {
			counts.Comments++
		}

		switch classes[line] {
		case classCode:
			counts.Code++
		case classMulti:
			counts.Multi++
		case classCommentOnly:
			counts.CommentOnly++
		case classBlank:
			counts.Blank++
		}
	}

	return counts
}

// splitLogicalGroups collects the significant tokens of each logical line.
// Newline tokens terminate groups; NL breaks inside continuations do not.
func splitLogicalGroups(stream *syntax.TokenStream) [][]syntax.Token {
	var (
		groups  [][]syntax.Token
		current []syntax.Token
	)

	for _, tok := range stream.Tokens {
		switch {
		case tok.Kind == syntax.TokenNewline:
			if len(current) > 0 {
				groups = append(groups, current)
				current = nil
			}
		case tok.IsSignificant():
			current = append(current, tok)
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}

// isStandaloneString reports whether the group is a bare string statement.
func isStandaloneString(group []syntax.Token) bool {
	return len(group) == 1 && group[0].Kind == syntax.TokenString
}

// logicalLines counts the statements inside one logical group. Semicolons
// at bracket depth zero split the group; a compound header sharing its line
// with a simple statement (`if x: return 0`) counts both.
func logicalLines(group []syntax.Token) int {
	parts := splitOnSemicolons(group)

	total := 0
	for _, part := range parts {
		total += statementWeight(part)
	}

	return total
}

// splitOnSemicolons splits on `;` operators at bracket depth zero and
// drops an empty trailing part.
func splitOnSemicolons(group []syntax.Token) [][]syntax.Token {
	var (
		parts   [][]syntax.Token
		current []syntax.Token
	)

	depth := 0

	for _, tok := range group {
		if tok.Kind == syntax.TokenOperator {
			switch tok.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			case ";":
				if depth == 0 {
					parts = append(parts, current)
					current = nil

					continue
				}
			}
		}

		current = append(current, tok)
	}

	if len(current) > 0 {
		parts = append(parts, current)
	}

	return parts
}

// statementWeight is 1 per part, plus 1 when a compound header carries a
// same-line body after its depth-zero colon.
func statementWeight(part []syntax.Token) int {
	if len(part) == 0 {
		return 0
	}

	weight := 1

	first := part[0]
	if first.Kind != syntax.TokenKeyword || !compoundKeywords[first.Text] {
		return weight
	}

	depth := 0

	for idx, tok := range part {
		if tok.Kind != syntax.TokenOperator {
			continue
		}

		switch tok.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ":":
			if depth == 0 && idx < len(part)-1 {
				return weight + 1
			}
		}
	}

	return weight
}

// markSpan upgrades every line the span covers to at least target.
// Code always wins over multi so mixed lines classify as code.
func markSpan(classes []lineClass, span syntax.Span, target lineClass) {
	for line := span.StartLine; line <= span.EndLine && line < len(classes); line++ {
		if classes[line] < target {
			classes[line] = target
		}
	}
}

// markComment flags comment lines and upgrades untouched ones to
// comment-only.
func markComment(classes []lineClass, commentLines []bool, span syntax.Span) {
	for line := span.StartLine; line <= span.EndLine && line < len(classes); line++ {
		commentLines[line] = true

		if classes[line] < classCommentOnly {
			classes[line] = classCommentOnly
		}
	}
}
