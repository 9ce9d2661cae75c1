// Package token holds the data model shared by every pass of the lex/parse
// pipeline: token kinds and the materialized token record (spec §3).
package token

// Kind is a dense small integer tag identifying a token's lexical category.
// Values are assigned so that the whole set fits comfortably in 16 bits and
// the Invalid sentinel can be represented out-of-band as 0xFFFF in packed
// tables (see internal/dfa).
type Kind int16

// Invalid marks a non-accepting DFA state; it never appears in a
// materialized token.
const Invalid Kind = -1

const (
	Ident Kind = iota
	Int
	Float
	Char
	String

	// Skip kinds: they produce ALL boundaries but never KEPT boundaries.
	White
	LineComment
	BlockComment

	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	Bang
	Ne
	Lt
	Gt
	Le
	Ge
	Amp
	Pipe
	Caret
	Tilde
	Question
	Colon
	Comma
	Semicolon
	Dot

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	// Retagged variants produced by the retag kernel (component H); they
	// never come out of the DFA directly.
	CallLParen
	GroupLParen
	IndexLBracket
	ArrayLBracket

	// EOF is a synthetic sentinel appended as the final element of a kind
	// sequence before it is fed to the LLP pair→action table (component J):
	// with N real tokens there are only N-1 adjacent pairs, which leaves
	// the very last token without a pair to trigger its own action (e.g. a
	// lone unmatched "(" would never push). Appending EOF turns the last
	// real token into the "this" side of one final pair, so every real
	// token participates in exactly one action lookup. It never appears in
	// a materialized Token.
	EOF

	// NumKinds is the grid side for the LLP pair→action table (n_kinds).
	NumKinds
)

var names = [NumKinds]string{
	Ident: "Ident", Int: "Int", Float: "Float", Char: "Char", String: "String",
	White: "White", LineComment: "LineComment", BlockComment: "BlockComment",
	Plus: "Plus", Minus: "Minus", Star: "Star", Slash: "Slash", Percent: "Percent",
	Assign: "Assign", Eq: "Eq", Bang: "Bang", Ne: "Ne",
	Lt: "Lt", Gt: "Gt", Le: "Le", Ge: "Ge",
	Amp: "Amp", Pipe: "Pipe", Caret: "Caret", Tilde: "Tilde",
	Question: "Question", Colon: "Colon", Comma: "Comma", Semicolon: "Semicolon", Dot: "Dot",
	LParen: "LParen", RParen: "RParen", LBracket: "LBracket", RBracket: "RBracket",
	LBrace: "LBrace", RBrace: "RBrace",
	CallLParen: "CallLParen", GroupLParen: "GroupLParen",
	IndexLBracket: "IndexLBracket", ArrayLBracket: "ArrayLBracket",
	EOF: "EOF",
}

// String implements fmt.Stringer for diagnostics and golden-file dumps.
func (k Kind) String() string {
	if k == Invalid {
		return "Invalid"
	}
	if k < 0 || int(k) >= len(names) || names[k] == "" {
		return "Kind(?)"
	}
	return names[k]
}

// IsSkip reports whether k is a skip kind (White, LineComment, BlockComment):
// it closes an ALL boundary but never a KEPT one.
func (k Kind) IsSkip() bool {
	return k == White || k == LineComment || k == BlockComment
}

// EndsPrimary reports whether a kept token of kind k can terminate a primary
// expression, which is what the retag kernel (component H) consults to
// disambiguate LParen→Call/Group and LBracket→Index/Array (spec §4.H:
// Ident | Int | RParen | RBracket | RBrace | String).
func (k Kind) EndsPrimary() bool {
	switch k {
	case Ident, Int, String, RParen, RBracket, RBrace:
		return true
	default:
		return false
	}
}
