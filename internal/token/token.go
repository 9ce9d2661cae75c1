package token

import "fmt"

// Token is the materialized record produced by component I: a kept token's
// kind and its byte span in the input. Invariant: Start+Len <= N, Len >= 1.
type Token struct {
	Kind  Kind
	Start uint32
	Len   uint32
}

// End returns the exclusive end offset of the token's span.
func (t Token) End() uint32 { return t.Start + t.Len }

// Lexeme returns the slice of src covered by t. Callers must ensure src is
// the same byte stream the token was produced from.
func (t Token) Lexeme(src []byte) []byte {
	return src[t.Start:t.End()]
}

func (t Token) String() string {
	return fmt.Sprintf("%s[%d:%d]", t.Kind, t.Start, t.End())
}
