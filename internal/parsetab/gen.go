package parsetab

import "github.com/opal-lang/lanius/internal/token"

// bracketTag canonicalizes a push kind to the tag its matching pop must
// carry, so CallLParen/GroupLParen/LParen all satisfy a plain RParen and
// IndexLBracket/ArrayLBracket/LBracket all satisfy a plain RBracket: the
// retag kernel (component H) only ever rewrites the open side, never the
// close side, of a bracket pair (spec §4.H).
func bracketTag(k token.Kind) (tag token.Kind, isOpen bool) {
	switch k {
	case token.LParen, token.CallLParen, token.GroupLParen:
		return token.LParen, true
	case token.LBracket, token.IndexLBracket, token.ArrayLBracket:
		return token.LBracket, true
	case token.LBrace:
		return token.LBrace, true
	case token.RParen:
		return token.LParen, false
	case token.RBracket:
		return token.LBracket, false
	case token.RBrace:
		return token.LBrace, false
	default:
		return token.Invalid, false
	}
}

// BuildBracketTables constructs a demo PrecomputedParseTables for the
// toy grammar's bracket-matching front end (spec §4.J "Demo LLP(1,1)
// semantics"): the action triggered by having just consumed kind `this` is
// to push a stack-change element when `this` is an opening bracket, or pop
// one when `this` is a closing bracket. The lookahead kind (`next`) is
// unused by this demo grammar; it is carried in the table's shape purely
// because the pair→action lookup is always two-dimensional (spec §3), and
// a richer grammar would key off it to disambiguate further.
//
// No emissions are produced: this front end never builds a parse tree
// (spec §1 Non-goals), so every PpLen/PpOff entry is zero.
func BuildBracketTables() *PrecomputedParseTables {
	n := int(token.NumKinds)
	t := &PrecomputedParseTables{
		NKinds:     n,
		ScOff:    make([]uint32, n*n),
		ScLen:    make([]uint32, n*n),
		PpOff:    make([]uint32, n*n),
		PpLen:    make([]uint32, n*n),
		PopTag:   make([]uint32, n*n),
		PopCount: make([]uint32, n*n),
	}

	var superseq []SCElem
	rowOff := make([]uint32, n)
	rowLen := make([]uint32, n)
	rowPopTag := make([]uint32, n)
	rowPopCount := make([]uint32, n)

	for this := token.Kind(0); int(this) < n; this++ {
		tag, isOpen := bracketTag(this)
		if tag == token.Invalid {
			continue
		}
		if isOpen {
			rowOff[this] = uint32(len(superseq))
			rowLen[this] = 1
			superseq = append(superseq, Push(tag))
		} else {
			rowPopTag[this] = uint32(tag)
			rowPopCount[this] = 1
		}
	}

	for this := token.Kind(0); int(this) < n; this++ {
		for next := token.Kind(0); int(next) < n; next++ {
			i := int(this)*n + int(next)
			t.ScOff[i] = rowOff[this]
			t.ScLen[i] = rowLen[this]
			t.PopTag[i] = rowPopTag[this]
			t.PopCount[i] = rowPopCount[this]
		}
	}
	t.ScSuperseq = superseq
	return t
}
