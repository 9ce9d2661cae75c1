package dfa

import "github.com/opal-lang/lanius/internal/token"

// BuildGrammar constructs the streaming DFA for the toy C-like language
// named in spec §3's data model: identifiers, int/float/char/string
// literals, whitespace, line/block comments, and punctuation. It is the
// concrete instance of component A's "hand-written grammar" input; spec §1
// treats the grammar itself as an external, precomputed-table concern, but
// a runnable pipeline needs one, so it is authored here in the same
// explicit-edge style the retrieval pack's table-driven lexers use
// (grounded on _examples/other_examples' nihei9-maleeni/vartan DFA driver
// shape: dense transition rows plus a token-kind map).
//
// Retag-only kinds (CallLParen, GroupLParen, IndexLBracket, ArrayLBracket)
// never appear here: the DFA only ever produces plain LParen/LBracket; the
// retag kernel (component H) rewrites them post-hoc.
func BuildGrammar() (*Table, error) {
	b := NewBuilder()

	letters := byteRange('a', 'z')
	letters = append(letters, byteRange('A', 'Z')...)
	letters = append(letters, '_')
	digits := byteRange('0', '9')
	hexDigits := append(append(byteRange('0', '9'), byteRange('a', 'f')...), byteRange('A', 'F')...)
	hexDigits = append(hexDigits, '_')
	identCont := append(append([]byte{}, letters...), digits...)
	ws := []byte{' ', '\t', '\n', '\r'}

	// --- identifiers ---
	sIdent := b.NewState()
	b.Accept(sIdent, token.Ident)
	b.EdgeSet(Start, letters, sIdent, false)
	b.EdgeSet(sIdent, identCont, sIdent, false)

	// --- whitespace ---
	sWhite := b.NewState()
	b.Accept(sWhite, token.White)
	b.EdgeSet(Start, ws, sWhite, false)
	b.EdgeSet(sWhite, ws, sWhite, false)

	// --- / , // line comment, /* block comment ---
	sSlash := b.NewState()
	b.Accept(sSlash, token.Slash) // fallback: a lone '/' is the Slash operator
	b.Edge(Start, '/', sSlash, false)

	sLineComment := b.NewState()
	b.Accept(sLineComment, token.LineComment)
	b.Edge(sSlash, '/', sLineComment, false)
	for by := 0; by < 256; by++ {
		if by == '\n' {
			continue // left unset: default accepting-fallback closes the comment
		}
		b.Edge(sLineComment, byte(by), sLineComment, false)
	}

	sBlockComment := b.NewState() // inside /* ... */, no '*' pending
	sBlockStar := b.NewState()    // inside /* ... */, just consumed a '*'
	sBlockDone := b.NewState()    // just consumed the closing '*/'
	b.Accept(sBlockDone, token.BlockComment)
	b.Edge(sSlash, '*', sBlockComment, false)
	for by := 0; by < 256; by++ {
		if by != '*' {
			b.Edge(sBlockComment, byte(by), sBlockComment, false)
		}
	}
	b.Edge(sBlockComment, '*', sBlockStar, false)
	for by := 0; by < 256; by++ {
		switch byte(by) {
		case '*':
			b.Edge(sBlockStar, byte(by), sBlockStar, false)
		case '/':
			b.Edge(sBlockStar, byte(by), sBlockDone, false)
		default:
			b.Edge(sBlockStar, byte(by), sBlockComment, false)
		}
	}

	// --- numbers ---
	sZero := b.NewState()
	b.Accept(sZero, token.Int)
	b.EdgeSet(Start, []byte{'0'}, sZero, false)

	sIntDec := b.NewState()
	b.Accept(sIntDec, token.Int)
	b.EdgeSet(Start, byteRange('1', '9'), sIntDec, false)
	decCont := append(append([]byte{}, digits...), '_')
	b.EdgeSet(sIntDec, decCont, sIntDec, false)
	b.EdgeSet(sZero, decCont, sIntDec, false)

	sIntHexPrefix := b.NewState()
	sIntHex := b.NewState()
	b.Accept(sIntHex, token.Int)
	b.Edge(sZero, 'x', sIntHexPrefix, false)
	b.Edge(sZero, 'X', sIntHexPrefix, false)
	b.EdgeSet(sIntHexPrefix, hexDigits, sIntHex, false)
	b.EdgeSet(sIntHex, hexDigits, sIntHex, false)

	sIntBinPrefix := b.NewState()
	sIntBin := b.NewState()
	b.Accept(sIntBin, token.Int)
	binDigits := []byte{'0', '1', '_'}
	b.Edge(sZero, 'b', sIntBinPrefix, false)
	b.Edge(sZero, 'B', sIntBinPrefix, false)
	b.EdgeSet(sIntBinPrefix, binDigits, sIntBin, false)
	b.EdgeSet(sIntBin, binDigits, sIntBin, false)

	sFloatFracStart := b.NewState()
	sFloatFrac := b.NewState()
	b.Accept(sFloatFrac, token.Float)
	b.Edge(sZero, '.', sFloatFracStart, false)
	b.Edge(sIntDec, '.', sFloatFracStart, false)
	b.EdgeSet(sFloatFracStart, digits, sFloatFrac, false)
	b.EdgeSet(sFloatFrac, decCont, sFloatFrac, false)

	sFloatExpSign := b.NewState()
	sFloatExpStart := b.NewState()
	sFloatExp := b.NewState()
	b.Accept(sFloatExp, token.Float)
	for _, from := range []State{sZero, sIntDec, sFloatFrac} {
		b.Edge(from, 'e', sFloatExpSign, false)
		b.Edge(from, 'E', sFloatExpSign, false)
	}
	b.Edge(sFloatExpSign, '+', sFloatExpStart, false)
	b.Edge(sFloatExpSign, '-', sFloatExpStart, false)
	b.EdgeSet(sFloatExpSign, digits, sFloatExp, false)
	b.EdgeSet(sFloatExpStart, digits, sFloatExp, false)
	b.EdgeSet(sFloatExp, decCont, sFloatExp, false)

	// --- char literal ---
	sCharOpen := b.NewState()
	sCharEscape := b.NewState()
	sCharAwaitClose := b.NewState()
	sCharDone := b.NewState()
	b.Accept(sCharDone, token.Char)
	b.Edge(Start, '\'', sCharOpen, false)
	b.Edge(sCharOpen, '\\', sCharEscape, false)
	for by := 0; by < 256; by++ {
		if byte(by) != '\\' {
			b.Edge(sCharOpen, byte(by), sCharAwaitClose, false)
		}
	}
	for by := 0; by < 256; by++ {
		b.Edge(sCharEscape, byte(by), sCharAwaitClose, false)
	}
	b.Edge(sCharAwaitClose, '\'', sCharDone, false)

	// --- string literal ---
	sStringBody := b.NewState()
	sStringEscape := b.NewState()
	sStringDone := b.NewState()
	b.Accept(sStringDone, token.String)
	b.Edge(Start, '"', sStringBody, false)
	for by := 0; by < 256; by++ {
		switch byte(by) {
		case '"', '\\':
		default:
			b.Edge(sStringBody, byte(by), sStringBody, false)
		}
	}
	b.Edge(sStringBody, '\\', sStringEscape, false)
	for by := 0; by < 256; by++ {
		b.Edge(sStringEscape, byte(by), sStringBody, false)
	}
	b.Edge(sStringBody, '"', sStringDone, false)

	// --- single-char punctuation: Start routes straight to an accepting,
	// self-loop-free terminal state, so any following byte falls through
	// the streaming default and closes the token after exactly one byte.
	single := []struct {
		by   byte
		kind token.Kind
	}{
		{'+', token.Plus}, {'-', token.Minus}, {'*', token.Star}, {'%', token.Percent},
		{',', token.Comma}, {';', token.Semicolon}, {'.', token.Dot},
		{'(', token.LParen}, {')', token.RParen},
		{'[', token.LBracket}, {']', token.RBracket},
		{'{', token.LBrace}, {'}', token.RBrace},
		{'&', token.Amp}, {'|', token.Pipe}, {'^', token.Caret}, {'~', token.Tilde},
		{'?', token.Question}, {':', token.Colon},
	}
	for _, s := range single {
		st := b.NewState()
		b.Accept(st, s.kind)
		b.Edge(Start, s.by, st, false)
	}

	// --- two-character operators: '=' '<' '>' '!' each optionally followed
	// by '=' ---
	twoChar := []struct {
		by         byte
		single     token.Kind
		followedBy byte
		double     token.Kind
	}{
		{'=', token.Assign, '=', token.Eq},
		{'<', token.Lt, '=', token.Le},
		{'>', token.Gt, '=', token.Ge},
		{'!', token.Bang, '=', token.Ne},
	}
	for _, s := range twoChar {
		after := b.NewState()
		b.Accept(after, s.single)
		b.Edge(Start, s.by, after, false)

		done := b.NewState()
		b.Accept(done, s.double)
		b.Edge(after, s.followedBy, done, false)
	}

	return b.Build()
}

func byteRange(lo, hi byte) []byte {
	out := make([]byte, 0, int(hi-lo)+1)
	for b := lo; b <= hi; b++ {
		out = append(out, b)
	}
	return out
}
