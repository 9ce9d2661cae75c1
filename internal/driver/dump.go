package driver

import (
	"fmt"
	"io"

	"github.com/opal-lang/lanius/internal/lexpipe"
)

// DumpState is the Go port of the original implementation's host-side
// debug dump (original_source/src/lexer/gpu/debug.rs, debug_host.rs): it
// prints every intermediate buffer a completed lexpipe.Result carries, for
// manual inspection behind a `--dump` CLI flag (cmd/fuzz_lex,
// cmd/parse_demo). It is diagnostic only; nothing downstream parses this
// output.
func DumpState(w io.Writer, r *lexpipe.Result) {
	fmt.Fprintf(w, "f_final: %d positions\n", len(r.FFinal))
	for i, s := range r.FFinal {
		fmt.Fprintf(w, "  [%d] state=%d\n", i, s)
	}

	fmt.Fprintf(w, "bounds: %d positions\n", len(r.Bounds))
	for i, b := range r.Bounds {
		fmt.Fprintf(w, "  [%d] flags=%04b emit=%s eof=%s\n", i, b.Flags, b.EmitKind, b.EOFKind)
	}

	fmt.Fprintf(w, "s_all: %v\n", r.SAll)
	fmt.Fprintf(w, "s_kept: %v\n", r.SKept)

	fmt.Fprintf(w, "all: %d entries\n", len(r.All))
	for i, a := range r.All {
		fmt.Fprintf(w, "  [%d] end=%d\n", i, a.End)
	}

	fmt.Fprintf(w, "kept: %d entries\n", len(r.Kept))
	for i, k := range r.Kept {
		fmt.Fprintf(w, "  [%d] end=%d kind=%s all_index=%d\n", i, k.End, k.Kind, k.AllIndex)
	}

	fmt.Fprintf(w, "tokens: %d entries\n", len(r.Tokens))
	for i, t := range r.Tokens {
		fmt.Fprintf(w, "  [%d] %s\n", i, t)
	}
}
