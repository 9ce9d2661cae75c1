package driver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/lanius/internal/dfa"
)

// Taxonomy sentinels (spec §7): every driver-surfaced error wraps exactly
// one of these via errors.Is, so callers can switch on taxonomy without
// caring about the wrapped detail (offset, pass name, limits).
var (
	ErrLexReject        = errors.New("driver: LexReject")
	ErrLexUnterminated  = errors.New("driver: LexUnterminated")
	ErrTableCorrupt     = errors.New("driver: TableCorrupt")
	ErrDeviceInit       = errors.New("driver: DeviceInit")
	ErrDeviceValidation = errors.New("driver: DeviceValidation")
	ErrInputTooLarge    = errors.New("driver: InputTooLarge")
	ErrParseImbalanced  = errors.New("driver: ParseImbalanced")
)

// LexRejectError carries the byte offset of a LexReject and, when the
// rejecting run looks like a misspelled operator, a fuzzy-matched hint
// (SPEC_FULL.md domain stack, lithammer/fuzzysearch).
type LexRejectError struct {
	Offset int
	Hint   string // "", or "did you mean <token>?"
}

func (e *LexRejectError) Error() string {
	if e.Hint == "" {
		return fmt.Sprintf("LexReject at byte offset %d", e.Offset)
	}
	return fmt.Sprintf("LexReject at byte offset %d (%s)", e.Offset, e.Hint)
}

func (e *LexRejectError) Unwrap() error { return ErrLexReject }

// knownOperators is the set of multi-character operator spellings offered
// as LexReject hints: the grammar's (internal/dfa.BuildGrammar) two-byte
// comparison operators plus "&&" and "||", which that grammar does not
// lex as single tokens (it lexes them as two Amp or two Pipe tokens).
// Used only to generate hints, never to drive lexing itself.
var knownOperators = []string{
	"==", "!=", "<=", ">=", "&&", "||",
}

// rejectHint suggests the nearest known operator spelling for the two
// bytes starting at offset in src, when that candidate is close enough to
// be a plausible typo (edit distance via fuzzy.RankFind). Returns "" when
// no candidate is close enough to be worth suggesting.
func rejectHint(src []byte, offset int) string {
	end := offset + 2
	if end > len(src) {
		end = len(src)
	}
	if offset >= end {
		return ""
	}
	candidate := string(src[offset:end])
	ranks := fuzzy.RankFind(candidate, knownOperators)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	if ranks[0].Distance > 1 {
		return ""
	}
	return fmt.Sprintf("did you mean %q?", ranks[0].Target)
}

// newLexReject builds a LexRejectError from a GPU-pipeline or oracle
// rejection, attaching a hint when one is available.
func newLexReject(src []byte, offset int) *LexRejectError {
	return &LexRejectError{Offset: offset, Hint: rejectHint(src, offset)}
}

// LexUnterminatedError carries EOF state for LexUnterminated.
type LexUnterminatedError struct {
	State dfa.State
}

func (e *LexUnterminatedError) Error() string {
	return fmt.Sprintf("LexUnterminated: EOF in state %d", e.State)
}

func (e *LexUnterminatedError) Unwrap() error { return ErrLexUnterminated }

// TableCorruptError wraps a lower-level table-load failure (internal/dfa
// or internal/parsetab) with the taxonomy sentinel.
type TableCorruptError struct {
	Path string
	Err  error
}

func (e *TableCorruptError) Error() string {
	return fmt.Sprintf("TableCorrupt: %s: %v", e.Path, e.Err)
}

func (e *TableCorruptError) Unwrap() error { return errors.Join(ErrTableCorrupt, e.Err) }

// DeviceValidationError propagates a simulated pass failure together with
// the pass name that produced it (spec §7).
type DeviceValidationError struct {
	Pass string
	Err  error
}

func (e *DeviceValidationError) Error() string {
	return fmt.Sprintf("DeviceValidation in pass %s: %v", e.Pass, e.Err)
}

func (e *DeviceValidationError) Unwrap() error { return errors.Join(ErrDeviceValidation, e.Err) }

// InputTooLargeError reports N exceeding the configured limit.
type InputTooLargeError struct {
	N     int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("InputTooLarge: N=%d exceeds limit %d", e.N, e.Limit)
}

func (e *InputTooLargeError) Unwrap() error { return ErrInputTooLarge }
