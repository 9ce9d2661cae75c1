package lexpipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/opal-lang/lanius/internal/dfa"
)

// TestGPUEqualsOracle is testable property 1 (spec §8): for every input,
// the GPU-simulated pipeline's token stream must match the CPU oracle's,
// exactly.
func TestGPUEqualsOracle(t *testing.T) {
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	oracle := dfa.NewOracle(table)

	inputs := []string{
		"",
		"x",
		"foo bar baz",
		"f(x)[0]",
		`"a string" 'c' 123 0x1F 0b101 3.14 1e10`,
		"a+b-c*d/e%f",
		"a==b!=c<=d>=e<f>g",
		"x // line comment\ny /* block\ncomment */ z",
		"((()))",
		"[[[]]]",
		"a.b.c,d;e:f?g",
	}

	for _, in := range inputs {
		oracleToks, oracleErr := oracle.Lex([]byte(in))
		result, pipeErr := Run([]byte(in), table)

		if (oracleErr == nil) != (pipeErr == nil) {
			t.Errorf("input %q: oracle err=%v, pipeline err=%v", in, oracleErr, pipeErr)
			continue
		}
		if oracleErr != nil {
			continue
		}
		if diff := cmp.Diff(oracleToks, result.Tokens); diff != "" {
			t.Errorf("input %q: token mismatch (-oracle +pipeline):\n%s", in, diff)
		}
	}
}

func TestRunRejectMatchesOracle(t *testing.T) {
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	oracle := dfa.NewOracle(table)

	in := "x @ y"
	_, oracleErr := oracle.Lex([]byte(in))
	oe, ok := oracleErr.(*dfa.RejectError)
	if !ok {
		t.Fatalf("oracle error type = %T, want *dfa.RejectError", oracleErr)
	}

	_, pipeErr := Run([]byte(in), table)
	pe, ok := pipeErr.(*RejectError)
	if !ok {
		t.Fatalf("pipeline error type = %T, want *RejectError", pipeErr)
	}
	if pe.Offset != oe.Offset {
		t.Errorf("pipeline reject offset = %d, want %d", pe.Offset, oe.Offset)
	}
}

func TestRunUnterminatedMatchesOracle(t *testing.T) {
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	_, pipeErr := Run([]byte(`"never closed`), table)
	if _, ok := pipeErr.(*UnterminatedError); !ok {
		t.Fatalf("pipeline error type = %T, want *UnterminatedError", pipeErr)
	}
}

func TestRunEmptyInput(t *testing.T) {
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	result, err := Run(nil, table)
	if err != nil {
		t.Fatalf("Run(nil) error: %v", err)
	}
	if len(result.Tokens) != 0 {
		t.Errorf("Run(nil).Tokens = %v, want empty", result.Tokens)
	}
}

// TestMaterializeStartRecovery exercises the "recover start from the
// preceding ALL end" trick directly on a multi-token input: each kept
// token's Start must match where the oracle would have started it.
func TestMaterializeStartRecovery(t *testing.T) {
	table, err := dfa.BuildGrammar()
	if err != nil {
		t.Fatalf("BuildGrammar() error: %v", err)
	}
	result, err := Run([]byte("foo   bar"), table)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(result.Tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(result.Tokens), result.Tokens)
	}
	if result.Tokens[0].Start != 0 || result.Tokens[0].Len != 3 {
		t.Errorf("first token = %+v, want Start=0 Len=3", result.Tokens[0])
	}
	if result.Tokens[1].Start != 6 || result.Tokens[1].Len != 3 {
		t.Errorf("second token = %+v, want Start=6 Len=3", result.Tokens[1])
	}
}
