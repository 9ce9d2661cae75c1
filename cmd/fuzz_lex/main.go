// Command fuzz_lex generates random inputs, runs them through both the
// GPU-simulated pipeline and the CPU oracle, and reports any divergence
// (spec §6, testable property 1: "GPU ≡ CPU oracle"). Exit 0 on match for
// every generated input, 1 on the first divergence.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/driver"
	"github.com/opal-lang/lanius/internal/lexpipe"
	"github.com/opal-lang/lanius/internal/token"
)

// alphabet is a conservative subset of bytes the grammar (internal/dfa.
// BuildGrammar) recognizes cleanly, biased toward producing valid runs
// rather than immediate LexReject, which is what this command's
// GPU-vs-oracle comparison actually exercises.
const alphabet = " \t\nabcXYZ_012.+-*/%(){}[]=<>!&|^~?:;,\"'"

func main() {
	var (
		n       int
		minLen  int
		maxLen  int
		seed    int64
		dump    bool
		recount bool
	)

	rootCmd := &cobra.Command{
		Use:           "fuzz_lex",
		Short:         "Compare the GPU-simulated lexer against the CPU oracle on random input",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			t, err := dfa.BuildGrammar()
			if err != nil {
				return fmt.Errorf("fuzz_lex: building grammar: %w", err)
			}
			oracle := dfa.NewOracle(t)
			rng := rand.New(rand.NewSource(seed))

			for i := 0; i < n; i++ {
				src := randomInput(rng, minLen, maxLen)

				oracleToks, oracleErr := oracle.Lex(src)
				result, pipeErr := lexpipe.Run(src, t)

				if mismatch := compareOutcomes(oracleToks, oracleErr, result, pipeErr); mismatch != "" {
					logger.Error("divergence found", "iter", i, "input", string(src), "detail", mismatch)
					if dump && result != nil {
						driver.DumpState(os.Stderr, result)
					}
					return fmt.Errorf("fuzz_lex: divergence after %d iterations", i)
				}

				if recount && pipeErr == nil {
					if err := lexpipe.RecountCompact(result); err != nil {
						logger.Error("recount mismatch", "iter", i, "input", string(src), "err", err)
						return err
					}
				}
			}
			logger.Info("no divergence found", "iterations", n)
			return nil
		},
	}

	rootCmd.Flags().IntVar(&n, "n", 1000, "number of random inputs to generate")
	rootCmd.Flags().IntVar(&minLen, "min-len", 0, "minimum generated input length")
	rootCmd.Flags().IntVar(&maxLen, "max-len", 64, "maximum generated input length")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "PRNG seed")
	rootCmd.Flags().BoolVar(&dump, "dump", false, "dump every intermediate buffer on divergence")
	rootCmd.Flags().BoolVar(&recount, "recount", true, "cross-check ALL/KEPT counts on every successful lex")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fuzz_lex:", err)
		os.Exit(1)
	}
}

func randomInput(rng *rand.Rand, minLen, maxLen int) []byte {
	n := minLen
	if maxLen > minLen {
		n += rng.Intn(maxLen - minLen + 1)
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return out
}

// compareOutcomes returns "" when the oracle and GPU-simulated pipeline
// agree, or a description of the mismatch otherwise. Both error taxonomies
// (internal/dfa.RejectError/UnterminatedError vs.
// internal/lexpipe.RejectError/UnterminatedError) must agree on failure
// kind, and a reject must also agree on offset (an unterminated error is
// compared by kind only); on success the token slices must match exactly.
func compareOutcomes(oracleToks []token.Token, oracleErr error, result *lexpipe.Result, pipeErr error) string {
	switch oe := oracleErr.(type) {
	case nil:
		if pipeErr != nil {
			return fmt.Sprintf("oracle succeeded but pipeline errored: %v", pipeErr)
		}
		if diff := cmp.Diff(oracleToks, result.Tokens); diff != "" {
			return "token stream mismatch (-oracle +pipeline):\n" + diff
		}
		return ""
	case *dfa.RejectError:
		pe, ok := pipeErr.(*lexpipe.RejectError)
		if !ok {
			return fmt.Sprintf("oracle rejected at %d but pipeline returned %v", oe.Offset, pipeErr)
		}
		if pe.Offset != oe.Offset {
			return fmt.Sprintf("reject offset mismatch: oracle=%d pipeline=%d", oe.Offset, pe.Offset)
		}
		return ""
	case *dfa.UnterminatedError:
		if _, ok := pipeErr.(*lexpipe.UnterminatedError); !ok {
			return fmt.Sprintf("oracle reported unterminated but pipeline returned %v", pipeErr)
		}
		return ""
	default:
		return fmt.Sprintf("unexpected oracle error type: %v", oracleErr)
	}
}
