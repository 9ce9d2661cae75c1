// Command perf_one benchmarks lex throughput over a single randomly
// generated input, repeated REPS times after WARMUP untimed runs (spec
// §6). All parameters come from environment variables rather than flags,
// matching the spec's documented env-flag surface exactly.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/lexpipe"
)

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	return v == "1"
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "perf_one",
		Short:         "Benchmark lex throughput on one generated input",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			length := envInt("PERF_ONE_LEN", 1<<20)
			seed := int64(envInt("PERF_ONE_SEED", 1))
			warmup := envInt("PERF_ONE_WARMUP", 3)
			reps := envInt("PERF_ONE_REPS", 10)
			readback := envBool("PERF_ONE_READBACK", true)

			t, err := dfa.BuildGrammar()
			if err != nil {
				return fmt.Errorf("perf_one: building grammar: %w", err)
			}

			rng := rand.New(rand.NewSource(seed))
			src := make([]byte, length)
			for i := range src {
				src[i] = alphabet[rng.Intn(len(alphabet))]
			}

			run := func() (*lexpipe.Result, error) { return lexpipe.Run(src, t) }

			for i := 0; i < warmup; i++ {
				if _, err := run(); err != nil {
					return fmt.Errorf("perf_one: warmup run %d: %w", i, err)
				}
			}

			var total time.Duration
			var tokenCount int
			for i := 0; i < reps; i++ {
				start := time.Now()
				result, err := run()
				elapsed := time.Since(start)
				if err != nil {
					return fmt.Errorf("perf_one: timed run %d: %w", i, err)
				}
				total += elapsed
				if readback {
					tokenCount = len(result.Tokens)
				}
			}

			avg := total / time.Duration(reps)
			mbPerSec := float64(length) / avg.Seconds() / (1 << 20)
			fmt.Printf("len=%d reps=%d avg=%s throughput=%.2f MB/s tokens=%d readback=%v\n",
				length, reps, avg, mbPerSec, tokenCount, readback)
			return nil
		},
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "perf_one:", err)
		os.Exit(1)
	}
}

const alphabet = " \t\nabcXYZ_012.+-*/%(){}[]=<>!&|^~?:;,\"'"
