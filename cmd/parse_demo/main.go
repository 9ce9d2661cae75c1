// Command parse_demo lexes an input file and runs the demo bracket-match
// parse tables over the resulting kind sequence, printing the token
// stream and validator outcome (spec §6 "parse_demo: end-to-end lex+parse
// demonstration").
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/driver"
	"github.com/opal-lang/lanius/internal/parsetab"
	"github.com/opal-lang/lanius/internal/token"
)

func main() {
	var (
		dump       bool
		typedCheck bool
	)

	rootCmd := &cobra.Command{
		Use:           "parse_demo <file>",
		Short:         "Lex and parse a file, printing the token stream and bracket-match result",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, "parse_demo:", err)
				os.Exit(2)
			}

			t, err := dfa.BuildGrammar()
			if err != nil {
				return fmt.Errorf("parse_demo: building grammar: %w", err)
			}
			ctx, err := driver.NewInMemoryContext(t, parsetab.BuildBracketTables(), "lanius.yaml", nil)
			if err != nil {
				return err
			}

			timer := driver.NewPassTimer(ctx.Config.GPUTiming)
			lexed, err := ctx.Lex(src, timer)
			if err != nil {
				return err
			}
			fmt.Printf("lexed %d tokens\n", len(lexed.Tokens))
			for _, tok := range lexed.Tokens {
				fmt.Println(" ", tok)
			}

			kinds := make([]token.Kind, len(lexed.Tokens))
			for i, tok := range lexed.Tokens {
				kinds[i] = tok.Kind
			}
			parsed := ctx.Parse(kinds, parsetab.Exact, typedCheck)
			fmt.Printf("valid=%v final_depth=%d min_depth=%d\n", parsed.Valid.Valid, parsed.Valid.FinalDepth, parsed.Valid.MinDepth)

			if dump {
				driver.DumpState(os.Stderr, lexed.Pipe)
			}

			if ctx.Config.GPUTiming {
				for _, s := range timer.Spans() {
					fmt.Fprintf(os.Stderr, "pass %s: %s\n", s.Pass, s.Duration)
				}
			}

			if !parsed.Valid.Valid {
				os.Exit(1)
			}
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&dump, "dump", false, "dump every intermediate lex buffer")
	rootCmd.Flags().BoolVar(&typedCheck, "typed-check", true, "require matched brackets to carry the same kind tag")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "parse_demo:", err)
		os.Exit(1)
	}
}
