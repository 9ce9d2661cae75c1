// Command gen_tables builds the compact DFA table file (spec §6
// "LXDFA001") from the in-repo grammar and writes it to disk.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opal-lang/lanius/internal/dfa"
)

func main() {
	var (
		out      string
		watch    string
		dumpCBOR bool
	)

	rootCmd := &cobra.Command{
		Use:           "gen_tables",
		Short:         "Build the compact DFA table file from the grammar",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			if err := build(out, dumpCBOR, logger); err != nil {
				return err
			}
			if watch == "" {
				return nil
			}
			return watchAndRebuild(watch, out, dumpCBOR, logger)
		},
	}

	rootCmd.Flags().StringVarP(&out, "out", "o", "lexer.dfa", "output path for the compact DFA table")
	rootCmd.Flags().StringVar(&watch, "watch", "", "watch this file/directory and rebuild on change")
	rootCmd.Flags().BoolVar(&dumpCBOR, "dump-cbor", false, "also write a CBOR debug dump alongside the binary table")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gen_tables:", err)
		os.Exit(1)
	}
}

func build(out string, dumpCBOR bool, logger *slog.Logger) error {
	t, err := dfa.BuildGrammar()
	if err != nil {
		return fmt.Errorf("gen_tables: building grammar: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("gen_tables: creating %s: %w", out, err)
	}
	defer f.Close()

	if err := dfa.Save(f, t); err != nil {
		return fmt.Errorf("gen_tables: writing %s: %w", out, err)
	}
	logger.Info("wrote DFA table", "path", out, "states", t.NumStates)

	if dumpCBOR {
		doc, err := dfa.DumpCBOR(t)
		if err != nil {
			return fmt.Errorf("gen_tables: cbor dump: %w", err)
		}
		if err := os.WriteFile(out+".cbor", doc, 0o644); err != nil {
			return fmt.Errorf("gen_tables: writing %s.cbor: %w", out, err)
		}
		logger.Info("wrote CBOR debug dump", "path", out+".cbor")
	}
	return nil
}

// watchAndRebuild rebuilds the table file whenever watchPath changes, for
// fast grammar-iteration workflows (SPEC_FULL.md domain stack, fsnotify).
// The grammar itself is compiled into this binary (internal/dfa.BuildGrammar),
// so "change" here means the source file the operator is editing before
// recompiling and rerunning this command; the watcher's job is simply to
// shorten that edit/rebuild loop by triggering the rebuild automatically.
func watchAndRebuild(watchPath, out string, dumpCBOR bool, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gen_tables: starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(watchPath); err != nil {
		return fmt.Errorf("gen_tables: watching %s: %w", watchPath, err)
	}
	logger.Info("watching for changes", "path", watchPath)

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Info("change detected, rebuilding", "event", ev)
			if err := build(out, dumpCBOR, logger); err != nil {
				logger.Error("rebuild failed", "err", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "err", err)
		}
	}
}
