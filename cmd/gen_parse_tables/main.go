// Command gen_parse_tables builds the precomputed LLP(1,1) parse table
// file (spec §6 "PARSETBL01") from the in-repo demo bracket grammar.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opal-lang/lanius/internal/parsetab"
)

func main() {
	var (
		out   string
		watch string
	)

	rootCmd := &cobra.Command{
		Use:           "gen_parse_tables",
		Short:         "Build the precomputed parse table file",
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			if err := build(out, logger); err != nil {
				return err
			}
			if watch == "" {
				return nil
			}
			return watchAndRebuild(watch, out, logger)
		},
	}

	rootCmd.Flags().StringVarP(&out, "out", "o", "parse.tbl", "output path for the precomputed parse table file")
	rootCmd.Flags().StringVar(&watch, "watch", "", "watch this file/directory and rebuild on change")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gen_parse_tables:", err)
		os.Exit(1)
	}
}

func build(out string, logger *slog.Logger) error {
	t := parsetab.BuildBracketTables()

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("gen_parse_tables: creating %s: %w", out, err)
	}
	defer f.Close()

	if err := parsetab.Save(f, t); err != nil {
		return fmt.Errorf("gen_parse_tables: writing %s: %w", out, err)
	}
	logger.Info("wrote parse table", "path", out, "n_kinds", t.NKinds)
	return nil
}

func watchAndRebuild(watchPath, out string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("gen_parse_tables: starting watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(watchPath); err != nil {
		return fmt.Errorf("gen_parse_tables: watching %s: %w", watchPath, err)
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
			if err := build(out, logger); err != nil {
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
