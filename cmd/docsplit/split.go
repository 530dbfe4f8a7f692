package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/chapter"
	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/splitplan"
	"github.com/dgallion1/docsplit/internal/splitter"
)

var (
	splitMode      string
	splitValue     int
	splitPreserve  bool
	splitLang      string
	splitOutputDir string
)

var splitCmd = &cobra.Command{
	Use:   "split <file>...",
	Short: "Split documents into parts",
	Long: `Split each input document into parts named <stem>_partN. The mode
selects the unit: chars, lines, pages, paragraphs, or equal for a fixed
part count. Defaults come from the environment (SPLIT_MODE, CHARS_VALUE
and friends).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		mode := splitMode
		if mode == "" {
			mode = cfg.DefaultMode
		}
		value := splitValue
		if value == 0 {
			value = cfg.ValueFor(mode)
		}
		lang := splitLang
		if lang == "" {
			lang = cfg.Lang
		}
		preserve := splitPreserve || cfg.PreserveChapter

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		sp := splitter.New(log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		for _, path := range args {
			outputs, err := sp.Split(ctx, path, splitter.Options{
				Mode:            splitplan.Mode(mode),
				Value:           value,
				PreserveChapter: preserve,
				Lang:            chapter.Lang(lang),
				OutputDir:       splitOutputDir,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d parts\n", path, len(outputs))
			for _, out := range outputs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", out)
			}
		}
		return nil
	},
}

func init() {
	splitCmd.Flags().StringVarP(&splitMode, "mode", "m", "", "split mode: chars|lines|pages|paragraphs|equal")
	splitCmd.Flags().IntVarP(&splitValue, "value", "n", 0, "units per part, or part count for equal mode")
	splitCmd.Flags().BoolVar(&splitPreserve, "preserve-chapter", false, "keep chapter headings at part starts")
	splitCmd.Flags().StringVar(&splitLang, "lang", "", "heading grammar: cn or en")
	splitCmd.Flags().StringVarP(&splitOutputDir, "output-dir", "o", "", "directory for parts (default: input's directory)")
	rootCmd.AddCommand(splitCmd)
}
