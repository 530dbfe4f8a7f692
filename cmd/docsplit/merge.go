package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/config"
	"github.com/dgallion1/docsplit/internal/merger"
)

var (
	mergeOutput        string
	mergeNoFallback    bool
	mergeMaxDivergence float64
)

var mergeCmd = &cobra.Command{
	Use:   "merge <file>...",
	Short: "Merge documents of one format into a single file",
	Long: `Merge the inputs, in argument order, into the output file. All
inputs must share one format. PDF merges try to keep the union of the
source bookmark trees; when a strategy fails the merge degrades to a
weaker one unless --no-fallback is set.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mergeOutput == "" {
			return fmt.Errorf("--output is required")
		}

		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		opts := merger.Options{
			TryFallback:   cfg.MergeTryFallback && !mergeNoFallback,
			MaxDivergence: cfg.MergeMaxDivergence,
		}
		if cmd.Flags().Changed("max-divergence") {
			opts.MaxDivergence = mergeMaxDivergence
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))
		mg := merger.New(log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, err := mg.Merge(ctx, args, mergeOutput, opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "merged %d files -> %s\n", len(args), res.OutputPath)
		if res.Tier != merger.TierNone {
			fmt.Fprintf(cmd.OutOrStdout(), "strategy: %s, bookmarks: %d/%d\n",
				res.Tier, res.ActualBookmarks, res.ExpectedBookmarks)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "output file path (required)")
	mergeCmd.Flags().BoolVar(&mergeNoFallback, "no-fallback", false, "fail instead of degrading to a weaker merge strategy")
	mergeCmd.Flags().Float64Var(&mergeMaxDivergence, "max-divergence", 0, "escalate when bookmark counts diverge by more than this fraction")
	rootCmd.AddCommand(mergeCmd)
}
