package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsplit",
	Short: "Split and merge PDF, Word, text and Markdown documents",
	Long: `docsplit divides documents into parts by characters, lines, pages,
paragraphs or into a fixed number of equal pieces, optionally keeping
chapter headings at part starts. It also merges parts back together,
preserving PDF bookmarks where the sources allow it.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
