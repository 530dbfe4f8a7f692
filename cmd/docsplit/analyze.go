package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dgallion1/docsplit/internal/analyzer"
)

var (
	// titleStyle for the report header
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	// dimStyle for column headings and totals
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// errorStyle for per-file failures
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the report border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Report character and page counts per file",
	Long: `Analyze each file and report its character count, and its page count
for paginated formats. Word page counts are estimated at 2000 characters
per page. Unreadable files are reported and skipped.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos := analyzer.Analyze(args)

		var b strings.Builder
		b.WriteString(titleStyle.Render("Document Analysis"))
		b.WriteString("\n\n")
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%-40s %12s %8s", "File", "Chars", "Pages")))

		totalChars := 0
		for _, info := range infos {
			if info.Err != nil {
				fmt.Fprintf(&b, "%-40s %s\n", truncate(info.Name, 40), errorStyle.Render(info.Err.Error()))
				continue
			}
			pages := "-"
			if info.PageCount > 0 {
				pages = fmt.Sprintf("%d", info.PageCount)
			}
			fmt.Fprintf(&b, "%-40s %12d %8s\n", truncate(info.Name, 40), info.CharCount, pages)
			totalChars += info.CharCount
		}

		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d files, %d chars", dimStyle.Render("Total:"), len(infos), totalChars)

		fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(b.String()))
		return nil
	},
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
