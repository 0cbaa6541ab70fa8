package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	showPath bool
	showRaw  bool
)

// showCmd zeigt den zuletzt gespeicherten Crash-Report an
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the most recent crash report",
	Long: `Print the crash report written by the last uncaught error.

Examples:
  errornet show          # Report in a frame
  errornet show --raw    # Report exactly as stored
  errornet show --path   # Only the location of error_log.txt`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showPath, "path", false, "print only the path of the crash log")
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the report without decoration")
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if showPath {
		fmt.Fprintln(out, reporter.LogPath())
		return nil
	}

	report, err := reporter.LastReport()
	if errors.Is(err, os.ErrNotExist) {
		if !isQuiet() {
			color.New(color.FgGreen).Fprintln(out, "✅ No crash report found")
		}
		return nil
	}
	if err != nil {
		return err
	}

	if showRaw {
		fmt.Fprint(out, report)
		return nil
	}

	if !isQuiet() {
		color.New(color.FgYellow).Fprintf(out, "Crash report: %s\n", reporter.LogPath())
	}
	fmt.Fprintln(out, reportFrame.Render(report))
	return nil
}

// reportFrame rahmt den Report für die Terminal-Ausgabe ein
var reportFrame = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("3")).
	Padding(0, 1)
