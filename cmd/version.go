package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version enthält die aktuelle Version von ErrorNet
// Wird beim Kompilieren via ldflags gesetzt
var Version = "0.1.0"

// BuildDate wird beim Kompilieren gesetzt (optional, via ldflags)
var BuildDate string = "unbekannt"

// GitCommit wird beim Kompilieren gesetzt (optional, via ldflags)
var GitCommit string = "unbekannt"

// versionCmd repräsentiert den version-Befehl
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Zeigt die Version von ErrorNet an",
	Long:  `Gibt Versionsinformationen über ErrorNet aus, einschließlich Version, Go-Runtime, Build-Datum und Git-Commit.
Die Go-Version hilft beim Zuordnen von Stack-Traces aus error_log.txt.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ErrorNet v%s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if BuildDate != "unbekannt" {
			fmt.Fprintf(out, "Build-Datum: %s\n", BuildDate)
		}
		if GitCommit != "unbekannt" {
			fmt.Fprintf(out, "Git-Commit: %s\n", GitCommit)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
