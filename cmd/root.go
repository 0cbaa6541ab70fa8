package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"errornet/pkg/crash"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// reporter ist der in PersistentPreRunE installierte Crash-Reporter
var reporter *crash.Reporter

// verboseOut nimmt die --verbose-Diagnose auf
var verboseOut io.Writer = os.Stderr

// rootCmd repräsentiert den Basis-Befehl wenn ohne Unterbefehle aufgerufen
var rootCmd = &cobra.Command{
	Use:   "errornet",
	Short: "Uncaught error reporting for Go programs",
	Long: `ErrorNet catches uncaught panics and errors, writes a crash report
to error_log.txt next to the executable and prints a short colored summary.

Features:
- One crash report, always the most recent one
- Optional report target shown to the user
- Ctrl+C passes through untouched
- Panics in goroutines are reported with the goroutine name`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: installReporter,
}

// Execute fügt alle Unterbefehle zum Root-Befehl hinzu und setzt Flags entsprechend.
// Zurückgegebene Fehler gehen an den installierten Crash-Reporter.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		crash.Fail(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Globale Flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.errornet.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "quiet output")
	rootCmd.PersistentFlags().Bool("print-title", false, "print the ErrorNet banner on startup")
	rootCmd.PersistentFlags().String("report-to", "", "where users should report errors (shown only)")
	rootCmd.PersistentFlags().Bool("error-log", true, "write crash details to error_log.txt")

	// Flags an Viper binden
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("print_title", rootCmd.PersistentFlags().Lookup("print-title"))
	viper.BindPFlag("report_to", rootCmd.PersistentFlags().Lookup("report-to"))
	viper.BindPFlag("error_log", rootCmd.PersistentFlags().Lookup("error-log"))
}

// initConfig liest Konfig-Datei und ENV-Variablen ein falls gesetzt
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".errornet")
	}

	viper.SetEnvPrefix("errornet")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && !isQuiet() {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// reporterConfig baut die Reporter-Konfiguration aus Flags, ENV und Konfig-Datei
func reporterConfig() crash.Config {
	return crash.Config{
		PrintTitle: viper.GetBool("print_title"),
		ReportTo:   strings.TrimSpace(viper.GetString("report_to")),
		ErrorLog:   viper.GetBool("error_log"),
	}
}

// installReporter erzeugt den Reporter und registriert ihn prozessweit
func installReporter(cmd *cobra.Command, args []string) error {
	r, err := crash.New(reporterConfig(), crash.WithConsole(crash.NewConsole(cmd.OutOrStdout())))
	if err != nil {
		return err
	}
	reporter = r
	crash.Install(r)

	// Bei --verbose vor der Crash-Ausgabe eine Diagnosezeile schreiben
	if viper.GetBool("verbose") {
		crash.SetTerminalResetFunc(func() {
			logVerbose("uncaught error in '%s', handing over to crash reporter", cmd.CommandPath())
		})
	}

	logVerbose("crash reporter installed, log file: %s", r.LogPath())
	return nil
}

// isQuiet checks if quiet mode is enabled
func isQuiet() bool {
	return viper.GetBool("quiet")
}

// logVerbose gibt Diagnose-Meldungen bei --verbose gedimmt auf stderr aus
func logVerbose(format string, args ...interface{}) {
	if !viper.GetBool("verbose") || isQuiet() {
		return
	}
	color.New(color.FgWhite, color.Faint).Fprintf(verboseOut, "[verbose] "+format+"\n", args...)
}
