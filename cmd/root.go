package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ekrafft/url-check/internal/configuration"
	applog "github.com/ekrafft/url-check/pkg/log"
)

const VERSION = "1.3.0"

var (
	resultsDir string
	logLevel   string
	appLogFile string
)

// Constants for exit codes
const (
	ExitSuccess          = 0
	ExitErrorInvalidArgs = 1
	ExitErrorConnection  = 2
	ExitErrorConfig      = 3
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "url-check",
	Short: "Probe a list of URLs over HTTP(S) and record the results",
	Long: `A command-line tool that sweeps a plain-text list of URLs, issuing one
HTTP request per target under a bounded timeout, and records every outcome
to a CSV results file, a log file and the console.

Usage: url-check [--config=path/to/url-check.yml] run`,
	Args:    cobra.NoArgs,
	Version: VERSION,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		applog.Init(appLogFile)
		applog.SetLevel(logLevel)

		settings, err := configuration.Load(configuration.Config.ConfigFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("results-dir") {
			settings.ResultsDir = resultsDir
		}
		configuration.Config.Settings = settings

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(ExitErrorInvalidArgs)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configuration.Config.ConfigFile, "config", "c", configuration.DefaultConfigFile, "Path to settings file")
	rootCmd.PersistentFlags().StringVar(&resultsDir, "results-dir", configuration.DefaultResultsDir, "Directory for the CSV and log sinks")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Console log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&appLogFile, "app-log", "", "Mirror console log output to this file")
}
