package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ekrafft/url-check/internal/configuration"
	"github.com/ekrafft/url-check/internal/helper"
	"github.com/ekrafft/url-check/internal/models"
	"github.com/ekrafft/url-check/internal/net"
	"github.com/ekrafft/url-check/internal/record"
	"github.com/ekrafft/url-check/internal/sweep"
	"github.com/ekrafft/url-check/internal/urllist"
)

var (
	listFile       string
	outputFile     string
	logFile        string
	method         string
	insecure       bool
	timeoutSeconds int
	showProgress   bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sweep the URL list once and record every outcome",
	Long: `The 'run' command performs one batch sweep. Each URL in the input list
is probed exactly once; failures are recorded, never fatal. Results are
appended to the CSV output, the log file and printed to the console.

Example:
  url-check run --list urls.txt --method HEAD --timeout 10`,
	Run: func(cmd *cobra.Command, args []string) {
		settings := overrideFromFlags(cmd, configuration.Config.Settings)

		settings, err := settings.Resolve()
		if err != nil {
			log.Error().Err(err).Msg("invalid configuration")
			os.Exit(ExitErrorConfig)
		}

		if err := settings.EnsureResultsDir(); err != nil {
			log.Error().Err(err).Msg("cannot prepare results directory")
			os.Exit(ExitErrorConfig)
		}

		recorder, err := record.NewRecorder(settings.OutputFile, settings.LogFile, settings.IgnoreCertErrors)
		if err != nil {
			log.Error().Err(err).Msg("cannot open output sinks")
			os.Exit(ExitErrorConfig)
		}
		defer recorder.Close()

		urls, err := urllist.Load(settings.ListFile)
		if err != nil {
			reportListFailure(recorder, settings.ListFile, err)
			os.Exit(ExitErrorInvalidArgs)
		}

		template := models.ProbeRequest{
			Method:      settings.Method,
			Timeout:     time.Duration(settings.TimeoutSeconds) * time.Second,
			InsecureTLS: settings.IgnoreCertErrors,
		}

		runID := helper.GenerateRunID()
		log.Info().
			Str("run_id", runID).
			Int("targets", len(urls)).
			Str("method", settings.Method).
			Int("timeout_s", settings.TimeoutSeconds).
			Bool("ignore_cert_errors", settings.IgnoreCertErrors).
			Msg("starting sweep")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner := sweep.NewRunner(net.NewProber(), recorder, showProgress)
		summary := runner.Run(ctx, urls, template)

		fmt.Printf("\nProcessed: %d  Success: %d  Failed: %d\n", summary.Total, summary.Succeeded, summary.Failed)
		fmt.Printf("Results: %s\n", recorder.ResultsPath())
		fmt.Printf("Log:     %s\n", recorder.LogPath())
	},
}

// overrideFromFlags layers explicitly-set flags over the loaded settings.
func overrideFromFlags(cmd *cobra.Command, s configuration.Settings) configuration.Settings {
	flags := cmd.Flags()
	if flags.Changed("list") {
		s.ListFile = listFile
	}
	if flags.Changed("output") {
		s.OutputFile = outputFile
	}
	if flags.Changed("log") {
		s.LogFile = logFile
	}
	if flags.Changed("method") {
		s.Method = method
	}
	if flags.Changed("insecure") {
		s.IgnoreCertErrors = insecure
	}
	if flags.Changed("timeout") {
		s.TimeoutSeconds = timeoutSeconds
	}
	return s
}

// reportListFailure reports a pre-loop fatal condition on both the console
// and the sweep log. A missing list additionally gets a starter template so
// the next run has something to edit.
func reportListFailure(recorder *record.Recorder, listPath string, err error) {
	recorder.LogFatal(err.Error())

	switch {
	case errors.Is(err, urllist.ErrInputNotFound):
		log.Error().Str("list", listPath).Msg("input list not found")
		if tplErr := configuration.WriteListTemplate(listPath); tplErr != nil {
			log.Warn().Err(tplErr).Msg("could not write list template")
			return
		}
		log.Info().Str("list", listPath).Msg("wrote a starter template; edit it and run again")
	case errors.Is(err, urllist.ErrNoValidURLs):
		log.Error().Str("list", listPath).Msg("input list contains no valid URLs")
	default:
		log.Error().Err(err).Msg("failed to load input list")
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&listFile, "list", "l", configuration.DefaultListFile, "Path to the URL list")
	runCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Path to the CSV results file")
	runCmd.Flags().StringVar(&logFile, "log", "", "Path to the sweep log file")
	runCmd.Flags().StringVarP(&method, "method", "m", configuration.DefaultMethod, "HTTP method (GET, HEAD or POST)")
	runCmd.Flags().BoolVarP(&insecure, "insecure", "k", false, "Skip TLS certificate validation for this batch")
	runCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", configuration.DefaultTimeoutSeconds, "Per-request timeout in seconds")
	runCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar on stderr")
}
