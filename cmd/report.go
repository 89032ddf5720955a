package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekrafft/url-check/internal/configuration"
	"github.com/ekrafft/url-check/internal/models"
	"github.com/ekrafft/url-check/internal/record"
)

var (
	reportURL   string
	reportLimit int
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a JSON report from recorded results",
	Long: `Generate a JSON report from the CSV results file.

Without a URL flag, it reports every recorded row.
With a URL flag, it reports only rows for the specified target.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := configuration.Config.Settings.Resolve()
		if err != nil {
			models.Response{
				Message: "invalid configuration: " + err.Error(),
			}.Print()
			os.Exit(ExitErrorConfig)
		}

		rows, err := record.ReadResults(settings.OutputFile)
		if err != nil {
			models.Response{
				Message: "failed to read results: " + err.Error(),
			}.Print()
			os.Exit(ExitErrorConnection)
		}

		if reportURL != "" {
			filtered := rows[:0:0]
			for _, row := range rows {
				if row.URL == reportURL {
					filtered = append(filtered, row)
				}
			}
			rows = filtered
		}

		if reportLimit > 0 && len(rows) > reportLimit {
			rows = rows[len(rows)-reportLimit:]
		}

		output, err := json.Marshal(rows)
		if err != nil {
			models.Response{
				Message: "Error while serializing output",
			}.Print()
			os.Exit(ExitErrorInvalidArgs)
		}

		fmt.Print(string(output))
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVarP(&reportURL, "url", "u", "", "Report only this URL")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 0, "Keep only the most recent N rows")
}
