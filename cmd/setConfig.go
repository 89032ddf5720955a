package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekrafft/url-check/internal/configuration"
)

// setConfigCmd represents the set-config command
var setConfigCmd = &cobra.Command{
	Use:   "set-config",
	Short: "Reads a JSON string, converts it to YAML, and saves it to the settings file",
	Long:  `This command takes a JSON settings document as its argument, validates it, and writes the settings file in YAML format.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := configuration.UpdateConfig(configuration.Config.ConfigFile, []byte(args[0])); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating settings: %v\n", err)
			os.Exit(ExitErrorInvalidArgs)
		}

		fmt.Printf("Settings written to %s\n", configuration.Config.ConfigFile)
	},
}

func init() {
	rootCmd.AddCommand(setConfigCmd)
}
