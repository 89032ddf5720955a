package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ekrafft/url-check/internal/api"
	"github.com/ekrafft/url-check/internal/configuration"
)

var (
	serveBind string
	servePort string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recorded results over HTTP",
	Long: `Starts a small read-mostly HTTP server on top of the CSV results file:
GET /health, GET /api/url-check/reports and POST /api/url-check/config.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := configuration.Config.Settings.Resolve()
		if err != nil {
			log.Error().Err(err).Msg("invalid configuration")
			os.Exit(ExitErrorConfig)
		}

		server := api.NewServer(api.ServerConfig{
			Bind:        serveBind,
			Port:        servePort,
			ResultsPath: settings.OutputFile,
			ConfigPath:  configuration.Config.ConfigFile,
		})

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

		go func() {
			<-sigChan
			server.Shutdown()
		}()

		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("api server failed")
			os.Exit(ExitErrorConnection)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveBind, "bind", "127.0.0.1", "Bind address")
	serveCmd.Flags().StringVar(&servePort, "port", "8080", "Listen port")
}
