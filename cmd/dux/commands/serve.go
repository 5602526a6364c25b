package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duxkit/dux/web"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the product API over HTTP",
	Long: `Runs the real backend the HTTP service proxy talks to: the same
search and order routes the simulated backend answers in memory, served as
JSON over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return web.NewServer(nil).ListenAndServe(fmt.Sprintf(":%d", servePort))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
