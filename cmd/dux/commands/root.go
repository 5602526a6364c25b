package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "dux",
	Short: "dux is a typed state-dispatch runtime with swappable backends",
	Long: `dux demonstrates a state-dispatch runtime: operation groups emit
identity-tagged events through compiled binding tables into a single state
container, with all external I/O behind a swappable service proxy. The demo
application is a small product shop that can run against an in-memory
simulated backend or a real HTTP one.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(logLevel)
		if err != nil {
			return err
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Product API base URL (default: DUX_SERVER_URL env var or http://localhost:8080)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

func resolveServerURL() string {
	if serverURL != "" {
		return serverURL
	}
	if env := os.Getenv("DUX_SERVER_URL"); env != "" {
		return env
	}
	return "http://localhost:8080"
}
