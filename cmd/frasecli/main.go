package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bmoreira/frasecli/internal/config"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "frasecli",
	Short: "frasecli - terminal client for the phrase server",
	Long: `frasecli is a terminal client for a phrase server.

On startup it probes the configured backend and picks the richest UI the
environment supports: the server's embedded view when the backend is
reachable and the terminal allows it, a native browser otherwise, or an
offline retry screen when the server cannot be reached.

Global hotkeys type the selected phrase into whatever window has focus,
and a local cache keeps browsing alive across network hiccups.

Examples:
  frasecli                               # Use the configured server
  frasecli --server http://lan-host:8080 # Override the backend for this run
  frasecli --help                        # Show help`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runClient()
	},
}

var (
	flagServer string
)

func init() {
	rootCmd.Flags().StringVarP(&flagServer, "server", "s", "", "Backend server URL (overrides config and FRASECLI_SERVER)")
}
