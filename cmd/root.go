package cmd

import (
	"fmt"
	"os"

	"github.com/marwanedjibo1-droid/facturio/internal/config"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// cfg is populated by Execute before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:     "facturio",
	Short:   "Facturio - invoicing and billing management",
	Long:    "Facturio records clients, creates and tracks invoices with payments, and serves sales reports over a JSON API.",
	Version: version,
}

func Execute(c *config.Config) {
	cfg = c
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
