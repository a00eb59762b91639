// Package main provides the entry point for the CV builder CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cvbuilder",
		Short:         "CV builder",
		Long:          "Edit a CV document, preview it with one of four templates, export it to a paginated A4 PDF, and save or share it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&root.configPath, "config", "", "Path to JSON config file")
	cmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCmd(root),
		newNewCmd(root),
		newRenderCmd(root),
		newExportCmd(root),
		newValidateCmd(root),
		newInspectCmd(root),
		newSaveCmd(root),
		newRestoreCmd(root),
		newShareCmd(root),
		newPresetsCmd(),
	)
	return cmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
