package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the CV editor: form updates, customization, live preview, PDF export, snapshots and sharing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			srv, err := server.New(server.Config{
				Port:         cfg.Port,
				CORSOrigins:  cfg.CORSOrigins,
				Storage:      storageOptions(cfg),
				TemplateFile: cfg.TemplateFile,
				Chrome: export.ChromeOptions{
					ExecPath: cfg.ChromePath,
					Timeout:  cfg.ExportTimeoutDuration(),
				},
				ShareURL:     cfg.ShareURL,
				ShareWebhook: cfg.ShareWebhook,
				Logger:       root.logger(cfg, "server"),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			return srv.Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on (overrides PORT)")
	return cmd
}
