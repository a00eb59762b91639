package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
)

func newExportCmd(root *rootOptions) *cobra.Command {
	var (
		in         string
		out        string
		chromePath string
		timeout    time.Duration
		style      styleFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a CV to a paginated A4 PDF",
		Long:  "Renders a CV, captures it with a headless browser and slices the capture into A4 pages. The default file name is <full name>_Resume.pdf.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}

			data, opts, err := loadDocument(cmd, in)
			if err != nil {
				return err
			}
			if opts, err = style.apply(opts); err != nil {
				return err
			}

			renderer := rendering.NewRenderer()
			if cfg.TemplateFile != "" {
				if renderer, err = rendering.NewRendererFromFile(cfg.TemplateFile); err != nil {
					return fmt.Errorf("failed to load template: %w", err)
				}
			}
			if chromePath == "" {
				chromePath = cfg.ChromePath
			}
			if timeout <= 0 {
				timeout = cfg.ExportTimeoutDuration()
			}

			exporter := export.NewChromeExporter(renderer, export.ChromeOptions{
				ExecPath: chromePath,
				Timeout:  timeout,
				Logger:   root.logger(cfg, "export"),
			})

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			artifact, err := exporter.Export(ctx, data, opts)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), export.NoticeExportFailed)
				return err
			}

			if out == "" {
				out = artifact.Filename
			}
			if err := writeOutput(cmd, out, artifact.Data); err != nil {
				return err
			}
			if out != "-" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d page(s))\n", out, artifact.Pages)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON (\"-\" for stdin, required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output PDF file (default <full name>_Resume.pdf, \"-\" for stdout)")
	cmd.Flags().StringVar(&chromePath, "chrome-path", "", "Browser binary (overrides CHROME_PATH)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Export timeout (default from config, 60s)")
	style.register(cmd)
	markRequired(cmd, "in")
	return cmd
}
