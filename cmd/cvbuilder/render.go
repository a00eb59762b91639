package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/rendering"
)

func newRenderCmd(root *rootOptions) *cobra.Command {
	var (
		in           string
		out          string
		templateFile string
		style        styleFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a CV to HTML",
		Long:  "Renders a CV document or snapshot with the selected template, producing the same HTML the live preview shows.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			log := root.logger(cfg, "render")

			data, opts, err := loadDocument(cmd, in)
			if err != nil {
				return err
			}
			if opts, err = style.apply(opts); err != nil {
				return err
			}

			if templateFile == "" {
				templateFile = cfg.TemplateFile
			}
			renderer := rendering.NewRenderer()
			if templateFile != "" {
				if renderer, err = rendering.NewRendererFromFile(templateFile); err != nil {
					return fmt.Errorf("failed to load template: %w", err)
				}
			}

			html, err := renderer.Render(data, opts)
			if err != nil {
				return err
			}
			log.Debug().
				Str("template", string(rendering.ResolveVariant(opts.Template))).
				Int("bytes", len(html)).
				Msg("rendered CV")
			return writeOutput(cmd, out, []byte(html))
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON (\"-\" for stdin, required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output HTML file (default stdout)")
	cmd.Flags().StringVar(&templateFile, "template-file", "", "Custom HTML template defining \"cv\"")
	style.register(cmd)
	markRequired(cmd, "in")
	return cmd
}
