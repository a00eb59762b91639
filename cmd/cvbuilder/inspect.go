package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
)

func newInspectCmd(_ *rootOptions) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize a CV document",
		Long:  "Prints a boxed summary of a CV document or snapshot: personal details, entries per section, grouped skills and customization.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, opts, err := loadDocument(cmd, in)
			if err != nil {
				return err
			}
			p := observability.NewPrinter(cmd.OutOrStdout())
			p.PrintCV(data)
			p.PrintSkills(data.Skills)
			p.PrintCustomization(opts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON (\"-\" for stdin, required)")
	markRequired(cmd, "in")
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List colour presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			observability.NewPrinter(cmd.OutOrStdout()).PrintPresets()
		},
	}
}
