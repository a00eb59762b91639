package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
)

func newNewCmd(_ *rootOptions) *cobra.Command {
	var (
		out      string
		snapshot bool
		style    styleFlags
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Write an empty CV document",
		Long:  "Writes an empty CV document, or with --snapshot a snapshot that also carries customization options, ready to edit by hand or load into the server.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := types.NewCVData()

			var doc any = data
			if snapshot {
				opts, err := style.apply(types.DefaultCustomization())
				if err != nil {
					return err
				}
				doc = storage.Snapshot{CVData: data, Customization: opts, SavedAt: time.Now().UTC()}
			}

			content, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal document: %w", err)
			}
			return writeOutput(cmd, out, append(content, '\n'))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&snapshot, "snapshot", false, "Write a snapshot with customization options")
	style.register(cmd)
	return cmd
}
