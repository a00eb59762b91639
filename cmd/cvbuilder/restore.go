package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/storage"
)

func newRestoreCmd(root *rootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Write the saved snapshot",
		Long:  "Reads the saved snapshot from the configured backend and writes it as JSON. A missing or unreadable snapshot is reported as no saved CV.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			snapshots, closeStore, err := openSnapshots(ctx, root)
			defer closeStore()
			if err != nil {
				return err
			}

			snap, err := snapshots.Restore(ctx)
			if errors.Is(err, storage.ErrNoSavedCV) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), storage.NoticeNoSavedCV)
				return err
			}
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), storage.NoticeLoadFailed)
				return err
			}

			content, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal snapshot: %w", err)
			}
			if err := writeOutput(cmd, out, append(content, '\n')); err != nil {
				return err
			}
			if out != "" && out != "-" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), storage.NoticeLoaded)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}
