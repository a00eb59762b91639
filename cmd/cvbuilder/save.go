package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/storage"
)

// openSnapshots opens the configured store. The returned close function is never nil.
func openSnapshots(ctx context.Context, root *rootOptions) (*storage.Snapshots, func(), error) {
	cfg, err := root.config()
	if err != nil {
		return nil, func() {}, err
	}
	store, closeStore, err := storage.Open(ctx, storageOptions(cfg))
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open storage: %w", err)
	}
	return storage.NewSnapshots(store, root.logger(cfg, "storage")), closeStore, nil
}

func newSaveCmd(root *rootOptions) *cobra.Command {
	var (
		in        string
		clearSnap bool
		style     styleFlags
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a CV as the current snapshot",
		Long:  "Stores a CV document or snapshot in the configured backend, replacing any earlier snapshot. With --clear the snapshot is removed instead.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !clearSnap && in == "" {
				return fmt.Errorf("--in is required unless --clear is set")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			snapshots, closeStore, err := openSnapshots(ctx, root)
			defer closeStore()
			if err != nil {
				return err
			}

			if clearSnap {
				if err := snapshots.Clear(ctx); err != nil {
					return fmt.Errorf("failed to clear snapshot: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Snapshot cleared")
				return nil
			}

			data, opts, err := loadDocument(cmd, in)
			if err != nil {
				return err
			}
			if opts, err = style.apply(opts); err != nil {
				return err
			}

			snap, err := snapshots.Persist(ctx, data, opts)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), storage.NoticeSaveFailed)
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), storage.NoticeSaved)
			observability.NewPrinter(cmd.OutOrStdout()).PrintSavedAt(snap.SavedAt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON (\"-\" for stdin)")
	cmd.Flags().BoolVar(&clearSnap, "clear", false, "Remove the saved snapshot")
	style.register(cmd)
	return cmd
}
