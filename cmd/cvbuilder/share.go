package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-builder/internal/share"
)

func newShareCmd(root *rootOptions) *cobra.Command {
	var (
		in      string
		url     string
		webhook string
	)

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a link to a CV",
		Long:  "Posts the share payload to the configured webhook, or copies the link to the clipboard when no webhook is available.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}
			if url == "" {
				url = cfg.ShareURL
			}
			if webhook == "" {
				webhook = cfg.ShareWebhook
			}

			var fullName string
			if in != "" {
				data, _, err := loadDocument(cmd, in)
				if err != nil {
					return err
				}
				fullName = data.PersonalInfo.FullName
			}

			var native share.NativeSharer
			if webhook != "" {
				native = share.NewWebhookSharer(webhook)
			}
			sharer := share.NewSharer(native, share.SystemClipboard{}, root.logger(cfg, "share"))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			result := sharer.Share(ctx, share.NewPayload(fullName, url))
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), result.Notice)
			if !result.OK {
				return errors.New("share failed")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "CV document or snapshot JSON used for the share title")
	cmd.Flags().StringVar(&url, "url", "", "URL to share (overrides SHARE_URL)")
	cmd.Flags().StringVar(&webhook, "webhook", "", "Share target endpoint (overrides SHARE_WEBHOOK)")
	return cmd
}
