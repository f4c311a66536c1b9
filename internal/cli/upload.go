// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opengazette/boearchiver/internal/store"
)

func newUploadCmd(ctx context.Context, ro *RootOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload the archive tree to the dataset store",
		Long: `Uploads the output directory to an S3-compatible dataset store,
preserving the date-partitioned layout under the key prefix.

Credentials come from the environment only:
  AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN (optional)
  AWS_REGION, AWS_ENDPOINT_URL (optional, for S3-compatible stores)
  BOE_S3_BUCKET, BOE_S3_PREFIX`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := store.FromEnv()
			if v, _ := cmd.Flags().GetString("bucket"); v != "" {
				cfg.Bucket = v
			}
			if v, _ := cmd.Flags().GetString("prefix"); v != "" {
				cfg.Prefix = v
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if _, err := os.Stat(output); err != nil {
				return fmt.Errorf("archive directory %s: %w (run the fetch first)", output, err)
			}

			client, err := store.New(ctx, cfg)
			if err != nil {
				return err
			}

			if !ro.Quiet {
				fmt.Printf("uploading %s → s3://%s/%s (key %s)\n",
					output, cfg.Bucket, cfg.Prefix, maskToken(cfg.AccessKey))
			}

			hook := &store.ProgressHook{
				OnFile: func(key string, index, total int) {
					if !ro.Quiet {
						fmt.Printf("  [%d/%d] %s\n", index, total, key)
					}
				},
				OnDone: func(files int, bytes int64, took time.Duration) {
					fmt.Printf("uploaded %d files (%d bytes) in %s\n",
						files, bytes, took.Truncate(100*time.Millisecond))
				},
			}

			_, err = client.UploadDir(ctx, cfg, output, hook)
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "boe", "Archive directory to upload")
	cmd.Flags().String("bucket", "", "Target bucket (overrides BOE_S3_BUCKET)")
	cmd.Flags().String("prefix", "", "Key prefix (overrides BOE_S3_PREFIX)")

	return cmd
}
