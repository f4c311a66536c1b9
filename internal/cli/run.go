// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opengazette/boearchiver/internal/tui"
	"github.com/opengazette/boearchiver/pkg/boe"
)

func newRunCmd(ctx context.Context, ro *RootOpts) *cobra.Command {
	cfg := &boe.Settings{}
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the bulletin for every day in the range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigDefaults(cmd, ro, cfg, &startStr); err != nil {
				return err
			}

			job, err := buildJob(startStr, endStr)
			if err != nil {
				return err
			}

			// Progress mode selection
			var progress boe.ProgressFunc
			var bar *tui.Renderer
			switch {
			case ro.JSONOut:
				progress = jsonProgress(os.Stdout)
			case ro.Quiet:
				progress = textProgress()
			default:
				end := job.End
				if end.IsZero() {
					end = time.Now()
				}
				seq, err := boe.NewDaySeq(job.Start, end)
				if err != nil {
					return err
				}
				bar = tui.NewRenderer(seq.Len())
				progress = bar.Handler()
			}

			res, err := boe.Archive(ctx, job, *cfg, progress)
			if bar != nil {
				bar.Close(res)
			} else if res != nil && !ro.JSONOut {
				printSummary(res)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&startStr, "start-date", "s", "", "First day to fetch, YYYY-MM-DD (default 1961-01-01)")
	cmd.Flags().StringVarP(&endStr, "end-date", "e", "", "Last day to fetch, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&cfg.OutputDir, "output", "o", "boe", "Destination base directory")
	cmd.Flags().StringVar(&cfg.Endpoint, "endpoint", "", "Gazette API base URL (default "+boe.DefaultEndpoint+")")
	cmd.Flags().StringVar(&cfg.Timeout, "timeout", "60s", "Per-request timeout")

	return cmd
}

// buildJob turns the date flags into a Job. A malformed date is a
// configuration error surfaced before any network call.
func buildJob(startStr, endStr string) (boe.Job, error) {
	job := boe.Job{Start: boe.EarliestBulletin}

	if startStr != "" {
		start, err := boe.ParseDate(startStr)
		if err != nil {
			return boe.Job{}, err
		}
		job.Start = start
	}
	if endStr != "" {
		end, err := boe.ParseDate(endStr)
		if err != nil {
			return boe.Job{}, err
		}
		job.End = end
	}
	return job, nil
}
