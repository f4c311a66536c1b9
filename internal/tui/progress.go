// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package tui renders archive progress as a terminal progress bar.
package tui

import (
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"

	"github.com/opengazette/boearchiver/pkg/boe"
)

const barTemplate = `{{string . "day" | cyan}} {{bar . "[" "=" ">" " " "]"}} {{counters .}} {{percent .}} {{etime .}}`

// Renderer drives a single progress bar across the day sequence.
// Errors are printed above the bar so they survive redraws.
type Renderer struct {
	bar *pb.ProgressBar
}

// NewRenderer creates a bar sized to the total number of days in the run.
func NewRenderer(totalDays int) *Renderer {
	bar := pb.ProgressBarTemplate(barTemplate).New(totalDays)
	bar.SetWriter(os.Stderr)
	bar.Set("day", "....-..-..")
	bar.Start()
	return &Renderer{bar: bar}
}

// Handler returns a ProgressFunc that feeds the bar. One increment per
// day, whatever its outcome.
func (r *Renderer) Handler() boe.ProgressFunc {
	return func(ev boe.ProgressEvent) {
		switch ev.Event {
		case "day_cached", "day_empty", "day_done":
			r.bar.Set("day", ev.Date)
			r.bar.Increment()
		case "day_error":
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", ev.Message)
			r.bar.Set("day", ev.Date)
			r.bar.Increment()
		}
	}
}

// Close finishes the bar and prints the run summary.
func (r *Renderer) Close(res *boe.Result) {
	r.bar.Finish()
	if res == nil {
		return
	}
	fmt.Printf("Downloaded: %d\nAlready cached: %d\nDays without bulletin: %d\nErrors: %d\n",
		res.Downloaded, res.Cached, res.NoBulletin, res.Errors)
}
