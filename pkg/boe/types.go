// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import "time"

// Job defines the span of gazette days to archive.
//
// Start is required. End defaults to today when zero. Both are calendar
// dates; any time-of-day component is ignored.
//
// Example:
//
//	job := boe.Job{
//	    Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
//	}
type Job struct {
	// Start is the first day to fetch. Required.
	Start time.Time

	// End is the last day to fetch, inclusive.
	// If zero, defaults to the current day.
	End time.Time
}

// Settings configures archive behavior.
//
// All fields have defaults; a zero Settings is usable.
type Settings struct {
	// OutputDir is the base directory for the archive tree.
	// Bulletins are saved as <OutputDir>/<YYYY>/<MM>/<DD>/boe.pdf.
	// If empty, defaults to "boe".
	OutputDir string

	// Endpoint is the base URL of the gazette open-data API.
	// If empty, defaults to DefaultEndpoint. Useful for tests and mirrors.
	Endpoint string

	// Timeout is the per-request timeout as a duration string ("60s").
	// If empty, defaults to "60s".
	Timeout string
}

// Result holds the per-run counters reported after an archive pass.
type Result struct {
	// Days is the number of calendar days in the requested range.
	Days int `json:"days"`

	// Downloaded counts bulletins fetched and written during this run.
	Downloaded int `json:"downloaded"`

	// Cached counts days skipped because the bulletin file already existed.
	Cached int `json:"cached"`

	// NoBulletin counts days for which the gazette published nothing.
	NoBulletin int `json:"noBulletin"`

	// Errors counts days that failed (transport, bad status, write error).
	// Failed days are skipped, never retried.
	Errors int `json:"errors"`
}

// ProgressEvent represents a progress update during an archive run.
//
// The Event field indicates the type:
//   - "run_start": the day loop is about to begin
//   - "day_cached": existence check hit, no network call made
//   - "day_empty": no bulletin published for this day (API 404)
//   - "day_done": bulletin downloaded and written
//   - "day_error": the day failed and was skipped
//   - "done": the run finished
type ProgressEvent struct {
	// Time is when the event occurred (UTC).
	Time time.Time `json:"time"`

	// Level is the log level: "info" (default) or "error".
	Level string `json:"level,omitempty"`

	// Event is the event type identifier.
	Event string `json:"event"`

	// Date is the gazette day in "2006-01-02" form.
	Date string `json:"date,omitempty"`

	// Path is the archive-relative path of the written file.
	Path string `json:"path,omitempty"`

	// Bytes is the size of the written bulletin, for "day_done" events.
	Bytes int64 `json:"bytes,omitempty"`

	// Message contains additional context or error details.
	Message string `json:"message,omitempty"`
}

// ProgressFunc is a callback for receiving progress events.
//
// The archive loop is sequential, so the callback is always invoked from a
// single goroutine.
type ProgressFunc func(ProgressEvent)

// DefaultSettings returns Settings with the defaults filled in.
func DefaultSettings() Settings {
	return Settings{
		OutputDir: "boe",
		Endpoint:  DefaultEndpoint,
		Timeout:   "60s",
	}
}
