// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// BulletinPath returns the archive path for a day's bulletin:
// <outputDir>/<YYYY>/<MM>/<DD>/boe.pdf.
func BulletinPath(outputDir string, day time.Time) string {
	return filepath.Join(outputDir, day.Format("2006/01/02"), "boe.pdf")
}

// Archive walks the day range sequentially and downloads each day's
// bulletin into cfg.OutputDir. Skip decisions rely ONLY on the
// filesystem: a day whose target file exists is never fetched again.
//
// Failed days are counted and skipped; they never abort the run and are
// never retried. Archive returns an error only for invalid input or when
// ctx is canceled.
func Archive(ctx context.Context, job Job, cfg Settings, progress ProgressFunc) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validate(job); err != nil {
		return nil, err
	}

	// Apply defaults
	if job.End.IsZero() {
		job.End = time.Now()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "boe"
	}

	seq, err := NewDaySeq(job.Start, job.End)
	if err != nil {
		return nil, err
	}

	httpc := buildHTTPClient(cfg)

	emit := func(ev ProgressEvent) {
		if progress != nil {
			if ev.Time.IsZero() {
				ev.Time = time.Now().UTC()
			}
			progress(ev)
		}
	}

	res := &Result{Days: seq.Len()}
	emit(ProgressEvent{Event: "run_start"})

	for day, ok := seq.Next(); ok; day, ok = seq.Next() {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		date := day.Format(dateLayout)
		dst := BulletinPath(cfg.OutputDir, day)

		// Existence check: the only caching in the system.
		if _, err := os.Stat(dst); err == nil {
			res.Cached++
			emit(ProgressEvent{Event: "day_cached", Date: date, Path: dst})
			continue
		}

		summary, err := fetchSummary(ctx, httpc, cfg.Endpoint, day)
		if err != nil {
			if errors.Is(err, ErrNoBulletin) {
				res.NoBulletin++
				emit(ProgressEvent{Event: "day_empty", Date: date})
				continue
			}
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Errors++
			dayErr := &DayError{Date: date, Err: err}
			emit(ProgressEvent{Level: "error", Event: "day_error", Date: date, Message: dayErr.Error()})
			continue
		}

		bulletins := summary.Bulletins()
		if len(bulletins) == 0 {
			res.NoBulletin++
			emit(ProgressEvent{Event: "day_empty", Date: date})
			continue
		}

		// The archive keeps one file per day; the first edition's PDF is
		// the consolidated bulletin.
		n, err := downloadPDF(ctx, httpc, bulletins[0].URL, dst)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.Errors++
			dayErr := &DayError{Date: date, Err: err}
			emit(ProgressEvent{Level: "error", Event: "day_error", Date: date, Message: dayErr.Error()})
			continue
		}

		res.Downloaded++
		emit(ProgressEvent{Event: "day_done", Date: date, Path: dst, Bytes: n})
	}

	emit(ProgressEvent{Event: "done"})
	return res, nil
}

// downloadPDF performs a single GET and writes the response body verbatim
// to dst, creating intermediate directories. The body is staged in a
// ".part" file and renamed into place, so a failed day leaves no file at
// the target path.
func downloadPDF(ctx context.Context, httpc *http.Client, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, err
	}
	setHeaders(req)

	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, URL: url}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}

	tmp := dst + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	return n, os.Rename(tmp, dst)
}
