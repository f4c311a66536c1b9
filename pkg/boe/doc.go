// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

/*
Package boe archives the daily PDF bulletin of the Spanish Official Gazette
(Boletín Oficial del Estado) into a date-partitioned directory tree.

# How it works

For every calendar day in the requested range the archiver:

  - skips the day entirely when <output>/<YYYY>/<MM>/<DD>/boe.pdf exists
  - fetches the day's JSON summary from the open-data API (a 404 means
    nothing was published that day)
  - downloads the bulletin PDF referenced by the summary and writes the
    response bytes verbatim to the date-derived path

Days are processed one at a time, in ascending order. A failed day is
counted and skipped; it never aborts the run and is never retried.

# Quick Start

	package main

	import (
		"context"
		"fmt"
		"log"
		"time"

		"github.com/opengazette/boearchiver/pkg/boe"
	)

	func main() {
		job := boe.Job{
			Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}

		cfg := boe.Settings{
			OutputDir: "./boe",
		}

		res, err := boe.Archive(context.Background(), job, cfg, func(e boe.ProgressEvent) {
			fmt.Printf("[%s] %s %s\n", e.Event, e.Date, e.Message)
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("downloaded %d, cached %d, empty %d, errors %d\n",
			res.Downloaded, res.Cached, res.NoBulletin, res.Errors)
	}

# Idempotency

Re-running the same range touches only days whose file is missing; the
existence check is the sole caching mechanism, so wiping the output tree
re-fetches everything from scratch.
*/
package boe
