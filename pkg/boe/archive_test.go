// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// gazetteStub serves the summary API and the bulletin PDFs for a fixed set
// of days. Days listed in empty get a 404 summary; days in broken get a
// 500 on the PDF fetch.
type gazetteStub struct {
	srv      *httptest.Server
	requests atomic.Int64
	empty    map[string]bool
	broken   map[string]bool
}

func newGazetteStub(t *testing.T) *gazetteStub {
	t.Helper()
	g := &gazetteStub{
		empty:  map[string]bool{},
		broken: map[string]bool{},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/sumario/", func(w http.ResponseWriter, r *http.Request) {
		g.requests.Add(1)
		day := strings.TrimPrefix(r.URL.Path, "/sumario/")
		if g.empty[day] {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"data":{"sumario":{"diario":[{"sumario_diario":{"identificador":"BOE-S-%s","url_pdf":{"texto":"%s/pdf/%s"}}}]}}}`,
			day, g.srv.URL, day)
	})
	mux.HandleFunc("/pdf/", func(w http.ResponseWriter, r *http.Request) {
		g.requests.Add(1)
		day := strings.TrimPrefix(r.URL.Path, "/pdf/")
		if g.broken[day] {
			http.Error(w, "upstream unavailable", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, "%%PDF-1.4 bulletin %s", day)
	})
	g.srv = httptest.NewServer(mux)
	t.Cleanup(g.srv.Close)
	return g
}

func (g *gazetteStub) settings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		OutputDir: filepath.Join(t.TempDir(), "boe"),
		Endpoint:  g.srv.URL,
	}
}

func TestArchive_WritesBulletin(t *testing.T) {
	g := newGazetteStub(t)
	cfg := g.settings(t)
	job := Job{Start: date(2024, 3, 15), End: date(2024, 3, 15)}

	res, err := Archive(context.Background(), job, cfg, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Downloaded != 1 || res.Errors != 0 {
		t.Errorf("Unexpected result: %+v", res)
	}

	dst := filepath.Join(cfg.OutputDir, "2024", "03", "15", "boe.pdf")
	b, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Expected bulletin at %s: %v", dst, err)
	}
	if string(b) != "%PDF-1.4 bulletin 20240315" {
		t.Errorf("Bulletin bytes differ from response body: %q", b)
	}
}

func TestArchive_ExistenceCheckSkipsNetwork(t *testing.T) {
	g := newGazetteStub(t)
	cfg := g.settings(t)
	job := Job{Start: date(2024, 3, 14), End: date(2024, 3, 16)}

	if _, err := Archive(context.Background(), job, cfg, nil); err != nil {
		t.Fatalf("first run: %v", err)
	}
	before := g.requests.Load()

	res, err := Archive(context.Background(), job, cfg, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if got := g.requests.Load(); got != before {
		t.Errorf("Second run made %d network calls, want 0", got-before)
	}
	if res.Cached != 3 || res.Downloaded != 0 {
		t.Errorf("Unexpected result: %+v", res)
	}
}

func TestArchive_NoBulletinDay(t *testing.T) {
	g := newGazetteStub(t)
	g.empty["20240317"] = true // a Sunday
	cfg := g.settings(t)
	job := Job{Start: date(2024, 3, 17), End: date(2024, 3, 17)}

	res, err := Archive(context.Background(), job, cfg, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.NoBulletin != 1 || res.Errors != 0 {
		t.Errorf("Unexpected result: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "2024", "03", "17")); !os.IsNotExist(err) {
		t.Error("Expected no directory for a day without bulletin")
	}
}

func TestArchive_BadStatusLeavesNoFile(t *testing.T) {
	g := newGazetteStub(t)
	g.broken["20240318"] = true
	cfg := g.settings(t)
	job := Job{Start: date(2024, 3, 18), End: date(2024, 3, 19)}

	var errEvents int
	res, err := Archive(context.Background(), job, cfg, func(e ProgressEvent) {
		if e.Event == "day_error" {
			errEvents++
		}
	})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}

	// The failed day is skipped, the run continues.
	if res.Errors != 1 || res.Downloaded != 1 {
		t.Errorf("Unexpected result: %+v", res)
	}
	if errEvents != 1 {
		t.Errorf("Expected 1 day_error event, got %d", errEvents)
	}

	dst := filepath.Join(cfg.OutputDir, "2024", "03", "18", "boe.pdf")
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Errorf("Expected no file at %s", dst)
	}
	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Error("Expected no leftover .part file")
	}
}

func TestArchive_CleanRefetchesEverything(t *testing.T) {
	g := newGazetteStub(t)
	cfg := g.settings(t)
	job := Job{Start: date(2024, 3, 14), End: date(2024, 3, 15)}

	first, err := Archive(context.Background(), job, cfg, nil)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}

	// clean: the whole tree goes away
	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}

	second, err := Archive(context.Background(), job, cfg, nil)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Downloaded != first.Downloaded || second.Cached != 0 {
		t.Errorf("Expected full re-fetch after clean, got %+v", second)
	}
}

func TestArchive_MissingStart(t *testing.T) {
	_, err := Archive(context.Background(), Job{}, Settings{}, nil)
	if !errors.Is(err, ErrMissingStart) {
		t.Errorf("Expected ErrMissingStart, got %v", err)
	}
}

func TestArchive_EndBeforeStart(t *testing.T) {
	job := Job{Start: date(2024, 3, 2), End: date(2024, 3, 1)}
	_, err := Archive(context.Background(), job, Settings{}, nil)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("Expected ErrInvalidRange, got %v", err)
	}
}

func TestArchive_Cancellation(t *testing.T) {
	g := newGazetteStub(t)
	cfg := g.settings(t)
	job := Job{Start: date(2024, 1, 1), End: date(2024, 12, 31)}

	ctx, cancel := context.WithCancel(context.Background())
	done := 0
	_, err := Archive(ctx, job, cfg, func(e ProgressEvent) {
		if e.Event == "day_done" {
			done++
			if done == 2 {
				cancel()
			}
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if done > 3 {
		t.Errorf("Loop kept going after cancel: %d days done", done)
	}
}

func TestArchive_DefaultsEndToToday(t *testing.T) {
	g := newGazetteStub(t)
	cfg := g.settings(t)
	start := time.Now().UTC().AddDate(0, 0, -2)

	res, err := Archive(context.Background(), Job{Start: start}, cfg, nil)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if res.Days != 3 {
		t.Errorf("Expected 3 days (start through today), got %d", res.Days)
	}
}
