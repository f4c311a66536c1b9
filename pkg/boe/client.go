// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultEndpoint is the base URL of the gazette open-data API.
// Can be overridden via Settings.Endpoint for tests or mirrors.
const DefaultEndpoint = "https://www.boe.es/datosabiertos/api/boe"

// getEndpoint returns the endpoint to use, falling back to default if empty.
func getEndpoint(endpoint string) string {
	if endpoint == "" {
		return DefaultEndpoint
	}
	return trimSlash(endpoint)
}

// buildHTTPClient creates an HTTP client with sensible defaults.
func buildHTTPClient(cfg Settings) *http.Client {
	timeout := 60 * time.Second
	if d, err := time.ParseDuration(defaultString(cfg.Timeout, "60s")); err == nil {
		timeout = d
	}
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr, Timeout: timeout}
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "boearchiver/1")
}

// summaryURL builds the summary endpoint for a day (YYYYMMDD path segment).
func summaryURL(endpoint string, day time.Time) string {
	return fmt.Sprintf("%s/sumario/%s", getEndpoint(endpoint), day.Format("20060102"))
}

// fetchSummary performs a single GET of the day's summary.
// A 404 means the gazette published nothing and is reported as
// ErrNoBulletin; any other non-200 status is an APIError.
func fetchSummary(ctx context.Context, httpc *http.Client, endpoint string, day time.Time) (*Summary, error) {
	reqURL := summaryURL(endpoint, day)
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	setHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return nil, ErrNoBulletin
	}
	if resp.StatusCode != 200 {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status, URL: reqURL}
	}

	var s Summary
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &s, nil
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
