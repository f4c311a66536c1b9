// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"errors"
	"fmt"
)

// Common errors returned by the library.
var (
	// ErrMissingStart is returned when a job has no start date.
	ErrMissingStart = errors.New("missing start date")

	// ErrInvalidRange is returned when the end date precedes the start date.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrNoBulletin is returned when the gazette published nothing for a
	// day. It is a normal outcome, not a failure.
	ErrNoBulletin = errors.New("no bulletin published")
)

// DayError wraps an error with the gazette day it belongs to.
type DayError struct {
	Date string
	Err  error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("day %s: %v", e.Date, e.Err)
}

func (e *DayError) Unwrap() error {
	return e.Err
}

// APIError represents a non-success response from the gazette API or the
// PDF host.
type APIError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s (%s)", e.StatusCode, e.Status, e.URL)
}
