// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"fmt"
	"time"
)

// EarliestBulletin is the first day the gazette was published in its
// current series. Ranges starting earlier are allowed but pointless.
var EarliestBulletin = time.Date(1961, 1, 1, 0, 0, 0, 0, time.UTC)

// DaySeq walks calendar days from start through end, inclusive, in
// ascending order. Every calendar date is visited; the publication
// calendar is not modeled.
type DaySeq struct {
	start, end time.Time
	cur        time.Time
}

// NewDaySeq builds a day sequence over [start, end]. Both bounds are
// truncated to midnight UTC. Returns an error when end precedes start.
func NewDaySeq(start, end time.Time) (*DaySeq, error) {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		return nil, fmt.Errorf("%w: %s is after %s", ErrInvalidRange, s.Format(dateLayout), e.Format(dateLayout))
	}
	return &DaySeq{start: s, end: e, cur: s}, nil
}

// Next returns the next day in the sequence, or ok=false when exhausted.
func (s *DaySeq) Next() (day time.Time, ok bool) {
	if s.cur.After(s.end) {
		return time.Time{}, false
	}
	day = s.cur
	s.cur = s.cur.AddDate(0, 0, 1)
	return day, true
}

// Reset rewinds the sequence to its start day.
func (s *DaySeq) Reset() {
	s.cur = s.start
}

// Len returns the total number of days in the sequence.
func (s *DaySeq) Len() int {
	return int(s.end.Sub(s.start)/(24*time.Hour)) + 1
}

const dateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar date. A malformed value is a
// configuration error, surfaced before any network call.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
