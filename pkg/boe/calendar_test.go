// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaySeq_CountAndOrder(t *testing.T) {
	start := date(2024, 2, 27)
	end := date(2024, 3, 2) // crosses a leap day

	seq, err := NewDaySeq(start, end)
	if err != nil {
		t.Fatalf("NewDaySeq: %v", err)
	}

	if seq.Len() != 5 {
		t.Errorf("Expected 5 days, got %d", seq.Len())
	}

	var got []time.Time
	for d, ok := seq.Next(); ok; d, ok = seq.Next() {
		got = append(got, d)
	}

	if len(got) != 5 {
		t.Fatalf("Expected 5 days walked, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if diff := got[i].Sub(got[i-1]); diff != 24*time.Hour {
			t.Errorf("Gap between %s and %s: %v", got[i-1], got[i], diff)
		}
	}
	if !got[0].Equal(start) {
		t.Errorf("First day = %s, want %s", got[0], start)
	}
	if !got[4].Equal(end) {
		t.Errorf("Last day = %s, want %s", got[4], end)
	}
}

func TestDaySeq_SingleDay(t *testing.T) {
	d := date(2024, 3, 15)
	seq, err := NewDaySeq(d, d)
	if err != nil {
		t.Fatalf("NewDaySeq: %v", err)
	}
	if seq.Len() != 1 {
		t.Errorf("Expected 1 day, got %d", seq.Len())
	}
	if _, ok := seq.Next(); !ok {
		t.Error("Expected one day from Next")
	}
	if _, ok := seq.Next(); ok {
		t.Error("Expected sequence to be exhausted")
	}
}

func TestDaySeq_Restartable(t *testing.T) {
	seq, err := NewDaySeq(date(2024, 1, 1), date(2024, 1, 3))
	if err != nil {
		t.Fatalf("NewDaySeq: %v", err)
	}

	first := 0
	for _, ok := seq.Next(); ok; _, ok = seq.Next() {
		first++
	}
	seq.Reset()
	second := 0
	for _, ok := seq.Next(); ok; _, ok = seq.Next() {
		second++
	}

	if first != 3 || second != 3 {
		t.Errorf("Expected 3 days on both passes, got %d and %d", first, second)
	}
}

func TestDaySeq_EndBeforeStart(t *testing.T) {
	if _, err := NewDaySeq(date(2024, 3, 2), date(2024, 3, 1)); err == nil {
		t.Error("Expected error for end before start")
	}
}

func TestDaySeq_TruncatesTimeOfDay(t *testing.T) {
	start := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 1, 0, 0, time.UTC)
	seq, err := NewDaySeq(start, end)
	if err != nil {
		t.Fatalf("NewDaySeq: %v", err)
	}
	if seq.Len() != 2 {
		t.Errorf("Expected 2 days, got %d", seq.Len())
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !d.Equal(date(2024, 3, 15)) {
		t.Errorf("ParseDate = %s, want 2024-03-15", d)
	}

	for _, bad := range []string{"", "15/03/2024", "2024-13-01", "yesterday"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}
