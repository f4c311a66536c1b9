// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import (
	"encoding/json"
	"testing"
)

func TestSummary_DecodeArrayForm(t *testing.T) {
	raw := `{"data":{"sumario":{"diario":[
		{"sumario_diario":{"identificador":"BOE-S-2024-66","url_pdf":{"texto":"https://example.com/a.pdf"}}},
		{"sumario_diario":{"identificador":"BOE-S-2024-66-2","url_pdf":{"texto":"https://example.com/b.pdf"}}}
	]}}}`

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	got := s.Bulletins()
	if len(got) != 2 {
		t.Fatalf("Expected 2 bulletins, got %d", len(got))
	}
	if got[0].ID != "BOE-S-2024-66" || got[0].URL != "https://example.com/a.pdf" {
		t.Errorf("Unexpected first bulletin: %+v", got[0])
	}
}

func TestSummary_DecodeObjectForm(t *testing.T) {
	// Days with a single edition return "diario" as an object, not an array.
	raw := `{"data":{"sumario":{"diario":
		{"sumario_diario":{"identificador":"BOE-S-2024-67","url_pdf":{"texto":"https://example.com/c.pdf"}}}
	}}}`

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	got := s.Bulletins()
	if len(got) != 1 {
		t.Fatalf("Expected 1 bulletin, got %d", len(got))
	}
	if got[0].URL != "https://example.com/c.pdf" {
		t.Errorf("Unexpected bulletin URL: %s", got[0].URL)
	}
}

func TestSummary_SkipsEditionsWithoutPDF(t *testing.T) {
	raw := `{"data":{"sumario":{"diario":[
		{"sumario_diario":{"identificador":"BOE-S-2024-68"}},
		{"sumario_diario":{"url_pdf":{"texto":"https://example.com/d.pdf"}}}
	]}}}`

	var s Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	got := s.Bulletins()
	if len(got) != 1 {
		t.Fatalf("Expected 1 bulletin, got %d", len(got))
	}
	if got[0].ID != "unknown" {
		t.Errorf("Expected fallback ID, got %q", got[0].ID)
	}
}

func TestSummary_DecodeEmpty(t *testing.T) {
	var s Summary
	if err := json.Unmarshal([]byte(`{"data":{"sumario":{}}}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := s.Bulletins(); len(got) != 0 {
		t.Errorf("Expected no bulletins, got %d", len(got))
	}
}
