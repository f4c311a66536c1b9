// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import "encoding/json"

// Summary is the decoded day summary returned by the gazette API.
// Only the fields needed to locate the bulletin PDF are mapped.
type Summary struct {
	Data struct {
		Sumario struct {
			Diario editionList `json:"diario"`
		} `json:"sumario"`
	} `json:"data"`
}

// edition is one gazette edition within a day's summary.
type edition struct {
	Sumario struct {
		ID  string    `json:"identificador"`
		PDF textField `json:"url_pdf"`
	} `json:"sumario_diario"`
}

// textField is the API's {"texto": "..."} wrapper around scalar values.
type textField struct {
	Text string `json:"texto"`
}

// editionList tolerates the API returning "diario" as either a JSON array
// or a single object (days with one edition use the object form).
type editionList []edition

func (l *editionList) UnmarshalJSON(b []byte) error {
	var many []edition
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}
	var one edition
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	*l = editionList{one}
	return nil
}

// Bulletin is a downloadable bulletin PDF referenced by a day summary.
type Bulletin struct {
	ID  string
	URL string
}

// Bulletins returns the PDF references present in the summary. Editions
// without a PDF URL are ignored.
func (s *Summary) Bulletins() []Bulletin {
	var out []Bulletin
	for _, d := range s.Data.Sumario.Diario {
		if d.Sumario.PDF.Text == "" {
			continue
		}
		id := d.Sumario.ID
		if id == "" {
			id = "unknown"
		}
		out = append(out, Bulletin{ID: id, URL: d.Sumario.PDF.Text})
	}
	return out
}
