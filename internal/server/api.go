// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/opengazette/boearchiver/pkg/boe"
)

// ArchiveRequest is the request body for starting an archive run.
// Note: the output path is NOT configurable via the API; the server uses
// its configured output directory.
type ArchiveRequest struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse represents a simple success message.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Handlers ---

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleStartArchive starts a new archive job.
func (s *Server) handleStartArchive(w http.ResponseWriter, r *http.Request) {
	var req ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if req.Start == "" {
		writeError(w, http.StatusBadRequest, "Missing required field: start", "")
		return
	}
	start, err := boe.ParseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err.Error())
		return
	}

	end := time.Now()
	if req.End != "" {
		end, err = boe.ParseDate(req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end date", err.Error())
			return
		}
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "Invalid range", "end date precedes start date")
		return
	}

	job, existed := s.jobs.CreateJob(start, end)
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	writeJSON(w, status, job)
}

// handleListJobs returns all jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.jobs.ListJobs())
}

// handleGetJob returns one job by ID.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	job, ok := s.jobs.GetJob(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found", id)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

// handleCancelJob cancels a queued or running job.
func (s *Server) handleCancelJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.jobs.GetJob(id); !ok {
		writeError(w, http.StatusNotFound, "Job not found", id)
		return
	}
	if !s.jobs.CancelJob(id) {
		writeError(w, http.StatusConflict, "Job is not cancellable", "already finished")
		return
	}
	writeJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: "job cancelled"})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Details: details})
}
