// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/opengazette/boearchiver/pkg/boe"
)

// JobStatus represents the state of an archive job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job represents one archive run over a date range.
type Job struct {
	ID        string      `json:"id"`
	Start     string      `json:"start"`
	End       string      `json:"end"`
	OutputDir string      `json:"outputDir"`
	Status    JobStatus   `json:"status"`
	Progress  JobProgress `json:"progress"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	StartedAt *time.Time  `json:"startedAt,omitempty"`
	EndedAt   *time.Time  `json:"endedAt,omitempty"`

	cancel context.CancelFunc
}

// JobProgress holds the running counters for a job.
type JobProgress struct {
	TotalDays  int `json:"totalDays"`
	Processed  int `json:"processed"`
	Downloaded int `json:"downloaded"`
	Cached     int `json:"cached"`
	NoBulletin int `json:"noBulletin"`
	Errors     int `json:"errors"`
}

// JobManager manages archive jobs.
type JobManager struct {
	mu     sync.RWMutex
	jobs   map[string]*Job
	config Config
	wsHub  *WSHub
}

// NewJobManager creates a new job manager.
func NewJobManager(cfg Config, wsHub *WSHub) *JobManager {
	return &JobManager{
		jobs:   make(map[string]*Job),
		config: cfg,
		wsHub:  wsHub,
	}
}

// CreateJob starts a new archive run. If an identical range is already
// queued or running, the existing job is returned instead.
func (m *JobManager) CreateJob(start, end time.Time) (*Job, bool) {
	startStr := start.Format("2006-01-02")
	endStr := end.Format("2006-01-02")

	m.mu.Lock()
	for _, existing := range m.jobs {
		if existing.Start == startStr && existing.End == endStr &&
			(existing.Status == JobStatusQueued || existing.Status == JobStatusRunning) {
			m.mu.Unlock()
			return existing, true
		}
	}

	job := &Job{
		ID:        uuid.NewString(),
		Start:     startStr,
		End:       endStr,
		OutputDir: m.config.OutputDir, // server-controlled, not from request
		Status:    JobStatusQueued,
		CreatedAt: time.Now(),
	}
	m.jobs[job.ID] = job
	m.mu.Unlock()

	go m.runJob(job, start, end)
	return job, false
}

// GetJob retrieves a job by ID.
func (m *JobManager) GetJob(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	return job, ok
}

// ListJobs returns all jobs.
func (m *JobManager) ListJobs() []*Job {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// CancelJob cancels a queued or running job.
func (m *JobManager) CancelJob(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return false
	}

	if job.Status == JobStatusQueued || job.Status == JobStatusRunning {
		if job.cancel != nil {
			job.cancel()
		}
		job.Status = JobStatusCancelled
		now := time.Now()
		job.EndedAt = &now
		m.notify(job)
		return true
	}
	return false
}

func (m *JobManager) notify(job *Job) {
	if m.wsHub != nil {
		m.wsHub.BroadcastJob(job)
	}
}

// runJob executes the archive run.
func (m *JobManager) runJob(job *Job, start, end time.Time) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m.mu.Lock()
	if job.Status == JobStatusCancelled {
		// cancelled before the goroutine got scheduled
		m.mu.Unlock()
		return
	}
	job.cancel = cancel
	job.Status = JobStatusRunning
	now := time.Now()
	job.StartedAt = &now
	m.mu.Unlock()
	m.notify(job)

	archJob := boe.Job{Start: start, End: end}
	settings := boe.Settings{
		OutputDir: m.config.OutputDir,
		Endpoint:  m.config.Endpoint,
		Timeout:   m.config.Timeout,
	}

	// Counters update under the manager lock; notify AFTER unlocking.
	progress := func(ev boe.ProgressEvent) {
		m.mu.Lock()
		switch ev.Event {
		case "run_start":
			// handled via TotalDays below
		case "day_cached":
			job.Progress.Processed++
			job.Progress.Cached++
		case "day_empty":
			job.Progress.Processed++
			job.Progress.NoBulletin++
		case "day_done":
			job.Progress.Processed++
			job.Progress.Downloaded++
		case "day_error":
			job.Progress.Processed++
			job.Progress.Errors++
		}
		m.mu.Unlock()
		m.notify(job)
	}

	if seq, err := boe.NewDaySeq(start, end); err == nil {
		m.mu.Lock()
		job.Progress.TotalDays = seq.Len()
		m.mu.Unlock()
	}

	_, err := boe.Archive(ctx, archJob, settings, progress)

	m.mu.Lock()
	endTime := time.Now()
	job.EndedAt = &endTime
	if ctx.Err() != nil {
		job.Status = JobStatusCancelled
	} else if err != nil {
		job.Status = JobStatusFailed
		job.Error = err.Error()
	} else {
		job.Status = JobStatusCompleted
	}
	m.mu.Unlock()
	m.notify(job)
}
