// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package boe

import "fmt"

// validate checks that the job is well-formed.
func validate(job Job) error {
	if job.Start.IsZero() {
		return ErrMissingStart
	}
	if !job.End.IsZero() && truncateDay(job.End).Before(truncateDay(job.Start)) {
		return fmt.Errorf("%w: end %s before start %s", ErrInvalidRange,
			job.End.Format(dateLayout), job.Start.Format(dateLayout))
	}
	return nil
}

// defaultString returns s if non-empty, otherwise def.
func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
