package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIndexNotReady means no recomputation has ever published a bundle.
	// Distinct from "no results found".
	ErrIndexNotReady = errors.New("related-jobs index not ready")

	// ErrJobNotFound means the requested job ID is not in the current corpus.
	ErrJobNotFound = errors.New("job not found in corpus")

	// ErrTooFewJobs means a combined suggestion was requested for fewer than
	// two job IDs.
	ErrTooFewJobs = errors.New("at least two job ids are required for combined suggestions")

	// ErrEmptyQuery means a free-text ranking request carried no text.
	ErrEmptyQuery = errors.New("query text is required")
)

// UnknownJobsError reports the job IDs missing from the corpus in a combined
// suggestion request. The multi-job path fails hard on any unknown ID: an
// average over fewer rows than requested would silently corrupt the scores.
type UnknownJobsError struct {
	JobIDs []string
}

func (e *UnknownJobsError) Error() string {
	return fmt.Sprintf("unknown job ids: %s", strings.Join(e.JobIDs, ", "))
}
