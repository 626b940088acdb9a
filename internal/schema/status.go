package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JobStatus is the lifecycle state of a job as reported by the API.
type JobStatus string

const (
	StatusPending    JobStatus = "PENDING"
	StatusInProgress JobStatus = "IN_PROGRESS"
	StatusFinished   JobStatus = "FINISHED"
	StatusError      JobStatus = "ERROR"
	StatusCanceled   JobStatus = "CANCELED"
)

// JobStatuses lists all states in lifecycle order.
func JobStatuses() []JobStatus {
	return []JobStatus{
		StatusPending, StatusInProgress,
		StatusFinished, StatusError, StatusCanceled,
	}
}

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusFinished, StatusError, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether the job has stopped progressing. A job in a
// terminal state has a definite success determination.
func (s JobStatus) Terminal() bool {
	switch s {
	case StatusFinished, StatusError, StatusCanceled:
		return true
	}
	return false
}

func (s JobStatus) String() string { return string(s) }

// ParseJobStatus converts a string into a JobStatus, case-insensitively.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown job status %q", raw)
	}
	return s, nil
}

// UnmarshalJSON rejects status values outside the enumeration.
func (s *JobStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseJobStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
