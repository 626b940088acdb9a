package schema

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Service describes a target service a job runs against.
type Service struct {
	URL       string  `json:"url"`
	BeaconID  *int    `json:"beacon_id,omitempty"`
	EventSlug *string `json:"event_slug,omitempty"`
}

// ServiceOption customizes an optional Service field.
type ServiceOption func(*Service)

// WithBeaconID attaches a beacon ID to the service.
func WithBeaconID(id int) ServiceOption {
	return func(s *Service) { s.BeaconID = &id }
}

// WithEventSlug attaches an event slug to the service.
func WithEventSlug(slug string) ServiceOption {
	return func(s *Service) { s.EventSlug = &slug }
}

// NewService validates and normalizes a target URL into a Service. The URL
// must be absolute; trailing slashes are stripped.
func NewService(rawURL string, opts ...ServiceOption) (Service, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return Service{}, err
	}
	svc := Service{URL: normalized}
	for _, opt := range opts {
		opt(&svc)
	}
	if svc.BeaconID != nil && *svc.BeaconID <= 0 {
		return Service{}, fmt.Errorf("beacon id must be positive, got %d", *svc.BeaconID)
	}
	return svc, nil
}

// NormalizeURL checks that rawURL is a well-formed absolute URL and strips
// any trailing slashes.
func NormalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return "", fmt.Errorf("service url must not be empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid service url %q: %w", rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("service url %q must be absolute", rawURL)
	}
	return strings.TrimRight(trimmed, "/"), nil
}

// Finding is a single reported issue produced by a finished job.
type Finding struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
}

// Job is a read-only snapshot of a scan run. Only the remote service
// mutates jobs; the client observes them.
type Job struct {
	UUID     string     `json:"uuid"`
	URL      string     `json:"url"`
	Status   JobStatus  `json:"status"`
	Created  time.Time  `json:"created"`
	Started  *time.Time `json:"started,omitempty"`
	Finished *time.Time `json:"finished,omitempty"`
}

// JobFindings is a Job together with its findings, populated once the job
// reaches a terminal state.
type JobFindings struct {
	Job
	Findings []Finding `json:"findings"`
}

// Unsuccessful reports whether any finding is at or above the threshold.
func (jf JobFindings) Unsuccessful(threshold Severity) bool {
	for _, f := range jf.Findings {
		if f.Severity.AtLeast(threshold) {
			return true
		}
	}
	return false
}
