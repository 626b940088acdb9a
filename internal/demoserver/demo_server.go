// Package demoserver is an in-memory stand-in for the remote job API. It
// serves the same endpoints and error shapes, with jobs that progress
// through their lifecycle on a timer, so the CLI and the client tests can
// run end-to-end without credentials for the real service.
package demoserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ethiack/job-manager/internal/schema"
)

// Config holds configuration for the demo server.
type Config struct {
	// Addr is the listen address.
	Addr string

	// APIKey/APISecret are the accepted basic-auth pair. Empty means any
	// non-empty pair is accepted.
	APIKey    string
	APISecret string

	// PendingFor and RunningFor pace the simulated job lifecycle.
	PendingFor time.Duration
	RunningFor time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:       ":9090",
		PendingFor: 2 * time.Second,
		RunningFor: 8 * time.Second,
	}
}

type jobRecord struct {
	uuid     string
	url      string
	created  time.Time
	canceled *time.Time
	findings []schema.Finding
}

// DemoServer fakes the job API over an in-memory store.
type DemoServer struct {
	cfg    Config
	router chi.Router
	log    *logrus.Entry

	mu    sync.RWMutex
	jobs  map[string]*jobRecord
	order []string
}

// New creates a demo server.
func New(cfg Config) *DemoServer {
	s := &DemoServer{
		cfg:  cfg,
		jobs: make(map[string]*jobRecord),
		log:  logrus.WithField("component", "demoserver"),
	}

	r := chi.NewRouter()
	r.Use(s.authMiddleware)
	r.Route("/v1/jobs", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/check", s.handleCheck)
		r.Post("/launch", s.handleLaunch)
		r.Get("/{uuid}", s.handleInfo)
		r.Post("/{uuid}/cancel", s.handleCancel)
		r.Get("/{uuid}/status", s.handleStatus)
		r.Get("/{uuid}/success", s.handleSuccess)
	})
	s.router = r
	return s
}

// Handler exposes the router, mainly for httptest.
func (s *DemoServer) Handler() http.Handler { return s.router }

// Start serves until the listener fails.
func (s *DemoServer) Start() error {
	s.log.WithField("addr", s.cfg.Addr).Info("demo server listening")
	return http.ListenAndServe(s.cfg.Addr, s.router)
}

func (s *DemoServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, secret, ok := r.BasicAuth()
		authorized := ok && key != "" && secret != ""
		if authorized && s.cfg.APIKey != "" {
			authorized = key == s.cfg.APIKey && secret == s.cfg.APISecret
		}
		if !authorized {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid credentials"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *DemoServer) handleCheck(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.decodeService(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"url": svc.URL, "valid": true})
}

func (s *DemoServer) handleLaunch(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.decodeService(w, r)
	if !ok {
		return
	}

	rec := &jobRecord{
		uuid:    uuid.NewString(),
		url:     svc.URL,
		created: time.Now(),
		// Canned findings: one medium, one info. A medium threshold fails
		// the job, a high threshold passes it.
		findings: []schema.Finding{
			{Title: "Missing Content-Security-Policy header", Severity: schema.SeverityMedium},
			{Title: "Server version disclosure", Severity: schema.SeverityInfo},
		},
	}

	s.mu.Lock()
	s.jobs[rec.uuid] = rec
	s.order = append(s.order, rec.uuid)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"job": rec.uuid, "url": rec.url}).Info("job launched")
	writeJSON(w, http.StatusOK, map[string]any{"url": rec.url, "uuid": rec.uuid, "success": true})
}

func (s *DemoServer) handleCancel(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status(rec, time.Now()).Terminal() {
		writeJSON(w, http.StatusConflict, map[string]any{"error": "job is already in a terminal state"})
		return
	}
	now := time.Now()
	rec.canceled = &now
	s.log.WithField("job", rec.uuid).Info("job canceled")
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "description": "job canceled"})
}

func (s *DemoServer) handleInfo(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job := s.snapshot(rec, time.Now())
	findings := []schema.Finding{}
	if job.Status == schema.StatusFinished {
		findings = rec.findings
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"job": schema.JobFindings{Job: job, Findings: findings},
	})
}

func (s *DemoServer) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	jobs := make([]schema.Job, 0, len(s.order))
	for _, id := range s.order {
		jobs = append(jobs, s.snapshot(s.jobs[id], now))
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (s *DemoServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"status": s.status(rec, time.Now())})
}

func (s *DemoServer) handleSuccess(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	severity, err := schema.ParseSeverity(r.URL.Query().Get("severity"))
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"validation_error": map[string]any{"severity": []string{err.Error()}},
		})
		return
	}
	fail := r.URL.Query().Get("fail") == "true"

	s.mu.RLock()
	defer s.mu.RUnlock()
	now := time.Now()
	status := s.status(rec, now)
	if !status.Terminal() {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": nil, "description": "job is still running",
		})
		return
	}

	var success bool
	var message string
	switch status {
	case schema.StatusCanceled:
		success, message = false, "job was canceled"
	default:
		jf := schema.JobFindings{Findings: rec.findings}
		if jf.Unsuccessful(severity) {
			success, message = false, "job produced findings at or above "+severity.String()
		} else {
			success, message = true, "no findings at or above "+severity.String()
		}
	}

	if fail && !success {
		writeJSON(w, http.StatusPreconditionFailed, map[string]any{"error": message})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": success, "description": message})
}

func (s *DemoServer) decodeService(w http.ResponseWriter, r *http.Request) (schema.Service, bool) {
	var raw schema.Service
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return schema.Service{}, false
	}
	opts := []schema.ServiceOption{}
	if raw.BeaconID != nil {
		opts = append(opts, schema.WithBeaconID(*raw.BeaconID))
	}
	if raw.EventSlug != nil {
		opts = append(opts, schema.WithEventSlug(*raw.EventSlug))
	}
	svc, err := schema.NewService(raw.URL, opts...)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"validation_error": map[string]any{"url": []string{err.Error()}},
		})
		return schema.Service{}, false
	}
	return svc, true
}

func (s *DemoServer) lookup(w http.ResponseWriter, r *http.Request) (*jobRecord, bool) {
	id := chi.URLParam(r, "uuid")
	s.mu.RLock()
	rec, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "job not found"})
		return nil, false
	}
	return rec, true
}

// status derives the lifecycle state from elapsed time. Callers hold s.mu.
func (s *DemoServer) status(rec *jobRecord, now time.Time) schema.JobStatus {
	if rec.canceled != nil {
		return schema.StatusCanceled
	}
	elapsed := now.Sub(rec.created)
	switch {
	case elapsed < s.cfg.PendingFor:
		return schema.StatusPending
	case elapsed < s.cfg.PendingFor+s.cfg.RunningFor:
		return schema.StatusInProgress
	default:
		return schema.StatusFinished
	}
}

// snapshot builds the Job view of a record. Callers hold s.mu.
func (s *DemoServer) snapshot(rec *jobRecord, now time.Time) schema.Job {
	job := schema.Job{
		UUID:    rec.uuid,
		URL:     rec.url,
		Status:  s.status(rec, now),
		Created: rec.created,
	}
	started := rec.created.Add(s.cfg.PendingFor)
	if job.Status != schema.StatusPending {
		if rec.canceled != nil && rec.canceled.Before(started) {
			// Canceled while still pending; it never started.
			job.Finished = rec.canceled
			return job
		}
		job.Started = &started
	}
	switch job.Status {
	case schema.StatusCanceled:
		job.Finished = rec.canceled
	case schema.StatusFinished:
		finished := started.Add(s.cfg.RunningFor)
		job.Finished = &finished
	}
	return job
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
