package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/ethiack/job-manager/internal/schema"
)

// CheckResponse is returned by the check endpoint.
type CheckResponse struct {
	URL   string `json:"url"`
	Valid bool   `json:"valid"`
}

func (r *CheckResponse) validate() error {
	if r.URL == "" {
		return schemaErr("check", "url", "missing required field")
	}
	return nil
}

// Check verifies that a job can be submitted for the given service.
func (c *Client) Check(ctx context.Context, svc schema.Service) (*CheckResponse, error) {
	var out CheckResponse
	if err := c.post(ctx, "jobs/check", svc, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LaunchJobResponse is returned by the launch endpoint.
type LaunchJobResponse struct {
	URL      string `json:"url"`
	UUID     string `json:"uuid"`
	Launched bool   `json:"success"`
}

// UnmarshalJSON defaults Launched to true when the server omits it.
func (r *LaunchJobResponse) UnmarshalJSON(data []byte) error {
	type alias LaunchJobResponse
	aux := alias{Launched: true}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = LaunchJobResponse(aux)
	return nil
}

func (r *LaunchJobResponse) validate() error {
	fields := make(map[string]string)
	if r.UUID == "" {
		fields["uuid"] = "missing required field"
	}
	if r.URL == "" {
		fields["url"] = "missing required field"
	}
	if len(fields) > 0 {
		return &SchemaError{Endpoint: "launch", Fields: fields}
	}
	return nil
}

// LaunchOptions controls the optional wait after a launch.
type LaunchOptions struct {
	// Wait blocks until the job reaches a terminal success determination.
	Wait bool

	// Timeout bounds the wait; zero means DefaultWaitTimeout.
	Timeout time.Duration

	// Severity is the minimum level that should fail the job; empty means
	// medium.
	Severity schema.Severity

	// Fail is forwarded to the final success call; with it set the server
	// answers non-2xx for an unsuccessful job.
	Fail bool
}

// LaunchJob submits a new job for the given service. The launch itself
// never waits; when opts.Wait is set the poll loop is layered on top and
// the launch response is still returned alongside any wait error.
func (c *Client) LaunchJob(ctx context.Context, svc schema.Service, opts *LaunchOptions) (*LaunchJobResponse, error) {
	var out LaunchJobResponse
	if err := c.post(ctx, "jobs/launch", svc, &out); err != nil {
		return nil, err
	}
	if opts != nil && opts.Wait {
		severity := opts.Severity
		if severity == "" {
			severity = schema.SeverityMedium
		}
		_, err := c.WaitForJob(ctx, out.UUID, WaitOptions{
			Severity: severity,
			Timeout:  opts.Timeout,
			Fail:     opts.Fail,
		})
		if err != nil {
			return &out, err
		}
	}
	return &out, nil
}

// CancelJobResponse is returned by the cancel endpoint.
type CancelJobResponse struct {
	Cancelled bool   `json:"success"`
	Message   string `json:"description"`
}

func (r *CancelJobResponse) validate() error {
	if r.Message == "" {
		return schemaErr("cancel", "description", "missing required field")
	}
	return nil
}

// CancelJob cancels a queued or running job. Cancelling an already-terminal
// job surfaces whatever classification the server returns; it is never
// remapped to success client-side.
func (c *Client) CancelJob(ctx context.Context, uuid string) (*CancelJobResponse, error) {
	var out CancelJobResponse
	if err := c.post(ctx, "jobs/"+uuid+"/cancel", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobInfoResponse is returned by the job info endpoint.
type JobInfoResponse struct {
	Job schema.JobFindings `json:"job"`
}

func (r *JobInfoResponse) validate() error {
	if r.Job.UUID == "" {
		return schemaErr("info", "job.uuid", "missing required field")
	}
	return nil
}

// JobInfo fetches the full detail of a job, findings included.
func (c *Client) JobInfo(ctx context.Context, uuid string) (*JobInfoResponse, error) {
	var out JobInfoResponse
	if err := c.get(ctx, "jobs/"+uuid, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListJobsResponse is returned by the list endpoint. Jobs keep the
// server-defined order.
type ListJobsResponse struct {
	Jobs []schema.Job `json:"jobs"`
}

func (r *ListJobsResponse) validate() error {
	if r.Jobs == nil {
		return schemaErr("list", "jobs", "missing required field")
	}
	return nil
}

// ListJobs lists all jobs.
func (c *Client) ListJobs(ctx context.Context) (*ListJobsResponse, error) {
	var out ListJobsResponse
	if err := c.get(ctx, "jobs", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobStatusResponse is returned by the status endpoint.
type JobStatusResponse struct {
	Status schema.JobStatus `json:"status"`
}

func (r *JobStatusResponse) validate() error {
	if r.Status == "" {
		return schemaErr("status", "status", "missing required field")
	}
	return nil
}

// JobStatus fetches the bare lifecycle state of a job.
func (c *Client) JobStatus(ctx context.Context, uuid string) (*JobStatusResponse, error) {
	var out JobStatusResponse
	if err := c.get(ctx, "jobs/"+uuid+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JobSuccessResponse is returned by the success endpoint. Success is
// tri-state: nil while the job is not terminal, a definite boolean once it
// is.
type JobSuccessResponse struct {
	Success *bool   `json:"success"`
	Message *string `json:"description,omitempty"`
}

func (r *JobSuccessResponse) validate() error { return nil }

// JobSuccess retrieves the success determination of a job against the given
// severity threshold. With fail set the server answers non-2xx when the job
// finished unsuccessful, which is what lets the CLI exit nonzero.
func (c *Client) JobSuccess(ctx context.Context, uuid string, severity schema.Severity, fail bool) (*JobSuccessResponse, error) {
	query := url.Values{}
	query.Set("severity", severity.String())
	query.Set("fail", strconv.FormatBool(fail))

	var out JobSuccessResponse
	if err := c.get(ctx, "jobs/"+uuid+"/success", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
