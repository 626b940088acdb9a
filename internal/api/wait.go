package api

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ethiack/job-manager/internal/schema"
)

// DefaultWaitTimeout bounds a wait when the caller does not set one.
const DefaultWaitTimeout = time.Hour

// Backoff schedule between poll attempts: randomized exponential with a 1s
// multiplier, clamped to [1s, 15s] per attempt. The jitter keeps a fleet of
// clients from hammering the service in lockstep.
const (
	waitBackoffBase  = time.Second
	waitBackoffFloor = time.Second
	waitBackoffCap   = 15 * time.Second
)

// WaitOptions controls a poll-until-done loop.
type WaitOptions struct {
	// Severity is the minimum level that should fail the job.
	Severity schema.Severity

	// Timeout is the total wall-clock budget across all attempts; zero
	// means DefaultWaitTimeout.
	Timeout time.Duration

	// Fail is forwarded to the final, non-suppressed success call.
	Fail bool
}

// WaitForJob blocks until the job reaches a terminal success determination
// or the timeout elapses. Intermediate attempts suppress both transport
// errors and "still pending" results and retry under the backoff schedule;
// the loop never polls again after observing a terminal result.
//
// Whichever way the loop ends, one final non-suppressed call reports the
// outcome: its transport or API errors propagate, and a result that is
// still undetermined after the deadline comes back alongside a
// *TimeoutError rather than being coerced to a failure.
func (c *Client) WaitForJob(ctx context.Context, uuid string, opts WaitOptions) (*JobSuccessResponse, error) {
	severity := opts.Severity
	if severity == "" {
		severity = schema.SeverityMedium
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	deadline := time.Now().Add(timeout)
	log := c.log.WithFields(logrus.Fields{"job": uuid, "severity": severity.String()})

	for attempt := 0; ; attempt++ {
		res, err := c.JobSuccess(ctx, uuid, severity, false)
		if err == nil && res.Success != nil {
			if !opts.Fail {
				return res, nil
			}
			// Re-issue with fail set so the server applies its
			// unsuccessful-job classification to the final answer.
			return c.JobSuccess(ctx, uuid, severity, true)
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.WithError(err).Debug("poll attempt failed, retrying")
		}
		if !time.Now().Before(deadline) {
			log.Debug("wait budget exhausted")
			break
		}
		if err := sleepCtx(ctx, waitDelay(attempt)); err != nil {
			return nil, err
		}
	}

	// Deadline elapsed without a terminal result. One final call with
	// normal error propagation: every failure suppressed during polling
	// becomes visible again here if it persists, and a result that is
	// still undetermined is surfaced as such next to the timeout.
	res, err := c.JobSuccess(ctx, uuid, severity, opts.Fail)
	if err != nil {
		return nil, err
	}
	if res.Success == nil {
		return res, &TimeoutError{UUID: uuid, Timeout: timeout}
	}
	return res, nil
}

// waitDelay returns the jittered delay before the next attempt.
func waitDelay(attempt int) time.Duration {
	ceiling := waitBackoffCap
	if attempt < 4 {
		if d := waitBackoffBase << attempt; d < ceiling {
			ceiling = d
		}
	}
	d := time.Duration(rand.Int63n(int64(ceiling)))
	if d < waitBackoffFloor {
		d = waitBackoffFloor
	}
	return d
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
