package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethiack/job-manager/internal/schema"
)

// successStub serves the success endpoint: pending for the first
// pendingCalls requests, then the given terminal verdict.
func successStub(pendingCalls int32, verdict string, calls *int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n <= pendingCalls {
			_, _ = w.Write([]byte(`{"success": null}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": ` + verdict + `}`))
	}
}

func TestWaitForJobStopsAtTerminalResult(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(successStub(2, "true", &calls))
	defer ts.Close()

	start := time.Now()
	res, err := testClient(ts).WaitForJob(context.Background(), "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  30 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Success)
	assert.True(t, *res.Success)

	// Two pending polls, then the terminal one; nothing after the flip.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestWaitForJobTimesOutDistinctly(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(successStub(1<<30, "true", &calls))
	defer ts.Close()

	timeout := 2 * time.Second
	start := time.Now()
	res, err := testClient(ts).WaitForJob(context.Background(), "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  timeout,
	})
	elapsed := time.Since(start)

	var toErr *TimeoutError
	require.ErrorAs(t, err, &toErr)
	assert.Equal(t, "job-1", toErr.UUID)

	// The undetermined result is surfaced, never coerced to false.
	require.NotNil(t, res)
	assert.Nil(t, res.Success)

	// Bounded by the budget plus the backoff ceiling.
	assert.Less(t, elapsed, timeout+waitBackoffCap)

	settled := atomic.LoadInt32(&calls)
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&calls), "no polling after the deadline")
}

func TestWaitForJobRetriesThroughTransportErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		if n <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": "hiccup"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer ts.Close()

	res, err := testClient(ts).WaitForJob(context.Background(), "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  30 * time.Second,
	})
	require.NoError(t, err, "intermediate failures are retried, not surfaced")
	require.NotNil(t, res.Success)
	assert.True(t, *res.Success)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}

func TestWaitForJobFinalCallAppliesFailPolicy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("fail") == "true" {
			w.WriteHeader(http.StatusPreconditionFailed)
			_, _ = w.Write([]byte(`{"error": "job unsuccessful: findings at or above medium"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success": false}`))
	}))
	defer ts.Close()

	_, err := testClient(ts).WaitForJob(context.Background(), "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  30 * time.Second,
		Fail:     true,
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPreconditionFailed, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "unsuccessful")
}

func TestWaitForJobFalseIsTerminal(t *testing.T) {
	// A definite false must stop the loop; only a null success retries.
	var calls int32
	ts := httptest.NewServer(successStub(0, "false", &calls))
	defer ts.Close()

	res, err := testClient(ts).WaitForJob(context.Background(), "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  30 * time.Second,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Success)
	assert.False(t, *res.Success)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWaitForJobHonorsContextCancel(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(successStub(1<<30, "true", &calls))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(300 * time.Millisecond)
		cancel()
	}()

	_, err := testClient(ts).WaitForJob(ctx, "job-1", WaitOptions{
		Severity: schema.SeverityMedium,
		Timeout:  30 * time.Second,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLaunchJobWithWaitEndToEnd(t *testing.T) {
	var successCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/jobs/launch":
			_, _ = w.Write([]byte(`{"url": "https://example.com", "uuid": "job-9", "success": true}`))
		case "/v1/jobs/job-9/success":
			n := atomic.AddInt32(&successCalls, 1)
			if n <= 2 {
				_, _ = w.Write([]byte(`{"success": null}`))
				return
			}
			_, _ = w.Write([]byte(`{"success": true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	start := time.Now()
	res, err := testClient(ts).LaunchJob(context.Background(),
		mustService(t, "https://example.com"),
		&LaunchOptions{Wait: true, Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, "job-9", res.UUID)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, int32(3), atomic.LoadInt32(&successCalls), "no polls after the flip")
}

func TestWaitDelayBounds(t *testing.T) {
	for attempt := 0; attempt < 12; attempt++ {
		for i := 0; i < 50; i++ {
			d := waitDelay(attempt)
			if d < waitBackoffFloor || d > waitBackoffCap {
				t.Fatalf("attempt %d: delay %v outside [%v, %v]",
					attempt, d, waitBackoffFloor, waitBackoffCap)
			}
		}
	}
}
