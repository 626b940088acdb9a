package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ConfigError reports invalid or missing client configuration. It is raised
// before any network attempt is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// SchemaError reports a response body that does not match the expected
// shape: a contract mismatch with the remote service. It carries one reason
// per offending field and is never retried.
type SchemaError struct {
	Endpoint string
	Fields   map[string]string
}

func (e *SchemaError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("invalid %s response: %s", e.Endpoint, strings.Join(parts, "; "))
}

func schemaErr(endpoint, field, reason string) *SchemaError {
	return &SchemaError{Endpoint: endpoint, Fields: map[string]string{field: reason}}
}

// APIError reports a non-2xx/3xx HTTP response. Detail carries whatever
// structured error information the body contained.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return fmt.Sprintf("%s\n\nAdditional info: %s", e.Message, e.Detail)
}

// TimeoutError reports that the poll loop deadline elapsed before the job
// reached a terminal state. Distinct from an APIError and from a job that
// legitimately finished unsuccessful.
type TimeoutError struct {
	UUID    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("job %s still not terminal after %s", e.UUID, e.Timeout)
}

// classifyError builds an APIError from a failed HTTP response. The body is
// inspected for the well-known error shapes: a top-level "error" string, a
// top-level "validation_error" object, otherwise a verbatim dump. Exit
// behavior is not decided here; that belongs to the caller.
func classifyError(status int, statusText, reqURL string, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Message: fmt.Sprintf("%d %s for url: %s", status, statusText, reqURL),
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	if raw, ok := payload["error"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil {
			apiErr.Detail = "(error) " + msg
			return apiErr
		}
	}
	if raw, ok := payload["validation_error"]; ok {
		apiErr.Detail = "(validation error) " + string(raw)
		return apiErr
	}
	apiErr.Detail = "(unknown error) " + string(body)
	return apiErr
}
