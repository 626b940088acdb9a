package api

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClassifyErrorTopLevelError(t *testing.T) {
	body := []byte(`{"error": "job is already finished"}`)
	apiErr := classifyError(409, "Conflict", "https://api.example.com/v1/jobs/x/cancel", body)

	if apiErr.Status != 409 {
		t.Errorf("expected status 409, got %d", apiErr.Status)
	}
	if apiErr.Detail != "(error) job is already finished" {
		t.Errorf("unexpected detail: %q", apiErr.Detail)
	}
}

func TestClassifyErrorValidationError(t *testing.T) {
	body := []byte(`{"validation_error": {"url": ["invalid"]}}`)
	apiErr := classifyError(422, "Unprocessable Entity", "https://api.example.com/v1/jobs/check", body)

	if apiErr.Status != 422 {
		t.Errorf("expected status 422, got %d", apiErr.Status)
	}
	if !strings.HasPrefix(apiErr.Detail, "(validation error) ") {
		t.Errorf("unexpected detail prefix: %q", apiErr.Detail)
	}
	if !strings.Contains(apiErr.Detail, "invalid") {
		t.Errorf("detail should carry the field diagnostic, got %q", apiErr.Detail)
	}
}

func TestClassifyErrorUnknownShape(t *testing.T) {
	body := []byte(`{"weird": true}`)
	apiErr := classifyError(500, "Internal Server Error", "https://api.example.com/v1/jobs", body)
	if !strings.Contains(apiErr.Detail, `"weird"`) {
		t.Errorf("expected verbatim dump, got %q", apiErr.Detail)
	}
}

func TestClassifyErrorNonJSONBody(t *testing.T) {
	apiErr := classifyError(502, "Bad Gateway", "https://api.example.com/v1/jobs", []byte("<html>bad gateway</html>"))
	if apiErr.Detail != "" {
		t.Errorf("expected no detail for non-JSON body, got %q", apiErr.Detail)
	}
	if !strings.Contains(apiErr.Error(), "502 Bad Gateway") {
		t.Errorf("unexpected message: %q", apiErr.Error())
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Endpoint: "launch", Fields: map[string]string{
		"uuid": "missing required field",
		"url":  "missing required field",
	}}
	msg := err.Error()
	// Fields are reported in stable order.
	if msg != "invalid launch response: url: missing required field; uuid: missing required field" {
		t.Errorf("unexpected message: %q", msg)
	}
}

func TestTimeoutErrorIsDistinct(t *testing.T) {
	var err error = &TimeoutError{UUID: "abc", Timeout: 5 * time.Second}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("TimeoutError must not classify as APIError")
	}
	var toErr *TimeoutError
	if !errors.As(err, &toErr) {
		t.Fatal("expected TimeoutError")
	}
	if toErr.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %v", toErr.Timeout)
	}
}
