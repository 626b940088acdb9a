package schema

import (
	"encoding/json"
	"testing"
)

func TestNewServiceStripsTrailingSlash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com", "https://example.com"},
		{"https://example.com/", "https://example.com"},
		{"https://example.com//", "https://example.com"},
		{"https://example.com/app/", "https://example.com/app"},
	}
	for _, tt := range tests {
		svc, err := NewService(tt.in)
		if err != nil {
			t.Fatalf("NewService(%q): %v", tt.in, err)
		}
		if svc.URL != tt.want {
			t.Errorf("NewService(%q).URL = %q, want %q", tt.in, svc.URL, tt.want)
		}
	}
}

func TestNewServiceRejectsBadURLs(t *testing.T) {
	for _, in := range []string{"", "   ", "example.com", "/relative/path", "://nope"} {
		if _, err := NewService(in); err == nil {
			t.Errorf("NewService(%q): expected error", in)
		}
	}
}

func TestNewServiceOptions(t *testing.T) {
	svc, err := NewService("https://example.com",
		WithBeaconID(42), WithEventSlug("ctf-2026"))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if svc.BeaconID == nil || *svc.BeaconID != 42 {
		t.Errorf("expected beacon id 42, got %v", svc.BeaconID)
	}
	if svc.EventSlug == nil || *svc.EventSlug != "ctf-2026" {
		t.Errorf("expected event slug ctf-2026, got %v", svc.EventSlug)
	}

	if _, err := NewService("https://example.com", WithBeaconID(0)); err == nil {
		t.Error("expected error for non-positive beacon id")
	}
}

func TestServiceJSONOmitsAbsentOptionals(t *testing.T) {
	svc, err := NewService("https://example.com")
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	data, err := json.Marshal(svc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"url":"https://example.com"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestJobFindingsUnsuccessful(t *testing.T) {
	jf := JobFindings{
		Findings: []Finding{
			{Title: "open redirect", Severity: SeverityLow},
			{Title: "sqli", Severity: SeverityCritical},
		},
	}
	if !jf.Unsuccessful(SeverityMedium) {
		t.Error("critical finding should fail a medium threshold")
	}
	if jf.Unsuccessful(SeverityCosmic) {
		t.Error("no cosmic finding, cosmic threshold should pass")
	}

	empty := JobFindings{}
	if empty.Unsuccessful(SeverityNone) {
		t.Error("no findings should never fail")
	}
}
