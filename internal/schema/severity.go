package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Severity is the severity level of a finding.
type Severity string

const (
	SeverityCosmic   Severity = "cosmic"
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
	SeverityNone     Severity = "none"
)

// severityRank is the explicit total order used for threshold comparison.
// The success determination of a job depends on this ordering, so it is
// spelled out rather than inferred from declaration order.
var severityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityInfo:     1,
	SeverityLow:      2,
	SeverityMedium:   3,
	SeverityHigh:     4,
	SeverityCritical: 5,
	SeverityCosmic:   6,
}

// Severities lists all levels from most to least severe.
func Severities() []Severity {
	return []Severity{
		SeverityCosmic, SeverityCritical, SeverityHigh,
		SeverityMedium, SeverityLow, SeverityInfo, SeverityNone,
	}
}

// SeverityNames lists all levels as plain strings, for CLI flag choices.
func SeverityNames() []string {
	levels := Severities()
	names := make([]string, len(levels))
	for i, s := range levels {
		names[i] = string(s)
	}
	return names
}

// Valid reports whether s is a known severity level.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// Rank returns the position of s in the severity order (none=0 .. cosmic=6).
func (s Severity) Rank() int {
	return severityRank[s]
}

// AtLeast reports whether s is at or above the given threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return severityRank[s] >= severityRank[threshold]
}

func (s Severity) String() string { return string(s) }

// ParseSeverity converts a string into a Severity, case-insensitively.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q (expected one of %s)",
			raw, strings.Join(SeverityNames(), ", "))
	}
	return s, nil
}

// UnmarshalJSON rejects severity values outside the enumeration.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSeverity(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
