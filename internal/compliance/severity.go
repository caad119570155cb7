package compliance

import (
	"fmt"
	"strings"
)

// Severity classifies a single finding within a verdict.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// NormalizeSeverity matches case-insensitively against the closed severity
// set. Anything else fails: an unclassified finding must not be silently
// downgraded to a lower severity.
func NormalizeSeverity(raw string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(SeverityCritical):
		return SeverityCritical, nil
	case string(SeverityWarning):
		return SeverityWarning, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeverity, raw)
	}
}

// sortKey orders critical before warning; display ordering is a stable sort
// on this key so the engine-returned order survives within each severity.
func (s Severity) sortKey() int {
	if s == SeverityCritical {
		return 0
	}
	return 1
}
