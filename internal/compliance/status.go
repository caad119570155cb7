package compliance

import (
	"fmt"
	"strings"
)

// Status is the top-level classification of one analysis.
type Status string

const (
	StatusCompliant    Status = "compliant"
	StatusNonCompliant Status = "non_compliant"
	// StatusRequiresReview is the canonical third value. The engine contract
	// historically used both "warning" and "requires_review" for this state;
	// "warning" is accepted as an alias on ingestion and mapped here.
	StatusRequiresReview Status = "requires_review"
)

// NormalizeStatus canonicalizes an engine-returned overall status. An
// unrecognized value is an engine contract violation, not a default.
func NormalizeStatus(raw string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusCompliant):
		return StatusCompliant, nil
	case string(StatusNonCompliant):
		return StatusNonCompliant, nil
	case string(StatusRequiresReview), "warning":
		return StatusRequiresReview, nil
	default:
		return "", fmt.Errorf("%w: unknown overall_status %q", ErrEngineContractViolation, raw)
	}
}
