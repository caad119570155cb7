package compliance

import (
	"fmt"
	"sort"
)

// Issue is one finding within a verdict.
type Issue struct {
	GuidelineReference string   `json:"guideline_reference"`
	Finding            string   `json:"finding"`
	Severity           Severity `json:"severity"`
	Recommendation     string   `json:"recommendation"`
}

// RawIssue is the engine-returned shape before severity normalization.
type RawIssue struct {
	GuidelineReference string `json:"guideline_reference"`
	Finding            string `json:"finding"`
	Severity           string `json:"severity"`
	Recommendation     string `json:"recommendation"`
}

// RawResponse is the engine-returned verdict before normalization.
type RawResponse struct {
	OverallStatus string     `json:"overall_status"`
	Summary       string     `json:"summary"`
	Issues        []RawIssue `json:"issues"`
}

// Result is the normalized verdict for one submitted content item. Issues are
// held in display order; counts and score are derived on read, never stored.
type Result struct {
	OverallStatus Status  `json:"overall_status"`
	Summary       string  `json:"summary"`
	Issues        []Issue `json:"issues"`
}

// RewrittenPost is one alternative compliant version of the submitted content.
// Rewrites are ephemeral: produced on demand, never persisted, and a
// regeneration replaces the prior set wholesale.
type RewrittenPost struct {
	OptionTitle string `json:"option_title"`
	Content     string `json:"content"`
	Explanation string `json:"explanation"`
}

// Normalize validates and repairs the engine-returned verdict shape:
// severities and status are canonicalized fail-loud, issues are put into
// display order, and the status/issue contract is checked. A raw response
// that cannot be normalized never becomes a compliant verdict.
func Normalize(raw *RawResponse) (*Result, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil engine response", ErrEngineContractViolation)
	}

	status, err := NormalizeStatus(raw.OverallStatus)
	if err != nil {
		return nil, err
	}

	issues := make([]Issue, 0, len(raw.Issues))
	for i, ri := range raw.Issues {
		sev, err := NormalizeSeverity(ri.Severity)
		if err != nil {
			return nil, fmt.Errorf("issue %d: %w", i, err)
		}
		issues = append(issues, Issue{
			GuidelineReference: ri.GuidelineReference,
			Finding:            ri.Finding,
			Severity:           sev,
			Recommendation:     ri.Recommendation,
		})
	}

	SortIssues(issues)

	result := &Result{
		OverallStatus: status,
		Summary:       raw.Summary,
		Issues:        issues,
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// SortIssues applies the display ordering in place: critical before warning,
// stable, so issues of equal severity keep the engine-returned order.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.sortKey() < issues[j].Severity.sortKey()
	})
}

// Validate checks the status/issue contract. A compliant verdict may still
// carry informational issues, but a non-compliant one must name at least one
// critical finding.
func (r *Result) Validate() error {
	if r.OverallStatus == StatusNonCompliant && r.CriticalCount() == 0 {
		return fmt.Errorf("%w: non_compliant verdict with no critical issue", ErrContractViolation)
	}
	return nil
}

func (r *Result) CriticalCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

func (r *Result) WarningCount() int {
	n := 0
	for _, is := range r.Issues {
		if is.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// DefaultExpandIndex returns the index of the issue presented expanded by
// default: the first issue, if and only if it is critical after sorting.
// Returns -1 when nothing is expanded.
func (r *Result) DefaultExpandIndex() int {
	if len(r.Issues) > 0 && r.Issues[0].Severity == SeverityCritical {
		return 0
	}
	return -1
}

// Score derives the 0-100 compliance score from the issue counts. It is
// recomputed from the issue list on every read; the persisted copy exists
// for listing without deserializing the verdict.
func (r *Result) Score() int {
	score := 100 - 40*r.CriticalCount() - 15*r.WarningCount()
	if score < 0 {
		score = 0
	}
	return score
}
