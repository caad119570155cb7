package compliance

import "errors"

var (
	// ErrInvalidInput is returned for blank content or an unrecognized content type.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCorpus is returned when a request is built with no guidelines to check against.
	ErrEmptyCorpus = errors.New("empty guideline corpus")
	// ErrEngineTimeout is returned when the engine call exceeded its deadline. Retryable once.
	ErrEngineTimeout = errors.New("engine timeout")
	// ErrEngineUnavailable covers transport and auth failures on the engine call. Retryable once.
	ErrEngineUnavailable = errors.New("engine unavailable")
	// ErrEngineContractViolation is returned when the engine response cannot be
	// parsed into a verdict. Never coerced into a compliant result.
	ErrEngineContractViolation = errors.New("engine contract violation")
	// ErrUnknownSeverity is returned when an issue severity is neither critical
	// nor warning. Severities are never default-assigned.
	ErrUnknownSeverity = errors.New("unknown severity")
	// ErrContractViolation is returned for a malformed status/issue combination,
	// such as a non-compliant verdict without a critical issue.
	ErrContractViolation = errors.New("verdict contract violation")
	// ErrNothingToRewrite is returned when rewrites are requested for a verdict
	// with no issues.
	ErrNothingToRewrite = errors.New("nothing to rewrite")
	// ErrRewriteGenerationFailed is returned when the rewrite call fails. The
	// prior verdict is left untouched.
	ErrRewriteGenerationFailed = errors.New("rewrite generation failed")
	// ErrFeatureNotEntitled is returned when the caller's plan does not unlock
	// the invoked capability.
	ErrFeatureNotEntitled = errors.New("feature not entitled")
	// ErrCheckLimitExceeded is returned when the caller's monthly check quota
	// is exhausted.
	ErrCheckLimitExceeded = errors.New("monthly check limit exceeded")
	// ErrNotFound is returned for history lookups that match no record owned
	// by the caller.
	ErrNotFound = errors.New("not found")
)
