package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adcomply/adcomply-backend/internal/compliance"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	// Retryable marks failures the client may resubmit unchanged (engine
	// timeouts and outages). Everything else is terminal.
	Retryable bool `json:"retryable,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      code,
			Retryable: isRetryable(err),
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the pipeline error taxonomy onto HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, compliance.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, compliance.ErrEmptyCorpus):
		RespondError(c, http.StatusServiceUnavailable, "empty_corpus", err)
	case errors.Is(err, compliance.ErrEngineTimeout):
		RespondError(c, http.StatusGatewayTimeout, "engine_timeout", err)
	case errors.Is(err, compliance.ErrEngineUnavailable):
		RespondError(c, http.StatusBadGateway, "engine_unavailable", err)
	case errors.Is(err, compliance.ErrEngineContractViolation):
		RespondError(c, http.StatusBadGateway, "engine_contract_violation", err)
	case errors.Is(err, compliance.ErrUnknownSeverity):
		RespondError(c, http.StatusBadGateway, "unknown_severity", err)
	case errors.Is(err, compliance.ErrContractViolation):
		RespondError(c, http.StatusBadGateway, "contract_violation", err)
	case errors.Is(err, compliance.ErrNothingToRewrite):
		RespondError(c, http.StatusConflict, "nothing_to_rewrite", err)
	case errors.Is(err, compliance.ErrRewriteGenerationFailed):
		RespondError(c, http.StatusBadGateway, "rewrite_generation_failed", err)
	case errors.Is(err, compliance.ErrFeatureNotEntitled):
		RespondError(c, http.StatusForbidden, "feature_not_entitled", err)
	case errors.Is(err, compliance.ErrCheckLimitExceeded):
		RespondError(c, http.StatusTooManyRequests, "check_limit_exceeded", err)
	case errors.Is(err, compliance.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func isRetryable(err error) bool {
	return errors.Is(err, compliance.ErrEngineTimeout) ||
		errors.Is(err, compliance.ErrEngineUnavailable) ||
		errors.Is(err, compliance.ErrRewriteGenerationFailed)
}
