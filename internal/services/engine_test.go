package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/adcomply/adcomply-backend/internal/compliance"
)

type statusErr struct{ code int }

func (e *statusErr) Error() string       { return fmt.Sprintf("http %d", e.code) }
func (e *statusErr) HTTPStatusCode() int { return e.code }

type dialErr struct{}

func (dialErr) Error() string   { return "connection refused" }
func (dialErr) Timeout() bool   { return false }
func (dialErr) Temporary() bool { return true }

func TestMapEngineError_DeadlineIsTimeout(t *testing.T) {
	e := &openaiEngine{log: testLogger(t)}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	got := e.mapEngineError(ctx, ctx.Err())
	if !errors.Is(got, compliance.ErrEngineTimeout) {
		t.Fatalf("expected ErrEngineTimeout, got %v", got)
	}
}

func TestMapEngineError_HTTPStatusIsUnavailable(t *testing.T) {
	e := &openaiEngine{log: testLogger(t)}
	got := e.mapEngineError(context.Background(), &statusErr{code: 503})
	if !errors.Is(got, compliance.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", got)
	}
}

func TestMapEngineError_AuthFailureIsUnavailable(t *testing.T) {
	e := &openaiEngine{log: testLogger(t)}
	got := e.mapEngineError(context.Background(), &statusErr{code: 401})
	if !errors.Is(got, compliance.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", got)
	}
}

func TestMapEngineError_NetErrorIsUnavailable(t *testing.T) {
	e := &openaiEngine{log: testLogger(t)}
	got := e.mapEngineError(context.Background(), dialErr{})
	if !errors.Is(got, compliance.ErrEngineUnavailable) {
		t.Fatalf("expected ErrEngineUnavailable, got %v", got)
	}
}

func TestMapEngineError_DefaultIsContractViolation(t *testing.T) {
	e := &openaiEngine{log: testLogger(t)}
	got := e.mapEngineError(context.Background(), errors.New("unexpected token"))
	if !errors.Is(got, compliance.ErrEngineContractViolation) {
		t.Fatalf("expected ErrEngineContractViolation, got %v", got)
	}
}

func TestDecodeRawResponse_MissingStatusFails(t *testing.T) {
	_, err := decodeRawResponse(map[string]any{
		"summary": "s",
		"issues":  []any{},
	})
	if !errors.Is(err, compliance.ErrEngineContractViolation) {
		t.Fatalf("expected ErrEngineContractViolation, got %v", err)
	}
}

func TestDecodeRawResponse_WellFormed(t *testing.T) {
	raw, err := decodeRawResponse(map[string]any{
		"overall_status": "compliant",
		"summary":        "clean",
		"issues":         []any{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw.OverallStatus != "compliant" || raw.Summary != "clean" {
		t.Fatalf("unexpected decode: %+v", raw)
	}
}
