package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

type codeErr struct{ code int }

func (e codeErr) Error() string       { return fmt.Sprintf("http %d", e.code) }
func (e codeErr) HTTPStatusCode() int { return e.code }

func TestIsRetryableHTTPStatus(t *testing.T) {
	retryable := []int{408, 429, 500, 502, 503, 599}
	for _, code := range retryable {
		if !IsRetryableHTTPStatus(code) {
			t.Fatalf("expected %d retryable", code)
		}
	}
	terminal := []int{200, 201, 400, 401, 403, 404, 409, 422}
	for _, code := range terminal {
		if IsRetryableHTTPStatus(code) {
			t.Fatalf("expected %d terminal", code)
		}
	}
}

func TestIsRetryableError(t *testing.T) {
	if IsRetryableError(nil) {
		t.Fatalf("nil is not retryable")
	}
	if !IsRetryableError(context.DeadlineExceeded) {
		t.Fatalf("deadline exceeded is retryable")
	}
	if !IsRetryableError(codeErr{code: 503}) {
		t.Fatalf("503 is retryable")
	}
	if IsRetryableError(codeErr{code: 400}) {
		t.Fatalf("400 is terminal")
	}
	if IsRetryableError(errors.New("parse failure")) {
		t.Fatalf("plain errors are terminal")
	}
}

func TestRetryAfterDuration_HeaderWins(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "2")
	got := RetryAfterDuration(resp, 500*time.Millisecond, 10*time.Second)
	if got != 2*time.Second {
		t.Fatalf("expected 2s, got %v", got)
	}
}

func TestRetryAfterDuration_CappedAtMax(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "120")
	got := RetryAfterDuration(resp, time.Second, 5*time.Second)
	if got != 5*time.Second {
		t.Fatalf("expected cap at 5s, got %v", got)
	}
}

func TestRetryAfterDuration_FallbackWithoutHeader(t *testing.T) {
	got := RetryAfterDuration(nil, 750*time.Millisecond, 10*time.Second)
	if got != 750*time.Millisecond {
		t.Fatalf("expected fallback, got %v", got)
	}
}

func TestJitterSleep_WithinBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 50; i++ {
		got := JitterSleep(base)
		if got < 800*time.Millisecond || got > 1200*time.Millisecond {
			t.Fatalf("jitter out of bounds: %v", got)
		}
	}
	if JitterSleep(0) != 0 {
		t.Fatalf("zero base sleeps zero")
	}
}
