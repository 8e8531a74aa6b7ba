package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestUpstreamRequest(t *testing.T) {
	err := UpstreamRequest("submit", 503, `{"error":"busy"}`)
	if err.Code != ErrCodeUpstreamRequest {
		t.Errorf("expected %s, got %s", ErrCodeUpstreamRequest, err.Code)
	}
	if !err.Retryable {
		t.Error("upstream request errors should be retryable")
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}
	if err.Details["upstream_status"] != 503 {
		t.Errorf("expected upstream_status 503, got %v", err.Details["upstream_status"])
	}
	if err.Details["upstream_body"] != `{"error":"busy"}` {
		t.Errorf("upstream body not carried: %v", err.Details["upstream_body"])
	}
}

func TestUpstreamRequest_EmptyBody(t *testing.T) {
	err := UpstreamRequest("status", 500, "")
	if _, ok := err.Details["upstream_body"]; ok {
		t.Error("empty upstream body should not appear in details")
	}
}

func TestContractViolation_NotRetryable(t *testing.T) {
	err := ContractViolation("submit", "no job id recoverable")
	if err.Retryable {
		t.Error("contract violations must not be retryable")
	}
}

func TestConfiguration_NotRetryable(t *testing.T) {
	err := Configuration("speech.key", "value is required")
	if err.Retryable {
		t.Error("configuration errors must not be retryable")
	}
	if err.Details["setting"] != "speech.key" {
		t.Errorf("expected setting detail, got %v", err.Details)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("unexpected end of JSON input")
	err := DownloadParse("transcription", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("transcription", "abc")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed on wrapped error")
	}
	if got.Code != ErrCodeNotFound {
		t.Errorf("expected %s, got %s", ErrCodeNotFound, got.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain errors should not convert")
	}
}

func TestToResponse(t *testing.T) {
	resp := InvalidInput("minSpeakers", "must not exceed maxSpeakers").ToResponse()
	if resp.OK {
		t.Error("error responses must have ok=false")
	}
	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("expected %s, got %s", ErrCodeInvalidInput, resp.Error.Code)
	}
	if resp.Error.Details["field"] != "minSpeakers" {
		t.Errorf("expected field detail, got %v", resp.Error.Details)
	}
}
