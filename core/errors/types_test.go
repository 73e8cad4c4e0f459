package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Resource: "post", ID: "abc123"}

	expected := "post not found: abc123"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "url", Message: "cannot be empty"}

	expected := "validation error on field 'url': cannot be empty"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestFetchError_Error_WithStatusCode(t *testing.T) {
	err := &FetchError{URL: "https://example.com", StatusCode: 404}

	expected := "failed to fetch https://example.com: status 404"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &FetchError{URL: "https://example.com", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the wrapped error")
	}
}

func TestIsFetch(t *testing.T) {
	err := &FetchError{URL: "https://example.com", StatusCode: 500}

	if !IsFetch(err) {
		t.Error("IsFetch should return true for FetchError")
	}

	if IsFetch(errors.New("plain error")) {
		t.Error("IsFetch should return false for plain errors")
	}
}

func TestIsFetch_Wrapped(t *testing.T) {
	err := fmt.Errorf("pipeline failed: %w", &FetchError{URL: "https://example.com"})

	if !IsFetch(err) {
		t.Error("IsFetch should find FetchError through wrapping")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&NotFoundError{Resource: "post", ID: "1"}) {
		t.Error("IsNotFound should return true for NotFoundError")
	}

	if IsNotFound(&ValidationError{Field: "url"}) {
		t.Error("IsNotFound should return false for other error types")
	}
}

func TestIsValidation(t *testing.T) {
	if !IsValidation(&ValidationError{Field: "url", Message: "bad"}) {
		t.Error("IsValidation should return true for ValidationError")
	}

	if IsValidation(&NotFoundError{Resource: "post"}) {
		t.Error("IsValidation should return false for other error types")
	}
}

func TestIsExternalAPI(t *testing.T) {
	err := &ExternalAPIError{StatusCode: 429, Message: "rate limited", API: "openai"}

	if !IsExternalAPI(err) {
		t.Error("IsExternalAPI should return true for ExternalAPIError")
	}
}

func TestWrapError(t *testing.T) {
	inner := errors.New("boom")
	wrapped := WrapError(inner, "classify failed")

	if wrapped.Error() != "classify failed: boom" {
		t.Errorf("WrapError produced %q", wrapped.Error())
	}

	if !errors.Is(wrapped, inner) {
		t.Error("wrapped error should unwrap to inner error")
	}
}

func TestWrapError_Nil(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError should return nil for nil error")
	}
}
