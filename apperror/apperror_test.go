package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *AppError
		want int
	}{
		{NewDatabaseError("db", nil), http.StatusInternalServerError},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
		{NewAuthError("no token", nil), http.StatusUnauthorized},
		{NewUnauthorizedError("not yours", nil), http.StatusForbidden},
		{NewNotFoundError("missing", nil), http.StatusNotFound},
		{NewValidationError("Missing field", "username"), http.StatusUnprocessableEntity},
		{NewBadRequestError("bad", nil), http.StatusBadRequest},
		{NewAppError(UnknownError, "?", nil), http.StatusInternalServerError},
	}

	for _, c := range cases {
		if got := c.err.StatusCode(); got != c.want {
			t.Errorf("StatusCode for type %d: got %d want %d", c.err.Type, got, c.want)
		}
	}
}

func TestValidationEnvelope(t *testing.T) {
	t.Parallel()

	resp := NewValidationError("Missing field", "password").ToResponse()
	if resp.Code != 422 || resp.Reason != "ValidationError" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Location != "password" {
		t.Fatalf("location: got %q want %q", resp.Location, "password")
	}
	if resp.Message != "Missing field" {
		t.Fatalf("message: got %q", resp.Message)
	}
}

func TestGenericEnvelopeHidesInternalDetail(t *testing.T) {
	t.Parallel()

	resp := NewDatabaseError("Internal server error", errors.New("pq: connection refused")).ToResponse()
	if resp.Message != "Internal server error" {
		t.Fatalf("message: got %q", resp.Message)
	}
	if resp.Code != 0 || resp.Reason != "" || resp.Location != "" {
		t.Fatalf("generic envelope must only carry message, got %+v", resp)
	}
}

func TestFromErrorUnwrapsChain(t *testing.T) {
	t.Parallel()

	inner := NewNotFoundError("shoot not found", nil)
	wrapped := fmt.Errorf("service: %w", inner)

	ae, ok := FromError(wrapped)
	if !ok {
		t.Fatalf("FromError should find the AppError in the chain")
	}
	if ae.Type != NotFoundError {
		t.Fatalf("type: got %d want NotFoundError", ae.Type)
	}
	if !IsNotFound(wrapped) {
		t.Fatalf("IsNotFound should be true for wrapped error")
	}
	if IsValidationError(wrapped) {
		t.Fatalf("IsValidationError should be false")
	}
}

func TestFromErrorPlainError(t *testing.T) {
	t.Parallel()

	if _, ok := FromError(errors.New("plain")); ok {
		t.Fatalf("plain error must not convert")
	}
	if _, ok := FromError(nil); ok {
		t.Fatalf("nil error must not convert")
	}
}
