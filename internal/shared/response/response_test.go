package response

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"universe-builder/internal/shared/errors"
)

func TestErrorHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stars", nil)

	Error(rec, req, slog.Default(), fmt.Errorf("dial tcp: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Error == nil {
		t.Fatalf("expected error envelope, got %+v", body)
	}
	if body.Error.Message != "internal server error" {
		t.Errorf("message = %q leaked cause", body.Error.Message)
	}
}

func TestErrorKeepsClientMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stars/900", nil)

	Error(rec, req, slog.Default(), errors.NotFoundf("star not found with id: %d", 900))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body Envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Type != errors.ErrorTypeNotFound || body.Error.Message != "star not found with id: 900" {
		t.Errorf("unexpected error body %+v", body.Error)
	}
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"stars": 3})

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
}
