package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteErrorEnvelope(rec, http.StatusBadRequest, CodeBadRequest, "bad input", map[string]any{"email": "invalid"}, "trace-1")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}

	if env.Code != CodeBadRequest || env.Message != "bad input" || env.TraceID != "trace-1" {
		t.Errorf("unexpected envelope: %+v", env)
	}

	if env.Details["email"] != "invalid" {
		t.Errorf("expected email detail, got %v", env.Details)
	}
}

func TestWriteErrorEnvelope_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusNotFound, "not found")

	body := rec.Body.String()
	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if _, ok := decoded["details"]; ok {
		t.Errorf("empty details must be omitted: %s", body)
	}

	if _, ok := decoded["trace_id"]; ok {
		t.Errorf("empty trace_id must be omitted: %s", body)
	}
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name     string
		headers  map[string]string
		remote   string
		expected string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "10.0.0.1"}, "192.168.1.1:1234", "10.0.0.1"},
		{"x-forwarded-for first hop", map[string]string{"X-Forwarded-For": "10.0.0.2, 10.0.0.3"}, "192.168.1.1:1234", "10.0.0.2"},
		{"remote addr fallback", nil, "192.168.1.1:1234", "192.168.1.1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tc.expected {
				t.Errorf("GetClientIP() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestRequireMethod(t *testing.T) {
	handler := RequireMethod(http.MethodPost)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for POST, got %d", rec.Code)
	}
}
