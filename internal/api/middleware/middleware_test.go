package middleware

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestLoggingSkipsQuietRequests(t *testing.T) {
	tests := []struct {
		method string
		path   string
		status int
		logged bool
	}{
		{"GET", "/api/health", http.StatusOK, false},
		{"GET", "/api/health", http.StatusServiceUnavailable, true},
		{"POST", "/api/screens/home/hover", http.StatusOK, false},
		{"POST", "/api/screens/home/leave", http.StatusOK, false},
		{"POST", "/api/screens/home/hover", http.StatusBadRequest, true},
		{"POST", "/api/screens/home/open", http.StatusOK, true},
		{"GET", "/api/timesheets", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			buf := captureLog(t)
			h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))

			if got := buf.Len() > 0; got != tt.logged {
				t.Errorf("Expected logged=%v, got %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLoggingRecordsStatusAndSize(t *testing.T) {
	buf := captureLog(t)
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hello"))
		w.WriteHeader(http.StatusTeapot) // ignored, header already sent
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/notifications", nil))

	if line := buf.String(); !strings.HasPrefix(line, "GET /api/notifications 200 5 ") {
		t.Errorf("Unexpected log line %q", line)
	}
}

func TestLoggingFlagsServerErrors(t *testing.T) {
	buf := captureLog(t)
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusBadGateway, ErrUpstream, "Backend down")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/profile", nil))

	if !strings.Contains(buf.String(), "[error]") {
		t.Errorf("Expected the error flag, got %q", buf.String())
	}
}

func TestErrorRecovery(t *testing.T) {
	captureLog(t)
	h := ErrorRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/calendar/grid", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}
	if resp.Error != ErrInternalError {
		t.Errorf("Expected %s, got %s", ErrInternalError, resp.Error)
	}
}

func TestWriteErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorWithDetails(rec, http.StatusUnprocessableEntity, ErrValidation, "Please enter a title",
		map[string]string{"field": "title"})

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %q", ct)
	}
	var resp struct {
		Error   string            `json:"error"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Decoding failed: %v", err)
	}
	if resp.Error != ErrValidation || resp.Details["field"] != "title" {
		t.Errorf("Unexpected response %+v", resp)
	}
}
