package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	careerlensErrors "careerlens/internal/errors"
	"careerlens/internal/observability"
	"careerlens/internal/session"
	"careerlens/internal/types"
)

func testServer() *Server {
	return &Server{
		APIKeys:  map[string]bool{"test-key-12345678": true},
		Sessions: session.NewMemoryStore(),
		Logger:   careerlensErrors.NewLogger(slog.LevelError),
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := testServer()

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
	}{
		{
			name:       "missing key",
			headers:    nil,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid key",
			headers:    map[string]string{"X-API-Key": "wrong-key"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid key in header",
			headers:    map[string]string{"X-API-Key": "test-key-12345678"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			headers:    map[string]string{"Authorization": "Bearer test-key-12345678"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed authorization header",
			headers:    map[string]string{"Authorization": "test-key-12345678"},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAuthMiddlewareSkippedWithoutKeys(t *testing.T) {
	s := testServer()
	s.APIKeys = map[string]bool{}

	handler := s.authMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid request",
			err:  careerlensErrors.NewValidationError(careerlensErrors.ErrCodeInvalidRequest, "too short", nil),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "session not found",
			err:  careerlensErrors.NewSessionError(careerlensErrors.ErrCodeSessionNotFound, "no such session", nil),
			want: http.StatusNotFound,
		},
		{
			name: "provider unavailable",
			err:  careerlensErrors.NewProviderError(careerlensErrors.ErrCodeProviderUnavailable, "breaker open", nil),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "provider error",
			err:  careerlensErrors.NewProviderError(careerlensErrors.ErrCodeProviderError, "model failed", nil),
			want: http.StatusBadGateway,
		},
		{
			name: "no JSON in response",
			err:  careerlensErrors.NewParseError(careerlensErrors.ErrCodeNoJSONFound, "prose only", nil),
			want: http.StatusBadGateway,
		},
		{
			name: "extraction failed",
			err:  careerlensErrors.NewExtractionError(careerlensErrors.ErrCodeExtractionFailed, "corrupt pdf", nil),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported format",
			err:  careerlensErrors.NewExtractionError(careerlensErrors.ErrCodeUnsupportedFormat, "no handler", nil),
			want: http.StatusUnsupportedMediaType,
		},
		{
			name: "generic validation",
			err:  careerlensErrors.NewValidationError(careerlensErrors.ErrCodeInvalidFormat, "bad format", nil),
			want: http.StatusBadRequest,
		},
		{
			name: "plain error",
			err:  http.ErrBodyNotAllowed,
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusFromError(tt.err); got != tt.want {
				t.Errorf("statusFromError() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveResumeText(t *testing.T) {
	s := testServer()
	s.Sessions.Set(&session.Session{ID: "sess-1", ResumeText: "stored resume"})
	s.Sessions.Set(&session.Session{ID: "sess-empty"})

	tests := []struct {
		name      string
		sessionID string
		inline    string
		want      string
		wantErr   bool
		wantCode  string
	}{
		{
			name:      "session text wins",
			sessionID: "sess-1",
			inline:    "inline resume",
			want:      "stored resume",
		},
		{
			name:   "inline text",
			inline: "inline resume",
			want:   "inline resume",
		},
		{
			name:      "unknown session",
			sessionID: "missing",
			wantErr:   true,
			wantCode:  careerlensErrors.ErrCodeSessionNotFound,
		},
		{
			name:      "session without resume",
			sessionID: "sess-empty",
			wantErr:   true,
			wantCode:  careerlensErrors.ErrCodeInvalidRequest,
		},
		{
			name:     "neither provided",
			inline:   "   ",
			wantErr:  true,
			wantCode: careerlensErrors.ErrCodeInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.resolveResumeText(tt.sessionID, tt.inline)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if code := careerlensErrors.CodeOf(err); code != tt.wantCode {
					t.Errorf("error code = %q, want %q", code, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resume text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		byAPIKey bool
		byIP     bool
		headers  map[string]string
		remote   string
		want     string
	}{
		{
			name:     "api key preferred",
			byAPIKey: true,
			byIP:     true,
			headers:  map[string]string{"X-API-Key": "abc"},
			remote:   "10.0.0.1:1234",
			want:     "api:abc",
		},
		{
			name:     "bearer token as api key",
			byAPIKey: true,
			headers:  map[string]string{"Authorization": "Bearer xyz"},
			remote:   "10.0.0.1:1234",
			want:     "api:xyz",
		},
		{
			name:   "falls back to ip",
			byIP:   true,
			remote: "10.0.0.1:1234",
			want:   "ip:10.0.0.1",
		},
		{
			name:     "no key without headers when ip disabled",
			byAPIKey: true,
			remote:   "10.0.0.1:1234",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getRateLimitKey(req, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{
			name:    "x-forwarded-for first ip",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			remote:  "192.168.1.1:5000",
			want:    "203.0.113.5",
		},
		{
			name:    "x-forwarded-for skips garbage",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip, 203.0.113.5"},
			remote:  "192.168.1.1:5000",
			want:    "203.0.113.5",
		},
		{
			name:    "x-real-ip",
			headers: map[string]string{"X-Real-IP": "203.0.113.9"},
			remote:  "192.168.1.1:5000",
			want:    "203.0.113.9",
		},
		{
			name:   "remote addr",
			remote: "192.168.1.1:5000",
			want:   "192.168.1.1",
		},
		{
			name:   "remote addr without port",
			remote: "192.168.1.1",
			want:   "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "****"},
		{"12345678", "****"},
		{"123456789abcdef", "12345678****"},
	}

	for _, tt := range tests {
		if got := maskAPIKey(tt.key); got != tt.want {
			t.Errorf("maskAPIKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(60, 0, 2, careerlensErrors.NewLogger(slog.LevelError))
	defer rl.Close()

	// Burst of 2 is allowed, the third immediate request is not
	if !rl.Allow("key") {
		t.Error("first request should be allowed")
	}
	if !rl.Allow("key") {
		t.Error("second request should be allowed within burst")
	}
	if rl.Allow("key") {
		t.Error("third immediate request should be rejected")
	}

	// Independent keys get their own bucket
	if !rl.Allow("other") {
		t.Error("different key should have its own limiter")
	}
}

func TestSaveJobHandler(t *testing.T) {
	om, err := observability.NewObservabilityManager(observability.ObservabilityConfig{Enabled: false}, nil)
	if err != nil {
		t.Fatalf("NewObservabilityManager() error = %v", err)
	}

	s := testServer()
	s.Sessions.Set(&session.Session{ID: "sess-1", ResumeText: "stored resume"})
	handler := s.createSaveJobHandler(om)

	saveJob := func(t *testing.T, req SaveJobRequest) *httptest.ResponseRecorder {
		t.Helper()
		body, err := json.Marshal(req)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		httpReq := httptest.NewRequest(http.MethodPost, "/jobs/save", bytes.NewReader(body))
		httpReq.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		handler(rec, httpReq)
		return rec
	}

	job := types.JobListing{ID: "job-1", Title: "Backend Engineer", Company: "Acme"}

	rec := saveJob(t, SaveJobRequest{SessionID: "sess-1", Job: job})
	if rec.Code != http.StatusOK {
		t.Fatalf("first save status = %d, want %d", rec.Code, http.StatusOK)
	}

	sess, err := s.Sessions.Get("sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(sess.SavedJobs) != 1 {
		t.Fatalf("saved jobs = %d, want 1", len(sess.SavedJobs))
	}
	if sess.SavedJobs[0].Status != types.JobStatusSaved {
		t.Errorf("status = %q, want %q", sess.SavedJobs[0].Status, types.JobStatusSaved)
	}
	firstSavedAt := sess.SavedJobs[0].SavedAt

	// Re-saving the same job id updates the entry instead of duplicating it
	rec = saveJob(t, SaveJobRequest{SessionID: "sess-1", Job: job, Status: types.JobStatusApplied, Notes: "sent 2026-08-23"})
	if rec.Code != http.StatusOK {
		t.Fatalf("second save status = %d, want %d", rec.Code, http.StatusOK)
	}

	sess, err = s.Sessions.Get("sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(sess.SavedJobs) != 1 {
		t.Fatalf("saved jobs after re-save = %d, want 1", len(sess.SavedJobs))
	}
	if sess.SavedJobs[0].Status != types.JobStatusApplied {
		t.Errorf("status = %q, want %q", sess.SavedJobs[0].Status, types.JobStatusApplied)
	}
	if sess.SavedJobs[0].Notes != "sent 2026-08-23" {
		t.Errorf("notes = %q, want updated notes", sess.SavedJobs[0].Notes)
	}
	if !sess.SavedJobs[0].SavedAt.Equal(firstSavedAt) {
		t.Errorf("SavedAt changed on update: %v, want %v", sess.SavedJobs[0].SavedAt, firstSavedAt)
	}

	// A different job id is appended
	rec = saveJob(t, SaveJobRequest{SessionID: "sess-1", Job: types.JobListing{ID: "job-2", Title: "SRE"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("third save status = %d, want %d", rec.Code, http.StatusOK)
	}

	sess, err = s.Sessions.Get("sess-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(sess.SavedJobs) != 2 {
		t.Fatalf("saved jobs after second id = %d, want 2", len(sess.SavedJobs))
	}

	t.Run("invalid status rejected", func(t *testing.T) {
		rec := saveJob(t, SaveJobRequest{SessionID: "sess-1", Job: job, Status: "ghosted"})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		rec := saveJob(t, SaveJobRequest{SessionID: "missing", Job: job})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := requestIDMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler(rec, req)

		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected generated X-Request-ID header")
		}
	})

	t.Run("keeps client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "client-id-1")
		rec := httptest.NewRecorder()
		handler(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != "client-id-1" {
			t.Errorf("X-Request-ID = %q, want client-id-1", got)
		}
	})
}
