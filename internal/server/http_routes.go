package server

import (
	"net/http"
	"strings"

	"careerlens/internal/observability"

	"github.com/google/uuid"
)

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes(om *observability.ObservabilityManager) *http.ServeMux {
	mux := http.NewServeMux()

	// Add middleware layers with observability
	rateLimitHandler := s.createRateLimitMiddleware(om)
	requestLimitHandler := s.requestSizeLimitMiddleware()

	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return requestIDMiddleware(rateLimitHandler(s.authMiddleware(requestLimitHandler(h))))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	mux.HandleFunc("POST /analyze", protected(s.createAnalyzeHandler(om)))
	mux.HandleFunc("POST /profile", protected(s.createProfileHandler(om)))
	mux.HandleFunc("POST /coverletter", protected(s.createCoverLetterHandler(om)))
	mux.HandleFunc("POST /interview", protected(s.createInterviewHandler(om)))
	mux.HandleFunc("POST /optimize", protected(s.createOptimizeHandler(om)))
	mux.HandleFunc("POST /fit", protected(s.createFitHandler(om)))

	// Uploads skip the JSON body limit; the handler enforces its own cap
	mux.HandleFunc("POST /upload",
		requestIDMiddleware(rateLimitHandler(s.authMiddleware(s.createUploadHandler(om)))))

	mux.HandleFunc("GET /session/{id}",
		requestIDMiddleware(rateLimitHandler(s.authMiddleware(s.createGetSessionHandler(om)))))
	mux.HandleFunc("DELETE /session/{id}",
		requestIDMiddleware(rateLimitHandler(s.authMiddleware(s.createDeleteSessionHandler(om)))))
	mux.HandleFunc("POST /jobs/save", protected(s.createSaveJobHandler(om)))

	return mux
}

// requestIDMiddleware tags each request with an X-Request-ID, keeping a
// client-supplied one when present
func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		next(w, r)
	}
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next(w, r)
			return
		}

		// Check for API key in X-API-Key header
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			// Check for Bearer token in Authorization header as fallback
			authHeader := r.Header.Get("Authorization")
			if after, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
				apiKey = after
			}
		}

		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		// Validate API key
		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		// Log successful authentication
		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				// Limit the request body size
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}

			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
