package server

import (
	"time"

	"careerlens/internal/config"
	careerlensErrors "careerlens/internal/errors"
	"careerlens/internal/session"
	"careerlens/internal/types"
)

// AnalyzeRequest is the request body for the analyze endpoint. Resume
// text comes either inline or from a stored session.
type AnalyzeRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	ResumeText     string `json:"resumeText,omitempty"`
	JobDescription string `json:"jobDescription"`
	CompanyName    string `json:"companyName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
}

// ProfileRequest is the request body for the profile endpoint
type ProfileRequest struct {
	SessionID  string `json:"sessionId,omitempty"`
	ResumeText string `json:"resumeText,omitempty"`
}

// CoverLetterRequest is the request body for the cover-letter endpoint
type CoverLetterRequest struct {
	SessionID       string `json:"sessionId,omitempty"`
	ResumeText      string `json:"resumeText,omitempty"`
	JobDescription  string `json:"jobDescription"`
	CompanyName     string `json:"companyName,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	CompanyResearch string `json:"companyResearch,omitempty"`
}

// InterviewRequest is the request body for the interview endpoint
type InterviewRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	ResumeText     string `json:"resumeText,omitempty"`
	JobDescription string `json:"jobDescription"`
	CompanyName    string `json:"companyName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	PriorAnalysis  string `json:"priorAnalysis,omitempty"`
}

// OptimizeRequest is the request body for the optimize endpoint. The
// job description is optional: without it the audit targets general
// impact.
type OptimizeRequest struct {
	SessionID      string `json:"sessionId,omitempty"`
	ResumeText     string `json:"resumeText,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// FitRequest is the request body for the fit endpoint
type FitRequest struct {
	SessionID       string `json:"sessionId,omitempty"`
	ResumeText      string `json:"resumeText,omitempty"`
	JobDescription  string `json:"jobDescription"`
	CompanyName     string `json:"companyName,omitempty"`
	CompanyResearch string `json:"companyResearch,omitempty"`
}

// SaveJobRequest is the request body for tracking a job in a session
type SaveJobRequest struct {
	SessionID string           `json:"sessionId"`
	Job       types.JobListing `json:"job"`
	Status    string           `json:"status,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// UploadResponse is returned after a successful resume upload
type UploadResponse struct {
	SessionID  string `json:"sessionId"`
	TextLength int    `json:"textLength"`
}

// ErrorResponse represents an error response. Code and Retryable let
// clients react programmatically.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	// Full application configuration
	AppConfig *config.Config

	// API Authentication
	APIKeys map[string]bool

	// Timeout configurations
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Request size limits
	MaxRequestSize int64
	MaxUploadSize  int64

	// Rate limiting
	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	// Candidate session storage
	Sessions session.Store

	// Prompt hot reloading
	PromptWatcher *config.PromptWatcher

	// Logger
	Logger *careerlensErrors.Logger
}

// ServerConfig holds configuration for creating a Server instance
type ServerConfig struct {
	Host           string
	Port           string
	Version        string
	APIKeys        []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxRequestSize int64
	MaxUploadSize  int64
	RateLimit      *config.RateLimitConfig
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(appCfg *config.Config, cfg ServerConfig, logger *careerlensErrors.Logger) *Server {
	// Convert API keys slice to map for O(1) lookup
	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit != nil && cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(
			cfg.RateLimit.RequestsPerMin,
			cfg.RateLimit.Window,
			cfg.RateLimit.BurstCapacity,
			logger,
		)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        cfg.Version,
		AppConfig:      appCfg,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: cfg.MaxRequestSize,
		MaxUploadSize:  cfg.MaxUploadSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		Sessions:       session.NewMemoryStore(),
		Logger:         logger,
	}
}
