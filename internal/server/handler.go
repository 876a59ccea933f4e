package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"careerlens/internal/ai"
	"careerlens/internal/config"
	careerlensErrors "careerlens/internal/errors"
	"careerlens/internal/observability"
	"careerlens/internal/session"
	"careerlens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// statusFromError maps application error codes to HTTP status codes.
// Upstream model failures surface as 502 so callers can distinguish
// them from our own 500s.
func statusFromError(err error) int {
	switch careerlensErrors.CodeOf(err) {
	case careerlensErrors.ErrCodeInvalidRequest:
		return http.StatusUnprocessableEntity
	case careerlensErrors.ErrCodeUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	case careerlensErrors.ErrCodeExtractionFailed:
		return http.StatusUnprocessableEntity
	case careerlensErrors.ErrCodeSessionNotFound:
		return http.StatusNotFound
	case careerlensErrors.ErrCodeProviderUnavailable:
		return http.StatusServiceUnavailable
	case careerlensErrors.ErrCodeProviderError,
		careerlensErrors.ErrCodeNoJSONFound,
		careerlensErrors.ErrCodeMalformedJSON:
		return http.StatusBadGateway
	}

	if appErr, ok := err.(*careerlensErrors.AppError); ok {
		switch appErr.Type {
		case careerlensErrors.ErrorTypeValidation:
			return http.StatusBadRequest
		case careerlensErrors.ErrorTypeSession:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

// writeAppError writes an application error with its stable code and
// retryable flag
func writeAppError(w http.ResponseWriter, summary string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFromError(err))

	response := ErrorResponse{
		Error:     summary,
		Code:      careerlensErrors.CodeOf(err),
		Message:   err.Error(),
		Retryable: careerlensErrors.IsRetryable(err),
	}
	_ = json.NewEncoder(w).Encode(response)
}

// resolveResumeText returns the resume text for a request: the stored
// session text when a session ID is supplied, the inline text otherwise.
func (s *Server) resolveResumeText(sessionID, inline string) (string, error) {
	if sessionID != "" {
		sess, err := s.Sessions.Get(sessionID)
		if err != nil {
			return "", err
		}
		if sess.ResumeText == "" {
			return "", careerlensErrors.NewValidationError(careerlensErrors.ErrCodeInvalidRequest,
				"Session has no resume text", nil).WithContext("session_id", sessionID)
		}
		return sess.ResumeText, nil
	}

	if strings.TrimSpace(inline) == "" {
		return "", careerlensErrors.NewValidationError(careerlensErrors.ErrCodeInvalidRequest,
			"Either resumeText or sessionId is required", nil)
	}
	return inline, nil
}

// newOperationService builds the AI service for one operation
func (s *Server) newOperationService(operation string) (*ai.Service, config.OperationAIConfig, error) {
	opConfig, err := s.AppConfig.GetOperationConfig(operation)
	if err != nil {
		return nil, opConfig, err
	}
	svc, err := ai.NewService(&opConfig, ai.TemplateKind(operation), s.Logger)
	return svc, opConfig, err
}

// createAnalyzeHandler wraps the match-analysis handler with observability
func (s *Server) createAnalyzeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		var req AnalyzeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "analyze"),
		)

		aiService, _, err := s.newOperationService(config.OpAnalyze)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.MatchAnalysis
		err = metrics.TrackAIOperationWithTokens(ctx, "analyze", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.AnalyzeMatch(ctx, ai.AnalyzeMatchInput{
				ResumeText:     resumeText,
				JobDescription: req.JobDescription,
				CompanyName:    req.CompanyName,
				JobTitle:       req.JobTitle,
			})
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "ai_processing"))
			metrics.RecordBusinessMetric(ctx, observability.MetricMatchAnalyzed, false, om,
				attribute.String("error_code", careerlensErrors.CodeOf(err)))
			writeAppError(w, "Failed to analyze match", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricMatchAnalyzed, true, om,
			attribute.Int("overall_score", result.OverallScore),
			attribute.String("verdict", result.Verdict))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("overall_score", result.OverallScore),
			attribute.String("verdict", result.Verdict),
		)

		writeJSONResponse(w, result)
	}
}

// createProfileHandler wraps the profile-extraction handler with
// observability. When the request carries a session ID the extracted
// profile is stored back on the session.
func (s *Server) createProfileHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.profile")
		defer span.End()

		var req ProfileRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.String("operation", "profile"),
		)

		aiService, _, err := s.newOperationService(config.OpProfile)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.ExtractedProfile
		err = metrics.TrackAIOperationWithTokens(ctx, "profile", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.ExtractProfile(ctx, resumeText)
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricProfileExtracted, false, om)
			writeAppError(w, "Failed to extract profile", err)
			return
		}

		// Persist the profile on the session for later operations
		if req.SessionID != "" {
			s.Sessions.Update(req.SessionID, session.Patch{Profile: &result})
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricProfileExtracted, true, om,
			attribute.String("experience_level", result.ExperienceLevel))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("experience_level", result.ExperienceLevel),
		)

		writeJSONResponse(w, result)
	}
}

// createCoverLetterHandler wraps the cover-letter handler with observability
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.coverletter")
		defer span.End()

		var req CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "coverletter"),
		)

		aiService, _, err := s.newOperationService(config.OpCoverLetter)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.CoverLetter
		err = metrics.TrackAIOperationWithTokens(ctx, "coverletter", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.GenerateCoverLetter(ctx, ai.CoverLetterInput{
				ResumeText:      resumeText,
				JobDescription:  req.JobDescription,
				CompanyName:     req.CompanyName,
				JobTitle:        req.JobTitle,
				CompanyResearch: req.CompanyResearch,
			})
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricCoverLetterGenerated, false, om)
			writeAppError(w, "Failed to generate cover letter", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricCoverLetterGenerated, true, om,
			attribute.Int("letter_length", len(result.CoverLetter)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.letter_length", len(result.CoverLetter)),
		)

		writeJSONResponse(w, result)
	}
}

// createInterviewHandler wraps the interview-prep handler with observability
func (s *Server) createInterviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.interview")
		defer span.End()

		var req InterviewRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "interview"),
		)

		aiService, _, err := s.newOperationService(config.OpInterview)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.InterviewPrep
		err = metrics.TrackAIOperationWithTokens(ctx, "interview", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.PrepareInterview(ctx, ai.InterviewInput{
				ResumeText:     resumeText,
				JobDescription: req.JobDescription,
				CompanyName:    req.CompanyName,
				JobTitle:       req.JobTitle,
				PriorAnalysis:  req.PriorAnalysis,
			})
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricInterviewPrepared, false, om)
			writeAppError(w, "Failed to prepare interview", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricInterviewPrepared, true, om,
			attribute.Int("question_count", len(result.Questions)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("question_count", len(result.Questions)),
		)

		writeJSONResponse(w, result)
	}
}

// createOptimizeHandler wraps the resume-optimization handler with observability
func (s *Server) createOptimizeHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.optimize")
		defer span.End()

		var req OptimizeRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Bool("request.targeted", req.JobDescription != ""),
			attribute.String("operation", "optimize"),
		)

		aiService, _, err := s.newOperationService(config.OpOptimize)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.ResumeOptimization
		err = metrics.TrackAIOperationWithTokens(ctx, "optimize", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.OptimizeResume(ctx, ai.OptimizeInput{
				ResumeText:     resumeText,
				JobDescription: req.JobDescription,
			})
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricResumeOptimized, false, om)
			writeAppError(w, "Failed to optimize resume", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricResumeOptimized, true, om,
			attribute.Int("overall_score", result.OverallScore),
			attribute.Int("section_count", len(result.Sections)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("overall_score", result.OverallScore),
		)

		writeJSONResponse(w, result)
	}
}

// createFitHandler wraps the company-fit handler with observability
func (s *Server) createFitHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("careerlens.api")
		ctx, span := tracer.Start(ctx, "api.fit")
		defer span.End()

		var req FitRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		resumeText, err := s.resolveResumeText(req.SessionID, req.ResumeText)
		if err != nil {
			span.RecordError(err)
			writeAppError(w, "Cannot resolve resume text", err)
			return
		}

		span.SetAttributes(
			attribute.Int("request.resume_length", len(resumeText)),
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "fit"),
		)

		aiService, _, err := s.newOperationService(config.OpFit)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeAppError(w, "Failed to create AI service", err)
			return
		}

		metrics := om.GetMetrics()
		var result types.CompanyFit
		err = metrics.TrackAIOperationWithTokens(ctx, "fit", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.ScoreCompanyFit(ctx, ai.FitInput{
				ResumeText:      resumeText,
				JobDescription:  req.JobDescription,
				CompanyName:     req.CompanyName,
				CompanyResearch: req.CompanyResearch,
			})
			result = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.RecordError(err)
			metrics.RecordBusinessMetric(ctx, observability.MetricFitScored, false, om)
			writeAppError(w, "Failed to score company fit", err)
			return
		}

		metrics.RecordBusinessMetric(ctx, observability.MetricFitScored, true, om,
			attribute.Int("fit_score", result.Score),
			attribute.String("fit_status", result.Status))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("fit_score", result.Score),
			attribute.String("fit_status", result.Status),
		)

		writeJSONResponse(w, result)
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), observability.MetricRateLimitHit, true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
