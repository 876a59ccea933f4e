package ai

import (
	"context"
	"fmt"
	"unicode/utf8"

	"careerlens/internal/config"
	"careerlens/internal/errors"
	"careerlens/internal/schema"
	"careerlens/internal/types"
)

// MinJobDescriptionChars is the shortest job description worth analyzing.
// Anything shorter is rejected before a provider call is made.
const MinJobDescriptionChars = 50

// Service runs one AI-backed operation: it builds the prompt, calls the
// provider, extracts and normalizes the JSON response, and decodes it
// into the canonical result type.
type Service struct {
	Provider  AIProvider // Exported for access from server package
	config    *config.OperationAIConfig
	operation TemplateKind
	logger    *errors.Logger
}

// NewService creates a new AI service instance for a specific operation
func NewService(cfg *config.OperationAIConfig, operation TemplateKind, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation", string(operation),
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, string(operation), logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, err
	}

	return &Service{
		Provider:  provider,
		config:    cfg,
		operation: operation,
		logger:    logger,
	}, nil
}

// NewServiceWithProvider wires an existing provider, used by tests
func NewServiceWithProvider(provider AIProvider, cfg *config.OperationAIConfig, operation TemplateKind, logger *errors.Logger) *Service {
	return &Service{
		Provider:  provider,
		config:    cfg,
		operation: operation,
		logger:    logger,
	}
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}

// Operation returns the template kind this service runs
func (s *Service) Operation() TemplateKind {
	return s.operation
}

// Close releases the underlying provider
func (s *Service) Close() error {
	return s.Provider.Close()
}

// AnalyzeMatchInput carries the inputs for a match analysis
type AnalyzeMatchInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	CompanyName    string `json:"companyName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
}

// CoverLetterInput carries the inputs for cover letter generation
type CoverLetterInput struct {
	ResumeText      string `json:"resumeText"`
	JobDescription  string `json:"jobDescription"`
	CompanyName     string `json:"companyName,omitempty"`
	JobTitle        string `json:"jobTitle,omitempty"`
	CompanyResearch string `json:"companyResearch,omitempty"`
}

// InterviewInput carries the inputs for interview preparation
type InterviewInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	CompanyName    string `json:"companyName,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	PriorAnalysis  string `json:"priorAnalysis,omitempty"`
}

// OptimizeInput carries the inputs for a resume audit. The job
// description is optional here: without one the audit targets general
// impact rather than a specific role.
type OptimizeInput struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// FitInput carries the inputs for company-fit scoring
type FitInput struct {
	ResumeText      string `json:"resumeText"`
	JobDescription  string `json:"jobDescription"`
	CompanyName     string `json:"companyName,omitempty"`
	CompanyResearch string `json:"companyResearch,omitempty"`
}

// AnalyzeMatch scores a resume against a job description
func (s *Service) AnalyzeMatch(ctx context.Context, input AnalyzeMatchInput) (types.MatchAnalysis, *TokenUsage, error) {
	if err := validateJobDescription(input.JobDescription); err != nil {
		return types.MatchAnalysis{}, nil, err
	}
	return runPipeline[types.MatchAnalysis](ctx, s, Fields{
		ResumeText:     input.ResumeText,
		JobDescription: input.JobDescription,
		CompanyName:    input.CompanyName,
		JobTitle:       input.JobTitle,
	}, schema.MatchAnalysisSchema)
}

// ExtractProfile parses resume text into a structured candidate profile
func (s *Service) ExtractProfile(ctx context.Context, resumeText string) (types.ExtractedProfile, *TokenUsage, error) {
	return runPipeline[types.ExtractedProfile](ctx, s, Fields{
		ResumeText: resumeText,
	}, schema.ExtractedProfileSchema)
}

// GenerateCoverLetter writes a tailored cover letter
func (s *Service) GenerateCoverLetter(ctx context.Context, input CoverLetterInput) (types.CoverLetter, *TokenUsage, error) {
	if err := validateJobDescription(input.JobDescription); err != nil {
		return types.CoverLetter{}, nil, err
	}
	return runPipeline[types.CoverLetter](ctx, s, Fields{
		ResumeText:      input.ResumeText,
		JobDescription:  input.JobDescription,
		CompanyName:     input.CompanyName,
		JobTitle:        input.JobTitle,
		CompanyResearch: input.CompanyResearch,
	}, schema.CoverLetterSchema)
}

// PrepareInterview produces tailored interview questions and answers
func (s *Service) PrepareInterview(ctx context.Context, input InterviewInput) (types.InterviewPrep, *TokenUsage, error) {
	if err := validateJobDescription(input.JobDescription); err != nil {
		return types.InterviewPrep{}, nil, err
	}
	return runPipeline[types.InterviewPrep](ctx, s, Fields{
		ResumeText:     input.ResumeText,
		JobDescription: input.JobDescription,
		CompanyName:    input.CompanyName,
		JobTitle:       input.JobTitle,
		PriorAnalysis:  input.PriorAnalysis,
	}, schema.InterviewPrepSchema)
}

// OptimizeResume audits a resume section by section
func (s *Service) OptimizeResume(ctx context.Context, input OptimizeInput) (types.ResumeOptimization, *TokenUsage, error) {
	return runPipeline[types.ResumeOptimization](ctx, s, Fields{
		ResumeText:     input.ResumeText,
		JobDescription: input.JobDescription,
	}, schema.ResumeOptimizationSchema)
}

// ScoreCompanyFit scores cultural and strategic fit with a company
func (s *Service) ScoreCompanyFit(ctx context.Context, input FitInput) (types.CompanyFit, *TokenUsage, error) {
	if err := validateJobDescription(input.JobDescription); err != nil {
		return types.CompanyFit{}, nil, err
	}
	return runPipeline[types.CompanyFit](ctx, s, Fields{
		ResumeText:      input.ResumeText,
		JobDescription:  input.JobDescription,
		CompanyName:     input.CompanyName,
		CompanyResearch: input.CompanyResearch,
	}, schema.CompanyFitSchema)
}

func validateJobDescription(jd string) error {
	if utf8.RuneCountInString(jd) < MinJobDescriptionChars {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("Job description must be at least %d characters", MinJobDescriptionChars), nil).
			WithContext("job_description_length", utf8.RuneCountInString(jd))
	}
	return nil
}

// runPipeline drives one operation end to end: build the prompt, call the
// provider once, extract and normalize the JSON, decode the result.
// Extraction failures are the one retried step (the same prompt can yield
// parseable output on a fresh completion); provider failures are final.
func runPipeline[Out any](ctx context.Context, s *Service, f Fields, sch schema.Schema) (Out, *TokenUsage, error) {
	var zero Out

	systemPrompt := s.resolveSystemPrompt()
	userPrompt := BuildPrompt(s.operation, s.resolveUserPrompt(), f)

	cc := CompletionConfig{
		Model:       s.config.Model,
		Temperature: *s.config.Temperature,
	}
	if s.config.MaxOutputTokens != nil {
		cc.MaxOutputTokens = *s.config.MaxOutputTokens
	}

	total := &TokenUsage{}
	sawUsage := false
	attempts := 1 + *s.config.MaxRetries

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		raw, usage, err := s.Provider.Complete(ctx, systemPrompt, userPrompt, cc)
		if usage != nil {
			sawUsage = true
			total.InputTokens += usage.InputTokens
			total.OutputTokens += usage.OutputTokens
			total.TotalTokens += usage.TotalTokens
		}
		if err != nil {
			return zero, usageOrNil(total, sawUsage), err
		}

		parsed, err := ExtractJSON(raw, ShapeObject)
		if err != nil {
			lastErr = err
			s.logger.Warn("Response extraction failed",
				"operation", string(s.operation),
				"attempt", attempt,
				"max_attempts", attempts,
				"error_code", errors.CodeOf(err))
			continue
		}

		out, err := schema.Decode[Out](sch.Normalize(parsed))
		if err != nil {
			return zero, usageOrNil(total, sawUsage), err
		}
		return out, usageOrNil(total, sawUsage), nil
	}

	return zero, usageOrNil(total, sawUsage), lastErr
}

func usageOrNil(total *TokenUsage, sawUsage bool) *TokenUsage {
	if !sawUsage {
		return nil
	}
	return total
}

func (s *Service) resolveSystemPrompt() string {
	loaded := config.GetPromptsForOperation(string(s.operation))
	return resolvePrompt(loaded.System, s.config.CustomPrompts.System, DefaultSystemPrompts[s.operation])
}

func (s *Service) resolveUserPrompt() string {
	loaded := config.GetPromptsForOperation(string(s.operation))
	return resolvePrompt(loaded.User, s.config.CustomPrompts.User, DefaultUserPrompts[s.operation])
}
