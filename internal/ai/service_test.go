package ai

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"careerlens/internal/config"
	appErrors "careerlens/internal/errors"
)

// fakeProvider returns scripted responses in order, recording each call
type fakeProvider struct {
	responses []string
	err       error
	usage     *TokenUsage
	calls     int
}

func (f *fakeProvider) Complete(_ context.Context, _, _ string, _ CompletionConfig) (string, *TokenUsage, error) {
	f.calls++
	if f.err != nil {
		return "", nil, f.err
	}
	idx := f.calls - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], f.usage, nil
}

func (f *fakeProvider) GetModelInfo(context.Context) *ModelInfo {
	return &ModelInfo{Name: "fake", Available: true}
}

func (f *fakeProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{"enabled": false}
}

func (f *fakeProvider) Close() error { return nil }

func testService(t *testing.T, provider AIProvider, operation TemplateKind) *Service {
	t.Helper()

	timeout := 5 * time.Second
	retries := 2
	temp := float32(0.2)
	maxTokens := int32(0)
	use := true
	cfg := &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "test-model",
		Timeout:          &timeout,
		MaxRetries:       &retries,
		Temperature:      &temp,
		MaxOutputTokens:  &maxTokens,
		UseSystemPrompts: &use,
	}
	logger := appErrors.NewLogger(slog.LevelError)
	return NewServiceWithProvider(provider, cfg, operation, logger)
}

const validJobDescription = "We are hiring a senior Go engineer to build our payments platform in Amsterdam."

func TestAnalyzeMatchHappyPath(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{`Here is the analysis:
{"overallScore": 137, "verdict": "good_match", "strengths": ["Go", "Kubernetes"], "bottomLine": "Apply."}`},
		usage: &TokenUsage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}
	svc := testService(t, provider, KindAnalyze)

	result, usage, err := svc.AnalyzeMatch(context.Background(), AnalyzeMatchInput{
		ResumeText:     "ten years of Go",
		JobDescription: validJobDescription,
	})
	if err != nil {
		t.Fatalf("AnalyzeMatch() error = %v", err)
	}

	if result.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want clamped 100", result.OverallScore)
	}
	if result.Verdict != "good_match" {
		t.Errorf("Verdict = %q", result.Verdict)
	}
	// Absent fields are fully defaulted, never nil
	if result.Dealbreakers == nil || result.ActionPlan == nil {
		t.Error("absent list fields must decode as empty slices")
	}
	if usage == nil || usage.TotalTokens != 150 {
		t.Errorf("usage = %+v, want 150 total tokens", usage)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.calls)
	}
}

func TestPipelineRetriesOnParseFailure(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{
			"I am sorry, I cannot help with that.",
			`{"score": 82, "status": "strong_fit", "rationale": "Stack overlap."}`,
		},
		usage: &TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	}
	svc := testService(t, provider, KindFit)

	result, usage, err := svc.ScoreCompanyFit(context.Background(), FitInput{
		ResumeText:     "resume",
		JobDescription: validJobDescription,
	})
	if err != nil {
		t.Fatalf("ScoreCompanyFit() error = %v", err)
	}
	if result.Score != 82 {
		t.Errorf("Score = %d, want 82", result.Score)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
	// Token usage accumulates across attempts
	if usage == nil || usage.TotalTokens != 30 {
		t.Errorf("usage = %+v, want 30 total tokens across attempts", usage)
	}
}

func TestPipelineExhaustsParseRetries(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{"no json here at all"},
	}
	svc := testService(t, provider, KindFit)

	_, _, err := svc.ScoreCompanyFit(context.Background(), FitInput{
		ResumeText:     "resume",
		JobDescription: validJobDescription,
	})
	if appErrors.CodeOf(err) != appErrors.ErrCodeNoJSONFound {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeNoJSONFound)
	}
	// MaxRetries=2 means three attempts total
	if provider.calls != 3 {
		t.Errorf("provider calls = %d, want 3", provider.calls)
	}
}

func TestPipelineDoesNotRetryProviderErrors(t *testing.T) {
	provider := &fakeProvider{
		err: appErrors.NewProviderError(appErrors.ErrCodeProviderError, "upstream 500", nil).WithRetryable(true),
	}
	svc := testService(t, provider, KindFit)

	_, _, err := svc.ScoreCompanyFit(context.Background(), FitInput{
		ResumeText:     "resume",
		JobDescription: validJobDescription,
	})
	if appErrors.CodeOf(err) != appErrors.ErrCodeProviderError {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeProviderError)
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (provider errors are final)", provider.calls)
	}
}

func TestJobDescriptionGate(t *testing.T) {
	tests := []struct {
		name    string
		jd      string
		wantErr bool
	}{
		{"49 characters rejected", strings.Repeat("a", 49), true},
		{"50 characters accepted", strings.Repeat("a", 50), false},
		{"empty rejected", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{
				responses: []string{`{"overallScore": 50}`},
			}
			svc := testService(t, provider, KindAnalyze)

			_, _, err := svc.AnalyzeMatch(context.Background(), AnalyzeMatchInput{
				ResumeText:     "resume",
				JobDescription: tt.jd,
			})

			if tt.wantErr {
				if appErrors.CodeOf(err) != appErrors.ErrCodeInvalidRequest {
					t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeInvalidRequest)
				}
				if provider.calls != 0 {
					t.Errorf("provider calls = %d, want 0 (gate runs before any provider call)", provider.calls)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestOptimizeAllowsMissingJobDescription(t *testing.T) {
	provider := &fakeProvider{
		responses: []string{`{"overallScore": 60, "sections": [], "changeSummary": "Tighten the summary."}`},
	}
	svc := testService(t, provider, KindOptimize)

	result, _, err := svc.OptimizeResume(context.Background(), OptimizeInput{ResumeText: "resume"})
	if err != nil {
		t.Fatalf("OptimizeResume() error = %v", err)
	}
	if result.OverallScore != 60 {
		t.Errorf("OverallScore = %d, want 60", result.OverallScore)
	}
}

func TestExtractProfileDefaultsOnEmptyObject(t *testing.T) {
	provider := &fakeProvider{responses: []string{`{}`}}
	svc := testService(t, provider, KindProfile)

	profile, _, err := svc.ExtractProfile(context.Background(), "resume text")
	if err != nil {
		t.Fatalf("ExtractProfile() error = %v", err)
	}
	if profile.TechnicalSkills == nil || profile.SearchKeywords == nil {
		t.Error("empty model output must still decode into a fully populated profile")
	}
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	timeout := time.Second
	retries := 1
	temp := float32(0)
	use := false
	cfg := &config.OperationAIConfig{
		Provider:         "oracle",
		Timeout:          &timeout,
		MaxRetries:       &retries,
		Temperature:      &temp,
		UseSystemPrompts: &use,
	}
	logger := appErrors.NewLogger(slog.LevelError)

	_, err := NewService(cfg, KindAnalyze, logger)
	if appErrors.CodeOf(err) != appErrors.ErrCodeInvalidConfig {
		t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeInvalidConfig)
	}
}
