package ai

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"careerlens/internal/config"
	"careerlens/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client            *genai.Client
	config            *config.OperationAIConfig
	completionBreaker *Breaker[*genai.GenerateContentResponse]
	modelBreaker      *Breaker[*genai.Model]
	logger            *errors.Logger
}

var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific
// operation. The API key is checked before any client is created so a
// missing credential surfaces as PROVIDER_UNAVAILABLE, not as a failed
// network call later.
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewProviderError(errors.ErrCodeProviderUnavailable,
			"No Gemini API key configured", nil)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewProviderError(errors.ErrCodeProviderUnavailable,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:            client,
		config:            cfg,
		completionBreaker: NewCompletionBreaker(operationType, cfg, logger),
		modelBreaker:      NewModelBreaker(operationType, cfg, logger),
		logger:            logger,
	}, nil
}

// Complete performs one completion call. A single best-effort attempt:
// transport failures come back as PROVIDER_ERROR with the retryable flag
// set from the fault class, and the caller decides whether to retry the
// whole request.
func (g *GeminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, cc CompletionConfig) (string, *TokenUsage, error) {
	tracer := otel.Tracer("careerlens.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.complete")
	defer span.End()

	model := cc.Model
	if model == "" {
		model = g.config.Model
	}

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
		attribute.Float64("ai.temperature", float64(cc.Temperature)),
		attribute.Int("ai.prompt_length", len(userPrompt)),
	)

	genaiConfig := &genai.GenerateContentConfig{}
	if cc.Temperature > 0 {
		temp := cc.Temperature
		genaiConfig.Temperature = &temp
	}
	if cc.MaxOutputTokens > 0 {
		genaiConfig.MaxOutputTokens = cc.MaxOutputTokens
	}
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	if g.config.Timeout != nil && *g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *g.config.Timeout)
		defer cancel()
	}

	result, err := g.completionBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(ctx, model, genai.Text(userPrompt), genaiConfig)
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, errors.NewProviderError(errors.ErrCodeProviderError,
			"Completion request failed", err).
			WithRetryable(isRetryableProviderError(err)).
			WithContext("model", model)
	}

	text := result.Text()
	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}
	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("ai.response_length", len(text)),
	)

	return text, tokenUsage, nil
}

// isRetryableProviderError classifies a provider fault: timeouts,
// connection failures and throttling/5xx responses may succeed on a
// fresh request; auth and invalid-input failures will not.
func isRetryableProviderError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

const modelCheckTimeout = 10 * time.Second

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.completionBreaker.Stats(),
		"model_operations": g.modelBreaker.Stats(),
	}
	stats["overall_healthy"] = g.completionBreaker.Healthy() && g.modelBreaker.Healthy()
	return stats
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
