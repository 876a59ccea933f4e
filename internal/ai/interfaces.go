package ai

import (
	"context"
)

// CompletionConfig carries the per-call generation parameters
type CompletionConfig struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// AIProvider is the gateway to one LLM backend. Complete performs a single
// best-effort completion and returns the raw response text: no internal
// retry, no response parsing. Retrying is a caller decision.
type AIProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, cfg CompletionConfig) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	GetCircuitBreakerStats() map[string]any
	Close() error
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
