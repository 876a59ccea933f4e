package ai

import (
	"fmt"

	"careerlens/internal/config"
	"careerlens/internal/errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/genai"
)

// Breaker wraps a gobreaker circuit breaker for one operation type. A nil
// Breaker is valid and means the breaker is disabled: Execute runs the
// function directly. The breaker only rejects calls, it never retries.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// NewCompletionBreaker creates the breaker guarding completion calls for
// a specific operation type. Returns nil when disabled in config.
func NewCompletionBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *Breaker[*genai.GenerateContentResponse] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	return &Breaker[*genai.GenerateContentResponse]{
		cb: gobreaker.NewCircuitBreaker[*genai.GenerateContentResponse](gobreaker.Settings{
			Name:        fmt.Sprintf("AI-%s", operationType),
			MaxRequests: cfg.CircuitBreaker.MaxRequests,
			Interval:    cfg.CircuitBreaker.Interval,
			Timeout:     cfg.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= cfg.CircuitBreaker.MinRequests &&
					failureRatio >= cfg.CircuitBreaker.FailureThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"operation_type", operationType,
					"from", from.String(),
					"to", to.String())
			},
		}),
	}
}

// NewModelBreaker creates the breaker guarding model availability checks.
// Model info is less critical, so the trip condition is more lenient.
func NewModelBreaker(operationType string, cfg *config.OperationAIConfig, logger *errors.Logger) *Breaker[*genai.Model] {
	if !cfg.CircuitBreaker.Enabled {
		return nil
	}

	return &Breaker[*genai.Model]{
		cb: gobreaker.NewCircuitBreaker[*genai.Model](gobreaker.Settings{
			Name:        fmt.Sprintf("AI-Model-%s", operationType),
			MaxRequests: cfg.CircuitBreaker.MaxRequests,
			Interval:    cfg.CircuitBreaker.Interval,
			Timeout:     cfg.CircuitBreaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 5 && failureRatio >= 0.8
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Info("Circuit breaker state changed",
					"name", name,
					"operation_type", operationType,
					"from", from.String(),
					"to", to.String())
			},
		}),
	}
}

// Execute runs fn with circuit breaker protection
func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// Stats returns circuit breaker statistics
func (b *Breaker[T]) Stats() map[string]any {
	if b == nil || b.cb == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// Healthy returns true if the circuit breaker is in closed state
func (b *Breaker[T]) Healthy() bool {
	if b == nil || b.cb == nil {
		return true
	}
	return b.cb.State() == gobreaker.StateClosed
}
