package config

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// AI Configuration - Global defaults
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.apiKey", "")
	v.SetDefault("ai.maxRetries", 2)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.maxOutputTokens", 0) // 0 means provider default
	v.SetDefault("ai.useSystemPrompts", true)

	// Per-operation overrides. Match analysis and interview prep are the
	// heavyweight operations, profile extraction and fit scoring want
	// low temperature for factual output.
	v.SetDefault("ai.analyze.timeout", 90*time.Second)
	v.SetDefault("ai.analyze.temperature", 0.3)
	v.SetDefault("ai.profile.timeout", 45*time.Second)
	v.SetDefault("ai.profile.temperature", 0.1)
	v.SetDefault("ai.coverletter.timeout", 60*time.Second)
	v.SetDefault("ai.coverletter.temperature", 0.7)
	v.SetDefault("ai.interview.timeout", 90*time.Second)
	v.SetDefault("ai.interview.temperature", 0.5)
	v.SetDefault("ai.optimize.timeout", 90*time.Second)
	v.SetDefault("ai.optimize.temperature", 0.3)
	v.SetDefault("ai.fit.timeout", 45*time.Second)
	v.SetDefault("ai.fit.temperature", 0.1)

	// Circuit Breaker Configuration defaults for all operations
	for _, op := range OperationNames {
		v.SetDefault("ai."+op+".circuitBreaker.enabled", true)
		v.SetDefault("ai."+op+".circuitBreaker.maxRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.interval", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.timeout", 60*time.Second)
		v.SetDefault("ai."+op+".circuitBreaker.minRequests", 3)
		v.SetDefault("ai."+op+".circuitBreaker.failureThreshold", 0.6)
	}

	// Server Configuration
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", 30*time.Second)
	v.SetDefault("server.writeTimeout", 120*time.Second) // AI operations are slow
	v.SetDefault("server.idleTimeout", 120*time.Second)
	v.SetDefault("server.apiKeys", []string{})

	// Rate limiting defaults
	v.SetDefault("server.rateLimit.enabled", false)
	v.SetDefault("server.rateLimit.requestsPerMin", 60)
	v.SetDefault("server.rateLimit.burstCapacity", 10)
	v.SetDefault("server.rateLimit.byIP", true)
	v.SetDefault("server.rateLimit.byAPIKey", false)
	v.SetDefault("server.rateLimit.window", time.Minute)

	// App Configuration
	v.SetDefault("app.logLevel", "info")
	v.SetDefault("app.defaultFormat", "json")
	v.SetDefault("app.supportedFormats", []string{"json", "text", "markdown"})
	v.SetDefault("app.maxUploadSize", 10*1024*1024) // 10MB resume uploads
	v.SetDefault("app.maxRequestSize", 1024*1024)   // 1MB JSON bodies

	// Vault Configuration
	v.SetDefault("vault.enabled", false)
	v.SetDefault("vault.address", "")
	v.SetDefault("vault.token", "")
	v.SetDefault("vault.tokenFile", "")
	v.SetDefault("vault.namespace", "")
	v.SetDefault("vault.secrets.apiKeys", "")
	v.SetDefault("vault.secrets.geminiKey", "")

	// Observability Configuration
	v.SetDefault("observability.enabled", true)
	v.SetDefault("observability.serviceName", "careerlens")
	v.SetDefault("observability.serviceVersion", "")  // Will use app version if empty
	v.SetDefault("observability.serviceInstance", "") // Will be auto-generated if empty
	v.SetDefault("observability.consoleOutput", false)
	v.SetDefault("observability.sampleRate", 1.0)

	// Tracing Configuration
	v.SetDefault("observability.tracing.enabled", true)
	v.SetDefault("observability.tracing.sampleRate", 1.0)

	// Metrics Configuration
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.collectionInterval", 15*time.Second)

	// Custom Metrics Configuration
	v.SetDefault("observability.customMetrics.aiOperations.enabled", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackDuration", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackTokenUsage", true)
	v.SetDefault("observability.customMetrics.aiOperations.trackModelInfo", true)
	v.SetDefault("observability.customMetrics.businessMetrics.enabled", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackSuccessRates", true)
	v.SetDefault("observability.customMetrics.businessMetrics.trackContentSizes", true)
	v.SetDefault("observability.customMetrics.infrastructure.enabled", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackRateLimits", true)
	v.SetDefault("observability.customMetrics.infrastructure.trackSessions", true)

	// Console Configuration
	v.SetDefault("observability.console.enabled", false)
	v.SetDefault("observability.console.prettyPrint", true)

	// Prometheus Configuration
	v.SetDefault("observability.prometheus.enabled", true)
	v.SetDefault("observability.prometheus.endpoint", "/metrics")
	v.SetDefault("observability.prometheus.port", "9090")

	// OTLP Configuration
	v.SetDefault("observability.otlp.enabled", false)
	v.SetDefault("observability.otlp.endpoint", "http://localhost:4318")
	v.SetDefault("observability.otlp.insecure", true)
	v.SetDefault("observability.otlp.headers", map[string]string{})

	// Health Check Configuration
	v.SetDefault("observability.healthCheck.timeout", 15*time.Second)
	v.SetDefault("observability.healthCheck.aiModelCheckTimeout", 10*time.Second)
}
