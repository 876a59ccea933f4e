package config

import (
	"testing"
	"time"
)

func baseConfig() *Config {
	return &Config{
		AI: AIConfig{
			Provider:        "gemini",
			Model:           "gemini-2.0-flash",
			Timeout:         60 * time.Second,
			APIKey:          "global-key",
			MaxRetries:      2,
			Temperature:     0.7,
			MaxOutputTokens: 0,
		},
	}
}

func TestGetOperationConfigFallsBackToGlobals(t *testing.T) {
	c := baseConfig()

	got := c.GetAnalyzeConfig()

	if got.Provider != "gemini" || got.Model != "gemini-2.0-flash" {
		t.Errorf("provider/model = %s/%s, want globals", got.Provider, got.Model)
	}
	if got.APIKey != "global-key" {
		t.Errorf("APIKey = %s, want global-key", got.APIKey)
	}
	if got.Timeout == nil || *got.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", got.Timeout)
	}
	if got.MaxRetries == nil || *got.MaxRetries != 2 {
		t.Errorf("MaxRetries = %v, want 2", got.MaxRetries)
	}
	if got.Temperature == nil || *got.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", got.Temperature)
	}
	if got.UseSystemPrompts == nil {
		t.Error("UseSystemPrompts must be resolved to a concrete value")
	}
}

func TestGetOperationConfigKeepsOverrides(t *testing.T) {
	c := baseConfig()
	opTimeout := 90 * time.Second
	opTemp := float32(0.1)
	c.AI.Profile = OperationAIConfig{
		Model:       "gemini-2.0-pro",
		Timeout:     &opTimeout,
		Temperature: &opTemp,
	}

	got := c.GetProfileConfig()

	if got.Model != "gemini-2.0-pro" {
		t.Errorf("Model = %s, want override", got.Model)
	}
	if *got.Timeout != opTimeout {
		t.Errorf("Timeout = %v, want %v", *got.Timeout, opTimeout)
	}
	if *got.Temperature != opTemp {
		t.Errorf("Temperature = %v, want %v", *got.Temperature, opTemp)
	}
	// Unset fields still fall through
	if got.APIKey != "global-key" {
		t.Errorf("APIKey = %s, want global fallback", got.APIKey)
	}
}

func TestGetOperationConfigByName(t *testing.T) {
	c := baseConfig()

	for _, op := range OperationNames {
		if _, err := c.GetOperationConfig(op); err != nil {
			t.Errorf("GetOperationConfig(%q) error = %v", op, err)
		}
	}

	if _, err := c.GetOperationConfig("translate"); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestPromptFallbacksFromGlobalPrompts(t *testing.T) {
	c := baseConfig()
	c.AI.Prompts.Interview = PromptConfig{
		System:     "global interview system prompt",
		SystemFile: "/etc/careerlens/prompts/interview.system.md",
	}
	c.AI.Interview.CustomPrompts = PromptConfig{
		System: "operation interview system prompt",
	}

	got := c.GetInterviewConfig()

	// Per-operation inline prompt wins over the global one
	if got.CustomPrompts.System != "operation interview system prompt" {
		t.Errorf("System = %q", got.CustomPrompts.System)
	}
	// Unset file path falls back to the global prompt config
	if got.CustomPrompts.SystemFile != "/etc/careerlens/prompts/interview.system.md" {
		t.Errorf("SystemFile = %q", got.CustomPrompts.SystemFile)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		AI: AIConfig{Timeout: time.Minute, Temperature: 0.7},
		Server: ServerConfig{
			Port: "8080",
		},
		App: AppConfig{
			DefaultFormat:    "json",
			SupportedFormats: []string{"json", "text", "markdown"},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() on valid config = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-positive timeout", func(c *Config) { c.AI.Timeout = 0 }},
		{"temperature above one", func(c *Config) { c.AI.Temperature = 1.5 }},
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"unknown default format", func(c *Config) { c.App.DefaultFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *valid
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
