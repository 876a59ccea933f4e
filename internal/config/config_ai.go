package config

import "fmt"

// Operation names, also the keys used for prompt lookup
const (
	OpAnalyze     = "analyze"
	OpProfile     = "profile"
	OpCoverLetter = "coverletter"
	OpInterview   = "interview"
	OpOptimize    = "optimize"
	OpFit         = "fit"
)

// OperationNames lists every AI operation
var OperationNames = []string{OpAnalyze, OpProfile, OpCoverLetter, OpInterview, OpOptimize, OpFit}

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	if opCfg.MaxOutputTokens == nil {
		opCfg.MaxOutputTokens = &c.AI.MaxOutputTokens
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// applyPromptFallbacks fills unset prompt fields from the global prompt
// config for the same operation
func applyPromptFallbacks(opPrompts *PromptConfig, global PromptConfig) {
	if opPrompts.System == "" {
		opPrompts.System = global.System
	}
	if opPrompts.SystemFile == "" {
		opPrompts.SystemFile = global.SystemFile
	}
	if opPrompts.User == "" {
		opPrompts.User = global.User
	}
	if opPrompts.UserFile == "" {
		opPrompts.UserFile = global.UserFile
	}
}

func (c *Config) resolveOperationConfig(opCfg OperationAIConfig, globalPrompts PromptConfig) OperationAIConfig {
	c.applyOperationDefaults(&opCfg)
	applyPromptFallbacks(&opCfg.CustomPrompts, globalPrompts)
	return opCfg
}

// GetAnalyzeConfig returns the AI configuration for match analysis with fallback to global config
func (c *Config) GetAnalyzeConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.Analyze, c.AI.Prompts.Analyze)
}

// GetProfileConfig returns the AI configuration for profile extraction with fallback to global config
func (c *Config) GetProfileConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.Profile, c.AI.Prompts.Profile)
}

// GetCoverLetterConfig returns the AI configuration for cover letter generation with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.CoverLetter, c.AI.Prompts.CoverLetter)
}

// GetInterviewConfig returns the AI configuration for interview preparation with fallback to global config
func (c *Config) GetInterviewConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.Interview, c.AI.Prompts.Interview)
}

// GetOptimizeConfig returns the AI configuration for resume optimization with fallback to global config
func (c *Config) GetOptimizeConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.Optimize, c.AI.Prompts.Optimize)
}

// GetFitConfig returns the AI configuration for company-fit scoring with fallback to global config
func (c *Config) GetFitConfig() OperationAIConfig {
	return c.resolveOperationConfig(c.AI.Fit, c.AI.Prompts.Fit)
}

// GetOperationConfig returns the resolved AI configuration for an operation by name
func (c *Config) GetOperationConfig(operation string) (OperationAIConfig, error) {
	switch operation {
	case OpAnalyze:
		return c.GetAnalyzeConfig(), nil
	case OpProfile:
		return c.GetProfileConfig(), nil
	case OpCoverLetter:
		return c.GetCoverLetterConfig(), nil
	case OpInterview:
		return c.GetInterviewConfig(), nil
	case OpOptimize:
		return c.GetOptimizeConfig(), nil
	case OpFit:
		return c.GetFitConfig(), nil
	}
	return OperationAIConfig{}, fmt.Errorf("unknown operation: %s", operation)
}

// operationPromptConfigs returns the resolved prompt config per operation,
// used for file loading and watching
func (c *Config) operationPromptConfigs() map[string]PromptConfig {
	configs := make(map[string]PromptConfig, len(OperationNames))
	for _, op := range OperationNames {
		opCfg, err := c.GetOperationConfig(op)
		if err != nil {
			continue
		}
		configs[op] = opCfg.CustomPrompts
	}
	return configs
}
