package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// promptFileBinding ties a prompt file on disk to the operation and
// prompt slot it feeds. The watcher uses these to route reloads.
type promptFileBinding struct {
	Path      string
	Operation string
	Type      string // "system" or "user"
}

// promptFileBindings lists every configured prompt file
func (c *Config) promptFileBindings() []promptFileBinding {
	var bindings []promptFileBinding
	for op, prompts := range c.operationPromptConfigs() {
		if prompts.SystemFile != "" {
			bindings = append(bindings, promptFileBinding{Path: prompts.SystemFile, Operation: op, Type: "system"})
		}
		if prompts.UserFile != "" {
			bindings = append(bindings, promptFileBinding{Path: prompts.UserFile, Operation: op, Type: "user"})
		}
	}
	return bindings
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	bindings := c.promptFileBindings()
	if len(bindings) == 0 {
		log.Println("[CONFIG] No custom prompt files configured - using built-in defaults")
		return nil
	}

	for _, b := range bindings {
		content, err := loadPromptFromFile(b.Path, b.Type, b.Operation)
		if err != nil {
			return err
		}
		setLoadedPrompt(b.Operation, b.Type, content)
	}

	log.Printf("[CONFIG] Total custom prompts loaded from files: %d", len(bindings))
	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, b := range c.promptFileBindings() {
		absPath, err := filepath.Abs(b.Path)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", b.Type, b.Operation, b.Path))
			continue
		}
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", b.Type, b.Operation, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
