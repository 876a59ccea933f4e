package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	resetLoadedPrompts()
	tempDir := t.TempDir()

	systemPromptContent := "Custom system prompt for match analysis"
	userPromptContent := "Custom user template: %s %s %s %s"

	systemPromptFile := filepath.Join(tempDir, "system.analyze.md")
	userPromptFile := filepath.Join(tempDir, "user.analyze.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}
	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Analyze: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemFile: systemPromptFile,
					UserFile:   userPromptFile,
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	loaded := GetPromptsForOperation(OpAnalyze)
	if loaded.System != systemPromptContent {
		t.Errorf("Expected loaded system prompt %q, got %q", systemPromptContent, loaded.System)
	}
	if loaded.User != userPromptContent {
		t.Errorf("Expected loaded user prompt %q, got %q", userPromptContent, loaded.User)
	}

	// File paths stay on the config untouched; content lives in the store
	if config.AI.Analyze.CustomPrompts.SystemFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}
	if config.AI.Analyze.CustomPrompts.UserFile != userPromptFile {
		t.Error("Expected user prompt file path to be preserved")
	}
}

func TestLoadPromptsFromFilesIsolatedPerOperation(t *testing.T) {
	resetLoadedPrompts()
	tempDir := t.TempDir()

	fitPrompt := filepath.Join(tempDir, "system.fit.md")
	if err := os.WriteFile(fitPrompt, []byte("Fit system prompt"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Fit: OperationAIConfig{
				CustomPrompts: PromptConfig{SystemFile: fitPrompt},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	if GetPromptsForOperation(OpFit).System != "Fit system prompt" {
		t.Error("fit prompt not loaded")
	}
	if got := GetPromptsForOperation(OpAnalyze); got.System != "" || got.User != "" {
		t.Errorf("analyze prompts should stay empty, got %+v", got)
	}
}

func TestValidatePromptFiles(t *testing.T) {
	tempDir := t.TempDir()

	validFile := filepath.Join(tempDir, "valid.md")
	if err := os.WriteFile(validFile, []byte("Valid content"), 0600); err != nil {
		t.Fatalf("Failed to create valid test file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Interview: OperationAIConfig{
				CustomPrompts: PromptConfig{SystemFile: validFile},
			},
		},
	}

	if err := config.validatePromptFiles(); err != nil {
		t.Errorf("Expected validation to pass for valid file, got error: %v", err)
	}

	config.AI.Interview.CustomPrompts.SystemFile = filepath.Join(tempDir, "nonexistent.md")
	if err := config.validatePromptFiles(); err == nil {
		t.Error("Expected validation to fail for non-existent file")
	}
}

func TestLoadPromptFromFile(t *testing.T) {
	tempDir := t.TempDir()

	content := "Test prompt content"
	testFile := filepath.Join(tempDir, "test.md")
	if err := os.WriteFile(testFile, []byte("  "+content+"\n\n"), 0600); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loadedContent, err := loadPromptFromFile(testFile, "system", OpAnalyze)
	if err != nil {
		t.Fatalf("Failed to load prompt from file: %v", err)
	}
	if loadedContent != content {
		t.Errorf("Expected trimmed content %q, got %q", content, loadedContent)
	}

	emptyFile := filepath.Join(tempDir, "empty.md")
	if err := os.WriteFile(emptyFile, []byte("   \n"), 0600); err != nil {
		t.Fatalf("Failed to create empty test file: %v", err)
	}
	if _, err := loadPromptFromFile(emptyFile, "system", OpAnalyze); err == nil {
		t.Error("Expected error for empty file")
	}

	if _, err := loadPromptFromFile(filepath.Join(tempDir, "nonexistent.md"), "system", OpAnalyze); err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestPromptFileBindings(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			Analyze:     OperationAIConfig{CustomPrompts: PromptConfig{SystemFile: "a.md", UserFile: "b.md"}},
			CoverLetter: OperationAIConfig{CustomPrompts: PromptConfig{UserFile: "c.md"}},
		},
	}

	bindings := config.promptFileBindings()
	if len(bindings) != 3 {
		t.Fatalf("bindings = %d, want 3", len(bindings))
	}

	byPath := make(map[string]promptFileBinding, len(bindings))
	for _, b := range bindings {
		byPath[b.Path] = b
	}
	if b := byPath["a.md"]; b.Operation != OpAnalyze || b.Type != "system" {
		t.Errorf("a.md binding = %+v", b)
	}
	if b := byPath["c.md"]; b.Operation != OpCoverLetter || b.Type != "user" {
		t.Errorf("c.md binding = %+v", b)
	}
}
