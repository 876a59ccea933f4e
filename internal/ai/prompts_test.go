package ai

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildPromptDeterministic(t *testing.T) {
	f := Fields{
		ResumeText:     strings.Repeat("resume ", 3000), // over the budget
		JobDescription: "We need a senior Go engineer for our payments platform.",
		CompanyName:    "Acme",
		JobTitle:       "Senior Go Engineer",
	}

	first := BuildPrompt(KindAnalyze, DefaultUserPrompts[KindAnalyze], f)
	second := BuildPrompt(KindAnalyze, DefaultUserPrompts[KindAnalyze], f)

	if first != second {
		t.Error("BuildPrompt is not deterministic for identical inputs")
	}
}

func TestBuildPromptTruncatesResumePrefix(t *testing.T) {
	longResume := strings.Repeat("x", maxResumeChars+500)
	f := Fields{
		ResumeText:     longResume,
		JobDescription: "A job description long enough to pass validation checks.",
	}

	prompt := BuildPrompt(KindAnalyze, DefaultUserPrompts[KindAnalyze], f)

	if strings.Contains(prompt, longResume) {
		t.Error("full over-budget resume should not appear in the prompt")
	}
	if !strings.Contains(prompt, longResume[:maxResumeChars]) {
		t.Error("the first maxResumeChars runes must appear unchanged")
	}
}

func TestBuildPromptTruncationIsRuneSafe(t *testing.T) {
	// Multibyte content right at the boundary must not be split mid-rune
	f := Fields{ResumeText: strings.Repeat("日", maxResumeChars+10)}

	prompt := BuildPrompt(KindProfile, DefaultUserPrompts[KindProfile], f)

	if !utf8.ValidString(prompt) {
		t.Error("prompt contains an invalid UTF-8 sequence after truncation")
	}
}

func TestBuildPromptPlaceholders(t *testing.T) {
	f := Fields{
		ResumeText:     "resume",
		JobDescription: "a job description for a role at an unnamed employer",
	}

	prompt := BuildPrompt(KindAnalyze, DefaultUserPrompts[KindAnalyze], f)

	if !strings.Contains(prompt, placeholderCompany) {
		t.Errorf("prompt missing %q placeholder", placeholderCompany)
	}
	if !strings.Contains(prompt, placeholderPosition) {
		t.Errorf("prompt missing %q placeholder", placeholderPosition)
	}
}

func TestBuildPromptUsesProvidedNames(t *testing.T) {
	f := Fields{
		ResumeText:     "resume",
		JobDescription: "jd",
		CompanyName:    "Initech",
		JobTitle:       "Staff Engineer",
	}

	prompt := BuildPrompt(KindAnalyze, DefaultUserPrompts[KindAnalyze], f)

	if !strings.Contains(prompt, "Initech") || !strings.Contains(prompt, "Staff Engineer") {
		t.Error("provided company and title must appear in the prompt")
	}
}

func TestBuildPromptOptimizeWithoutJobDescription(t *testing.T) {
	prompt := BuildPrompt(KindOptimize, DefaultUserPrompts[KindOptimize], Fields{ResumeText: "resume"})

	if !strings.Contains(prompt, placeholderNoJob) {
		t.Error("optimize prompt without a job description must carry the placeholder note")
	}
}

func TestDefaultPromptsCoverAllOperations(t *testing.T) {
	for _, kind := range OperationKinds {
		if DefaultSystemPrompts[kind] == "" {
			t.Errorf("missing default system prompt for %s", kind)
		}
		if DefaultUserPrompts[kind] == "" {
			t.Errorf("missing default user prompt for %s", kind)
		}
	}
}

func TestResolvePromptPrecedence(t *testing.T) {
	tests := []struct {
		name                    string
		file, config, def, want string
	}{
		{"file wins", "from-file", "from-config", "default", "from-file"},
		{"config beats default", "", "from-config", "default", "from-config"},
		{"default as fallback", "", "", "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolvePrompt(tt.file, tt.config, tt.def); got != tt.want {
				t.Errorf("resolvePrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}
