package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"careerlens/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "MatchAnalysis", &MatchTextFormatter{})
	registry.RegisterFormatter("markdown", "MatchAnalysis", &MatchMarkdownFormatter{})
	registry.RegisterFormatter("text", "ExtractedProfile", &ProfileTextFormatter{})
	registry.RegisterFormatter("text", "InterviewPrep", &InterviewTextFormatter{})
	registry.RegisterFormatter("markdown", "InterviewPrep", &InterviewMarkdownFormatter{})
	registry.RegisterFormatter("text", "ResumeOptimization", &OptimizationTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeOptimization", &OptimizationMarkdownFormatter{})
	registry.RegisterFormatter("text", "CompanyFit", &FitTextFormatter{})
	registry.RegisterFormatter("text", "CoverLetter", &CoverLetterTextFormatter{})
	registry.RegisterFormatter("markdown", "CoverLetter", &CoverLetterMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.MatchAnalysis:
		return "MatchAnalysis"
	case types.ExtractedProfile:
		return "ExtractedProfile"
	case types.InterviewPrep:
		return "InterviewPrep"
	case types.ResumeOptimization:
		return "ResumeOptimization"
	case types.CompanyFit:
		return "CompanyFit"
	case types.CoverLetter:
		return "CoverLetter"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

func writeList(out *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	out.WriteString(heading)
	out.WriteString("\n")
	for _, item := range items {
		out.WriteString(fmt.Sprintf("- %s\n", item))
	}
	out.WriteString("\n")
}

// MatchTextFormatter handles text formatting for match analysis results
type MatchTextFormatter struct{}

func (mtf *MatchTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchAnalysis)
	if !ok {
		return "", fmt.Errorf("expected MatchAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== MATCH ANALYSIS ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("Verdict: %s\n", result.Verdict))
	output.WriteString(fmt.Sprintf("Interview Probability: %d%%\n\n", result.InterviewProbability))

	output.WriteString("=== ATS SCREENING ===\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.ATS.Score))
	if result.ATS.PassesScreening != nil {
		output.WriteString(fmt.Sprintf("Passes Screening: %t\n", *result.ATS.PassesScreening))
	}
	output.WriteString("\n")
	writeList(&output, "Matched Keywords:", result.ATS.MatchedKeywords)
	writeList(&output, "Missing Keywords:", result.ATS.MissingKeywords)
	writeList(&output, "Formatting Issues:", result.ATS.FormattingIssues)

	writeList(&output, "=== STRENGTHS ===", result.Strengths)
	writeList(&output, "=== RED FLAGS ===", result.RedFlags)
	writeList(&output, "=== DEALBREAKERS ===", result.Dealbreakers)

	if result.QualificationGap.Summary != "" {
		output.WriteString("=== QUALIFICATION GAP ===\n")
		output.WriteString(result.QualificationGap.Summary)
		output.WriteString("\n\n")
		writeList(&output, "Missing:", result.QualificationGap.MissingQualifications)
		writeList(&output, "Partial:", result.QualificationGap.PartialQualifications)
	}

	if result.ApplicationStrategy.Recommendation != "" {
		output.WriteString("=== APPLICATION STRATEGY ===\n")
		output.WriteString(result.ApplicationStrategy.Recommendation)
		output.WriteString("\n\n")
		writeList(&output, "Talking Points:", result.ApplicationStrategy.TalkingPoints)
	}

	if len(result.ResumeRewrites) > 0 {
		output.WriteString("=== SUGGESTED REWRITES ===\n\n")
		for i, rewrite := range result.ResumeRewrites {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, rewrite.Section))
			output.WriteString("   Before: ")
			output.WriteString(rewrite.Original)
			output.WriteString("\n   After:  ")
			output.WriteString(rewrite.Improved)
			output.WriteString("\n   Why:    ")
			output.WriteString(rewrite.Rationale)
			output.WriteString("\n\n")
		}
	}

	if len(result.ActionPlan) > 0 {
		output.WriteString("=== ACTION PLAN ===\n")
		for _, item := range result.ActionPlan {
			output.WriteString(fmt.Sprintf("[%s] %s\n", strings.ToUpper(item.Priority), item.Action))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== BOTTOM LINE ===\n")
	output.WriteString(result.BottomLine)
	output.WriteString("\n")

	return output.String(), nil
}

func (mtf *MatchTextFormatter) SupportedType() string {
	return "MatchAnalysis"
}

// MatchMarkdownFormatter handles markdown formatting for match analysis results
type MatchMarkdownFormatter struct{}

func (mmf *MatchMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.MatchAnalysis)
	if !ok {
		return "", fmt.Errorf("expected MatchAnalysis, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Match Analysis\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))
	output.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", result.Verdict))
	output.WriteString(fmt.Sprintf("**Interview Probability:** %d%%\n\n", result.InterviewProbability))

	output.WriteString("## ATS Screening\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/100\n\n", result.ATS.Score))
	if result.ATS.PassesScreening != nil {
		output.WriteString(fmt.Sprintf("**Passes Screening:** %t\n\n", *result.ATS.PassesScreening))
	}
	writeList(&output, "### Matched Keywords", result.ATS.MatchedKeywords)
	writeList(&output, "### Missing Keywords", result.ATS.MissingKeywords)
	writeList(&output, "### Formatting Issues", result.ATS.FormattingIssues)

	writeList(&output, "## Strengths", result.Strengths)
	writeList(&output, "## Red Flags", result.RedFlags)
	writeList(&output, "## Dealbreakers", result.Dealbreakers)

	if result.QualificationGap.Summary != "" {
		output.WriteString("## Qualification Gap\n\n")
		output.WriteString(result.QualificationGap.Summary)
		output.WriteString("\n\n")
		writeList(&output, "### Missing", result.QualificationGap.MissingQualifications)
		writeList(&output, "### Partial", result.QualificationGap.PartialQualifications)
	}

	if result.CompetitorAnalysis.TypicalCompetition != "" {
		output.WriteString("## Competition\n\n")
		output.WriteString(result.CompetitorAnalysis.TypicalCompetition)
		output.WriteString("\n\n")
		writeList(&output, "### Your Differentiators", result.CompetitorAnalysis.Differentiators)
	}

	if result.ApplicationStrategy.Recommendation != "" {
		output.WriteString("## Application Strategy\n\n")
		output.WriteString(result.ApplicationStrategy.Recommendation)
		output.WriteString("\n\n")
		writeList(&output, "### Talking Points", result.ApplicationStrategy.TalkingPoints)
	}

	if len(result.ResumeRewrites) > 0 {
		output.WriteString("## Suggested Rewrites\n\n")
		for i, rewrite := range result.ResumeRewrites {
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, rewrite.Section))
			output.WriteString("**Before:** ")
			output.WriteString(rewrite.Original)
			output.WriteString("\n\n**After:** ")
			output.WriteString(rewrite.Improved)
			output.WriteString("\n\n**Why:** ")
			output.WriteString(rewrite.Rationale)
			output.WriteString("\n\n")
		}
	}

	if len(result.ActionPlan) > 0 {
		output.WriteString("## Action Plan\n\n")
		for _, item := range result.ActionPlan {
			output.WriteString(fmt.Sprintf("- **%s:** %s\n", item.Priority, item.Action))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Bottom Line\n\n")
	output.WriteString(result.BottomLine)
	output.WriteString("\n")

	return output.String(), nil
}

func (mmf *MatchMarkdownFormatter) SupportedType() string {
	return "MatchAnalysis"
}

// ProfileTextFormatter handles text formatting for extracted profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ExtractedProfile)
	if !ok {
		return "", fmt.Errorf("expected ExtractedProfile, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE PROFILE ===\n\n")
	output.WriteString(fmt.Sprintf("Name: %s\n", result.Name))
	output.WriteString(fmt.Sprintf("Email: %s\n", result.Email))
	output.WriteString(fmt.Sprintf("Phone: %s\n", result.Phone))
	output.WriteString(fmt.Sprintf("Location: %s\n", result.Location))
	output.WriteString(fmt.Sprintf("Current Title: %s\n", result.CurrentTitle))
	output.WriteString(fmt.Sprintf("Experience: %.1f years (%s)\n", result.YearsOfExperience, result.ExperienceLevel))
	if result.Education.Degree != "" {
		output.WriteString(fmt.Sprintf("Education: %s, %s (%s)\n",
			result.Education.Degree, result.Education.Institution, result.Education.GraduationYear))
	}
	output.WriteString("\n")

	if result.Summary != "" {
		output.WriteString("Summary:\n")
		output.WriteString(result.Summary)
		output.WriteString("\n\n")
	}

	writeList(&output, "Target Titles:", result.TargetTitles)
	writeList(&output, "Technical Skills:", result.TechnicalSkills)
	writeList(&output, "Soft Skills:", result.SoftSkills)
	writeList(&output, "Search Keywords:", result.SearchKeywords)

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "ExtractedProfile"
}

// InterviewTextFormatter handles text formatting for interview preparation
type InterviewTextFormatter struct{}

func (itf *InterviewTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewPrep)
	if !ok {
		return "", fmt.Errorf("expected InterviewPrep, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== INTERVIEW PREPARATION ===\n\n")
	if len(result.Questions) == 0 {
		output.WriteString("No questions generated.\n")
		return output.String(), nil
	}

	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("%d. %s\n\n", i+1, q.Question))
		output.WriteString("   Suggested answer:\n   ")
		output.WriteString(q.SuggestedAnswer)
		output.WriteString("\n")
		if q.Tip != "" {
			output.WriteString("   Tip: ")
			output.WriteString(q.Tip)
			output.WriteString("\n")
		}
		output.WriteString("\n")
	}

	return output.String(), nil
}

func (itf *InterviewTextFormatter) SupportedType() string {
	return "InterviewPrep"
}

// InterviewMarkdownFormatter handles markdown formatting for interview preparation
type InterviewMarkdownFormatter struct{}

func (imf *InterviewMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.InterviewPrep)
	if !ok {
		return "", fmt.Errorf("expected InterviewPrep, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Interview Preparation\n\n")
	for i, q := range result.Questions {
		output.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, q.Question))
		output.WriteString("**Suggested answer:** ")
		output.WriteString(q.SuggestedAnswer)
		output.WriteString("\n\n")
		if q.Tip != "" {
			output.WriteString("**Tip:** ")
			output.WriteString(q.Tip)
			output.WriteString("\n\n")
		}
	}

	return output.String(), nil
}

func (imf *InterviewMarkdownFormatter) SupportedType() string {
	return "InterviewPrep"
}

// OptimizationTextFormatter handles text formatting for resume optimization results
type OptimizationTextFormatter struct{}

func (otf *OptimizationTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeOptimization)
	if !ok {
		return "", fmt.Errorf("expected ResumeOptimization, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== RESUME OPTIMIZATION ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %d/100\n\n", result.OverallScore))

	for i, section := range result.Sections {
		output.WriteString(fmt.Sprintf("%d. %s (score %d/100)\n\n", i+1, section.Name, section.Score))
		output.WriteString("   Before:\n   ")
		output.WriteString(section.Before)
		output.WriteString("\n\n   After:\n   ")
		output.WriteString(section.After)
		output.WriteString("\n\n")
		if len(section.Changes) > 0 {
			output.WriteString("   Changes:\n")
			for _, change := range section.Changes {
				output.WriteString(fmt.Sprintf("   - %s\n", change))
			}
			output.WriteString("\n")
		}
	}

	output.WriteString("=== SUMMARY OF CHANGES ===\n")
	output.WriteString(result.ChangeSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (otf *OptimizationTextFormatter) SupportedType() string {
	return "ResumeOptimization"
}

// OptimizationMarkdownFormatter handles markdown formatting for resume optimization results
type OptimizationMarkdownFormatter struct{}

func (omf *OptimizationMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.ResumeOptimization)
	if !ok {
		return "", fmt.Errorf("expected ResumeOptimization, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Resume Optimization\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %d/100\n\n", result.OverallScore))

	for _, section := range result.Sections {
		output.WriteString(fmt.Sprintf("## %s (%d/100)\n\n", section.Name, section.Score))
		output.WriteString("**Before:**\n\n")
		output.WriteString(section.Before)
		output.WriteString("\n\n**After:**\n\n")
		output.WriteString(section.After)
		output.WriteString("\n\n")
		writeList(&output, "**Changes:**", section.Changes)
	}

	output.WriteString("## Summary of Changes\n\n")
	output.WriteString(result.ChangeSummary)
	output.WriteString("\n")

	return output.String(), nil
}

func (omf *OptimizationMarkdownFormatter) SupportedType() string {
	return "ResumeOptimization"
}

// FitTextFormatter handles text formatting for company-fit results
type FitTextFormatter struct{}

func (ftf *FitTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CompanyFit)
	if !ok {
		return "", fmt.Errorf("expected CompanyFit, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COMPANY FIT ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/100\n", result.Score))
	output.WriteString(fmt.Sprintf("Status: %s\n\n", result.Status))
	output.WriteString("Rationale:\n")
	output.WriteString(result.Rationale)
	output.WriteString("\n")

	return output.String(), nil
}

func (ftf *FitTextFormatter) SupportedType() string {
	return "CompanyFit"
}

// CoverLetterTextFormatter handles text formatting for cover letters
type CoverLetterTextFormatter struct{}

func (ctf *CoverLetterTextFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetter)
	if !ok {
		return "", fmt.Errorf("expected CoverLetter, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== COVER LETTER ===\n\n")
	output.WriteString(result.CoverLetter)
	output.WriteString("\n\n")
	writeList(&output, "=== HIGHLIGHTS ===", result.Highlights)

	return output.String(), nil
}

func (ctf *CoverLetterTextFormatter) SupportedType() string {
	return "CoverLetter"
}

// CoverLetterMarkdownFormatter handles markdown formatting for cover letters
type CoverLetterMarkdownFormatter struct{}

func (cmf *CoverLetterMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(types.CoverLetter)
	if !ok {
		return "", fmt.Errorf("expected CoverLetter, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Cover Letter\n\n")
	output.WriteString(result.CoverLetter)
	output.WriteString("\n\n")
	writeList(&output, "## Highlights", result.Highlights)

	return output.String(), nil
}

func (cmf *CoverLetterMarkdownFormatter) SupportedType() string {
	return "CoverLetter"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
