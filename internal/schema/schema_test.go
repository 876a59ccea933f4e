package schema

import (
	"reflect"
	"testing"

	"careerlens/internal/types"
)

func TestNormalizeScoreClamping(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"above range", map[string]any{"score": 137.0}, 100},
		{"below range", map[string]any{"score": -20.0}, 0},
		{"in range", map[string]any{"score": 72.0}, 72},
		{"fractional rounds", map[string]any{"score": 63.7}, 64},
		{"numeric string", map[string]any{"score": "85"}, 85},
		{"non-numeric string", map[string]any{"score": "high"}, 50},
		{"missing defaults to midpoint", map[string]any{}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompanyFitSchema.Normalize(tt.input)
			if got["score"] != tt.want {
				t.Errorf("Normalize() score = %v, want %v", got["score"], tt.want)
			}
		})
	}
}

func TestNormalizeEmptyObjectIsComplete(t *testing.T) {
	got := MatchAnalysisSchema.Normalize(map[string]any{})

	result, err := Decode[types.MatchAnalysis](got)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if result.OverallScore != 50 {
		t.Errorf("OverallScore = %d, want 50", result.OverallScore)
	}
	if result.Verdict != "" {
		t.Errorf("Verdict = %q, want empty", result.Verdict)
	}
	if result.Dealbreakers == nil || len(result.Dealbreakers) != 0 {
		t.Errorf("Dealbreakers = %v, want empty slice", result.Dealbreakers)
	}
	if result.ATS.MatchedKeywords == nil {
		t.Error("ATS.MatchedKeywords is nil, want empty slice")
	}
	if result.ATS.PassesScreening != nil {
		t.Errorf("ATS.PassesScreening = %v, want nil", *result.ATS.PassesScreening)
	}
	if result.ResumeRewrites == nil || len(result.ResumeRewrites) != 0 {
		t.Errorf("ResumeRewrites = %v, want empty slice", result.ResumeRewrites)
	}
}

func TestNormalizeNilInput(t *testing.T) {
	got := ExtractedProfileSchema.Normalize(nil)

	profile, err := Decode[types.ExtractedProfile](got)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if profile.Name != "" || profile.YearsOfExperience != 0 {
		t.Errorf("unexpected defaults: name=%q years=%v", profile.Name, profile.YearsOfExperience)
	}
	if profile.TechnicalSkills == nil {
		t.Error("TechnicalSkills is nil, want empty slice")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := map[string]any{
		"overallScore": 150.0,
		"verdict":      "good_match",
		"strengths":    []any{"Go", 42.0, "Kubernetes"},
		"resumeRewrites": []any{
			map[string]any{"section": "Summary", "original": "a", "improved": "b"},
		},
		"actionPlan": []any{
			map[string]any{"priority": "urgent", "action": "apply"},
		},
	}

	once := MatchAnalysisSchema.Normalize(input)
	twice := MatchAnalysisSchema.Normalize(any(once))

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize is not idempotent:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestNormalizeTopNTruncation(t *testing.T) {
	rewrites := make([]any, 7)
	for i := range rewrites {
		rewrites[i] = map[string]any{"section": string(rune('a' + i))}
	}

	got := MatchAnalysisSchema.Normalize(map[string]any{"resumeRewrites": rewrites})

	list, ok := got["resumeRewrites"].([]map[string]any)
	if !ok {
		t.Fatalf("resumeRewrites has type %T", got["resumeRewrites"])
	}
	if len(list) != MaxResumeRewrites {
		t.Fatalf("len(resumeRewrites) = %d, want %d", len(list), MaxResumeRewrites)
	}
	// order preserved: first three survive
	for i, want := range []string{"a", "b", "c"} {
		if list[i]["section"] != want {
			t.Errorf("resumeRewrites[%d].section = %v, want %q", i, list[i]["section"], want)
		}
	}
}

func TestNormalizeEnumFields(t *testing.T) {
	tests := []struct {
		name    string
		verdict any
		want    string
	}{
		{"valid value kept", "excellent_match", "excellent_match"},
		{"unknown value dropped", "superb", ""},
		{"non-string dropped", 3.0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchAnalysisSchema.Normalize(map[string]any{"verdict": tt.verdict})
			if got["verdict"] != tt.want {
				t.Errorf("verdict = %v, want %q", got["verdict"], tt.want)
			}
		})
	}
}

func TestNormalizeActionPlanPriorityDefault(t *testing.T) {
	got := MatchAnalysisSchema.Normalize(map[string]any{
		"actionPlan": []any{
			map[string]any{"priority": "asap", "action": "rewrite summary"},
			map[string]any{"priority": "low", "action": "network"},
		},
	})

	plan := got["actionPlan"].([]map[string]any)
	if plan[0]["priority"] != "medium" {
		t.Errorf("out-of-set priority = %v, want \"medium\"", plan[0]["priority"])
	}
	if plan[1]["priority"] != "low" {
		t.Errorf("valid priority = %v, want \"low\"", plan[1]["priority"])
	}
}

func TestNormalizeQuestionCap(t *testing.T) {
	questions := make([]any, 25)
	for i := range questions {
		questions[i] = map[string]any{"question": "q"}
	}

	got := InterviewPrepSchema.Normalize(map[string]any{"questions": questions})
	list := got["questions"].([]map[string]any)
	if len(list) != MaxInterviewQuestions {
		t.Errorf("len(questions) = %d, want %d", len(list), MaxInterviewQuestions)
	}
}

func TestNormalizeBoolTriState(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  any
	}{
		{"true kept", map[string]any{"ats": map[string]any{"passesScreening": true}}, true},
		{"false kept", map[string]any{"ats": map[string]any{"passesScreening": false}}, false},
		{"string dropped", map[string]any{"ats": map[string]any{"passesScreening": "yes"}}, nil},
		{"absent stays unknown", map[string]any{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchAnalysisSchema.Normalize(tt.input)
			ats := got["ats"].(map[string]any)
			if ats["passesScreening"] != tt.want {
				t.Errorf("passesScreening = %v, want %v", ats["passesScreening"], tt.want)
			}
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	normalized := CompanyFitSchema.Normalize(map[string]any{
		"score":     "88.4",
		"status":    "strong_fit",
		"rationale": "Deep overlap with the platform team's stack.",
	})

	fit, err := Decode[types.CompanyFit](normalized)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if fit.Score != 88 {
		t.Errorf("Score = %d, want 88", fit.Score)
	}
	if fit.Status != "strong_fit" {
		t.Errorf("Status = %q, want strong_fit", fit.Status)
	}
}
