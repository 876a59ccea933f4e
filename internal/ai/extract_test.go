package ai

import (
	"reflect"
	"testing"

	appErrors "careerlens/internal/errors"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "bare object",
			raw:  `{"score": 80}`,
			want: map[string]any{"score": 80.0},
		},
		{
			name: "markdown fenced",
			raw:  "Here you go:\n```json\n{\"score\": 80}\n```\nHope that helps!",
			want: map[string]any{"score": 80.0},
		},
		{
			name: "prose around object",
			raw:  `Sure! The result is {"verdict": "good_match"} as requested.`,
			want: map[string]any{"verdict": "good_match"},
		},
		{
			name: "nested braces use last closer",
			raw:  `{"ats": {"score": 70}}`,
			want: map[string]any{"ats": map[string]any{"score": 70.0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.raw, ShapeObject)
			if err != nil {
				t.Fatalf("ExtractJSON() error = %v", err)
			}
			if !reflect.DeepEqual(got, any(tt.want)) {
				t.Errorf("ExtractJSON() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestExtractJSONNoJSONFound(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		shape Shape
	}{
		{"empty response", "", ShapeObject},
		{"prose only", "I could not produce the requested analysis.", ShapeObject},
		{"closer before opener", "} oops {", ShapeObject},
		{"object when array expected", `{"a": 1}`, ShapeArray},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.raw, tt.shape)
			if appErrors.CodeOf(err) != appErrors.ErrCodeNoJSONFound {
				t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeNoJSONFound)
			}
			if !appErrors.IsRetryable(err) {
				t.Error("extraction failures must be retryable")
			}
		})
	}
}

func TestExtractJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unquoted keys", `{a: 1}`},
		{"trailing comma", `{"a": 1,}`},
		// The greedy match runs to the LAST closer, so a stray trailing
		// brace poisons an otherwise valid object.
		{"stray trailing brace", `{"a": 1} and one more }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractJSON(tt.raw, ShapeObject)
			if appErrors.CodeOf(err) != appErrors.ErrCodeMalformedJSON {
				t.Errorf("error code = %s, want %s", appErrors.CodeOf(err), appErrors.ErrCodeMalformedJSON)
			}
			if !appErrors.IsRetryable(err) {
				t.Error("extraction failures must be retryable")
			}
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	got, err := ExtractJSON("The list: [1, 2, 3].", ShapeArray)
	if err != nil {
		t.Fatalf("ExtractJSON() error = %v", err)
	}
	want := []any{1.0, 2.0, 3.0}
	if !reflect.DeepEqual(got, any(want)) {
		t.Errorf("ExtractJSON() = %#v, want %#v", got, want)
	}
}
