package ai

import (
	"encoding/json"
	"strings"

	"careerlens/internal/errors"
)

// Shape declares the expected top-level JSON value of a model response
type Shape string

const (
	ShapeObject Shape = "object"
	ShapeArray  Shape = "array"
)

// ExtractJSON pulls the JSON payload out of a raw model response that may
// be wrapped in prose or markdown fences. The match is greedy: the
// substring runs from the first opening bracket to the last closing
// bracket of the expected shape. A stray trailing bracket in surrounding
// prose therefore poisons the parse; that surfaces as MALFORMED_JSON and
// the caller retries the completion.
func ExtractJSON(raw string, shape Shape) (any, error) {
	opener, closer := "{", "}"
	if shape == ShapeArray {
		opener, closer = "[", "]"
	}

	start := strings.Index(raw, opener)
	end := strings.LastIndex(raw, closer)
	if start == -1 || end == -1 || end < start {
		return nil, errors.NewParseError(errors.ErrCodeNoJSONFound,
			"no JSON "+string(shape)+" found in model response", nil).
			WithRetryable(true).
			WithContext("response_length", len(raw))
	}

	var out any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return nil, errors.NewParseError(errors.ErrCodeMalformedJSON,
			"model response contains invalid JSON", err).
			WithRetryable(true).
			WithContext("response_length", len(raw))
	}
	return out, nil
}
