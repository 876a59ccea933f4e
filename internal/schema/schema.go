package schema

import (
	"encoding/json"
	"math"
	"strconv"

	"careerlens/internal/errors"
)

// FieldKind selects the normalization rule applied to a field
type FieldKind int

const (
	KindString FieldKind = iota
	KindScore
	KindNumber
	KindBool
	KindStringList
	KindObject
	KindObjectList
)

// Field declares one field of a result shape: its kind, default, numeric
// bounds, allowed enum values, item cap, and nested fields for objects.
type Field struct {
	Name      string
	Kind      FieldKind
	Default   any
	Min       float64
	Max       float64
	HasBounds bool
	Enum      []string
	MaxItems  int
	Fields    []Field
}

// Schema is the declarative shape of one canonical result kind
type Schema struct {
	Name   string
	Fields []Field
}

// Normalize walks a parsed JSON value and returns a map in which every
// declared field is present with an in-range, correctly typed value.
// Unknown input fields are dropped; missing or malformed fields take
// their defaults. Normalize never fails: normalizing nil or an empty
// object yields a fully populated record.
func (s Schema) Normalize(v any) map[string]any {
	in, _ := v.(map[string]any)
	return normalizeFields(s.Fields, in)
}

func normalizeFields(fields []Field, in map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		var raw any
		if in != nil {
			raw = in[f.Name]
		}
		out[f.Name] = f.normalize(raw)
	}
	return out
}

func (f Field) normalize(raw any) any {
	switch f.Kind {
	case KindString:
		return f.normalizeString(raw)
	case KindScore:
		return f.normalizeScore(raw)
	case KindNumber:
		return f.normalizeNumber(raw)
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b
		}
		return f.Default // nil keeps the tri-state "unknown"
	case KindStringList:
		return f.normalizeStringList(raw)
	case KindObject:
		in, _ := raw.(map[string]any)
		return normalizeFields(f.Fields, in)
	case KindObjectList:
		return f.normalizeObjectList(raw)
	}
	return f.Default
}

func (f Field) normalizeString(raw any) string {
	s, ok := raw.(string)
	if !ok {
		return f.stringDefault()
	}
	if len(f.Enum) > 0 && !contains(f.Enum, s) {
		return f.stringDefault()
	}
	return s
}

func (f Field) stringDefault() string {
	if d, ok := f.Default.(string); ok {
		return d
	}
	return ""
}

// normalizeScore coerces to a number, clamps to the field's bounds
// ([0,100] unless overridden) and rounds to a whole value so the result
// decodes cleanly into integer struct fields.
func (f Field) normalizeScore(raw any) float64 {
	min, max := 0.0, 100.0
	if f.HasBounds {
		min, max = f.Min, f.Max
	}
	n, ok := toFloat(raw)
	if !ok {
		if d, dok := toFloat(f.Default); dok {
			return math.Round(clamp(d, min, max))
		}
		return math.Round((min + max) / 2)
	}
	return math.Round(clamp(n, min, max))
}

func (f Field) normalizeNumber(raw any) float64 {
	n, ok := toFloat(raw)
	if !ok {
		if d, dok := toFloat(f.Default); dok {
			n = d
		} else {
			n = 0
		}
	}
	if f.HasBounds {
		n = clamp(n, f.Min, f.Max)
	}
	return n
}

func (f Field) normalizeStringList(raw any) []string {
	var items []string
	switch list := raw.(type) {
	case []string: // already normalized input stays stable
		items = append(items, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	}
	if items == nil {
		items = []string{}
	}
	if f.MaxItems > 0 && len(items) > f.MaxItems {
		items = items[:f.MaxItems]
	}
	return items
}

func (f Field) normalizeObjectList(raw any) []map[string]any {
	var items []map[string]any
	switch list := raw.(type) {
	case []map[string]any:
		for _, item := range list {
			items = append(items, normalizeFields(f.Fields, item))
		}
	case []any:
		for _, item := range list {
			m, _ := item.(map[string]any)
			items = append(items, normalizeFields(f.Fields, m))
		}
	}
	if items == nil {
		items = []map[string]any{}
	}
	if f.MaxItems > 0 && len(items) > f.MaxItems {
		items = items[:f.MaxItems]
	}
	return items
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

// Decode converts a normalized map into the canonical result struct via a
// JSON round trip. Score fields are whole numbers after normalization,
// so integer struct fields decode without error.
func Decode[T any](m map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(m)
	if err != nil {
		return out, errors.NewInternalError(errors.ErrCodeInvalidFormat, "failed to encode normalized result", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, errors.NewInternalError(errors.ErrCodeInvalidFormat, "failed to decode normalized result", err)
	}
	return out, nil
}
