package dto

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FormData is the loose field map edited by the operator before submit. Values arrive as
// decoded JSON (string, float64, bool, nil) and are coerced per resource on submit.
type FormData map[string]interface{}

var (
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	radixPattern   = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// Clone returns a shallow copy; nil stays nil.
func (f FormData) Clone() FormData {
	if f == nil {
		return nil
	}
	out := make(FormData, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Merge writes every field into the form, allocating it when needed.
func (f FormData) Merge(fields map[string]interface{}) FormData {
	if f == nil {
		f = FormData{}
	}
	for k, v := range fields {
		f[k] = v
	}
	return f
}

// Truthy reports whether the field is set to a truthy value. Missing, nil, false, zero,
// NaN and the empty string are falsy.
func (f FormData) Truthy(key string) bool { return Truthy(f[key]) }

// Text returns the field as a string, or fallback when it is falsy.
func (f FormData) Text(key, fallback string) string {
	v := f[key]
	if !Truthy(v) {
		return fallback
	}
	return Text(v)
}

// NumberOr returns the numeric value of a field, or fallback when it is zero, NaN or
// infinite. Fractions are kept.
func (f FormData) NumberOr(key string, fallback float64) float64 {
	n, ok := Number(f[key])
	if !ok || n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// FiniteNumberOr returns the numeric value of a field when it is finite, fallback otherwise.
// Unlike NumberOr a zero value is kept.
func (f FormData) FiniteNumberOr(key string, fallback float64) float64 {
	n, ok := Number(f[key])
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// maxExactID is the largest integer a JSON number carries without loss.
const maxExactID = 1<<53 - 1

// OptionalID returns the field as an id, or nil unless it is a non-zero whole number
// within the exactly representable range.
func (f FormData) OptionalID(key string) *int64 {
	n, ok := Number(f[key])
	if !ok || n == 0 || n != math.Trunc(n) || math.Abs(n) > maxExactID {
		return nil
	}
	id := int64(n)
	return &id
}

// Truthy applies loose truthiness to a decoded JSON value.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		n, ok := Number(t)
		return ok && n != 0
	default:
		return true
	}
}

// Number converts a decoded value the way an HTML form would: booleans become 1 or 0,
// blank strings and nil become 0, numeric strings parse with surrounding whitespace
// ignored. ok is false when the value is not a number.
func Number(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case float64:
		return t, !math.IsNaN(t)
	case float32:
		return float64(t), !math.IsNaN(float64(t))
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		return parseNumber(string(t))
	case string:
		return parseNumber(t)
	default:
		return 0, false
	}
}

// Text renders a decoded value as a string.
func Text(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if radixPattern.MatchString(s) {
		n, err := strconv.ParseInt(s, 0, 64)
		return float64(n), err == nil
	}
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormFromEntity pre-fills a form from a cached record.
func FormFromEntity(entity interface{}) (FormData, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, err
	}
	form := FormData{}
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, err
	}
	return form, nil
}
