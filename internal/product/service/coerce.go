package service

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// toNumber coerces a loosely typed payload value to a finite number.
// nil, blank strings and non-numeric text are rejected.
func toNumber(v any) (float64, bool) {
	switch value := v.(type) {
	case nil:
		return 0, false
	case bool:
		if value {
			return 1, true
		}
		return 0, true
	case json.Number:
		return finite(value.Float64())
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return 0, false
		}
		return finite(cast.ToFloat64E(trimmed))
	default:
		return finite(cast.ToFloat64E(value))
	}
}

func finite(f float64, err error) (float64, bool) {
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toID coerces v to a whole, positive reference id.
func toID(v any) (int64, bool) {
	f, ok := toNumber(v)
	if !ok || f <= 0 || f != math.Trunc(f) || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// parsePrice accepts finite values that round to a positive integer.
func parsePrice(v any) (int64, bool) {
	f, ok := toNumber(v)
	if !ok || f <= 0 {
		return 0, false
	}
	rounded := math.Round(f)
	if rounded < 1 || rounded >= math.MaxInt64 {
		return 0, false
	}
	return int64(rounded), true
}

// toText renders scalars as strings. Composite values yield "".
func toText(v any) string {
	switch v.(type) {
	case nil, map[string]any, []any:
		return ""
	}
	return cast.ToString(v)
}

// setText is toText for fields where false and zero mean "not provided".
func setText(v any) string {
	switch value := v.(type) {
	case bool:
		if !value {
			return ""
		}
	case string:
		return value
	case nil:
		return ""
	default:
		if f, ok := toNumber(v); ok && f == 0 {
			return ""
		}
	}
	return toText(v)
}

// truthy reports whether v counts as set: false, zero, blank and nil do not.
// Boolean-looking strings are parsed.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return false
		}
		if parsed, err := cast.ToBoolE(trimmed); err == nil {
			return parsed
		}
		return true
	case map[string]any, []any:
		return true
	}
	if f, ok := toNumber(v); ok {
		return f != 0
	}
	return cast.ToBool(v)
}

func positiveOrNil(v any) *float64 {
	f, ok := toNumber(v)
	if !ok || f <= 0 {
		return nil
	}
	return &f
}

func optionalID(v any) *int64 {
	id, ok := toID(v)
	if !ok {
		return nil
	}
	return &id
}

func toSlice(v any) []any {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	return items
}

// toIDs keeps the whole positive numbers of v in order, without duplicates.
func toIDs(v any) []int64 {
	items := toSlice(v)
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		id, ok := toID(item)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
