package stats

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// parseNumber parses various JSON-decoded types to float64 with success
// indication. Handles json.Number, float64, int64, int, and numeric strings.
func parseNumber(field any) (float64, bool) {
	switch value := field.(type) {
	case json.Number:
		parsed, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	case float64:
		return value, true
	case int64:
		return float64(value), true
	case int:
		return float64(value), true
	case string:
		if value == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// numberAt reads a numeric field from a map, substituting 0 when the field
// is absent or malformed.
func numberAt(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	value, _ := parseNumber(m[key])
	return value
}

// mapAt reads a nested object field, returning nil when absent or not an
// object.
func mapAt(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	nested, _ := m[key].(map[string]any)
	return nested
}

// sliceAt reads a nested array field, returning nil when absent or not an
// array.
func sliceAt(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	nested, _ := m[key].([]any)
	return nested
}

// stringAt reads a string field, returning "" when absent or not a string.
func stringAt(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	value, _ := m[key].(string)
	return value
}

// parseLabel resolves a display label that may arrive as a plain string or a
// localized object. Localized objects prefer the "en" entry and otherwise
// fall back to the lexicographically smallest key, so the result is
// deterministic and never a serialized object.
func parseLabel(field any) string {
	switch value := field.(type) {
	case string:
		return value
	case map[string]any:
		if label, ok := value["en"].(string); ok && label != "" {
			return label
		}
		keys := make([]string, 0, len(value))
		for key := range value {
			if _, ok := value[key].(string); ok {
				keys = append(keys, key)
			}
		}
		if len(keys) == 0 {
			return ""
		}
		sort.Strings(keys)
		label, _ := value[keys[0]].(string)
		return label
	}
	return ""
}

// parseDate parses the date formats used by aggregation documents: plain
// dates, date-times, and RFC3339 timestamps. All results are UTC.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
