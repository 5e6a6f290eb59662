package utils

import (
	"strings"
	"unicode"
)

// Key-casing translation at the data boundary. The platform stores columns in
// snake_case while API payloads use camelCase; translation happens in exactly
// one place so the mapping stays bijective. Round-tripping is total for key
// names without ambiguous casing (no consecutive capitals, no digits glued to
// case changes).

// SnakeToCamelKey converts one snake_case key to camelCase.
func SnakeToCamelKey(key string) string {
	parts := strings.Split(key, "_")
	if len(parts) == 1 {
		return key
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// CamelToSnakeKey converts one camelCase key to snake_case.
func CamelToSnakeKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToCamelKeys rewrites every map key in m (recursively, including maps inside
// slices) from snake_case to camelCase. Values are not copied deeply beyond
// the containers that hold translated maps.
func ToCamelKeys(m map[string]any) map[string]any {
	return translateKeys(m, SnakeToCamelKey)
}

// ToSnakeKeys is the inverse of ToCamelKeys.
func ToSnakeKeys(m map[string]any) map[string]any {
	return translateKeys(m, CamelToSnakeKey)
}

func translateKeys(m map[string]any, fn func(string) string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[fn(k)] = translateValue(v, fn)
	}
	return out
}

func translateValue(v any, fn func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		return translateKeys(val, fn)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = translateValue(item, fn)
		}
		return out
	default:
		return v
	}
}
