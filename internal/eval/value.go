// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

// scalarOf coerces the numeric scalar kinds that reach us from Go callers
// and from decoded YAML/JSON into float64.
func scalarOf(v any) (float64, bool) {
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
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// vectorOf coerces a numeric vector ([]float64, or []any of numeric
// scalars from decoded YAML/JSON) into []float64.
func vectorOf(v any) ([]float64, bool) {
	switch vec := v.(type) {
	case []float64:
		return vec, true
	case []any:
		if len(vec) == 0 {
			return nil, false
		}
		out := make([]float64, len(vec))
		for i, item := range vec {
			s, ok := scalarOf(item)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// normalizeValue returns v as float64 or []float64.
func normalizeValue(v any) (any, bool) {
	if s, ok := scalarOf(v); ok {
		return s, true
	}
	if vec, ok := vectorOf(v); ok {
		return vec, true
	}
	return nil, false
}
