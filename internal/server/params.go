package server

import (
	"fmt"
	"math"
	"strings"
)

// stringParam returns the string argument key, or defaultVal when absent.
// Non-string scalars are formatted, since some clients send numbers for
// string fields.
func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			return strings.EqualFold(b, "true")
		}
	}
	return defaultVal
}

// requireString fails when key is missing or blank.
func requireString(params map[string]interface{}, key string) (string, error) {
	s := stringParam(params, key, "")
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	return s, nil
}

// requireInt fails when key is missing or not a whole number.
func requireInt(params map[string]interface{}, key string) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing required argument %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, v)
	}
}

// optionalInt reports whether key was supplied, and its value.
func optionalInt(params map[string]interface{}, key string) (int, bool, error) {
	if v, ok := params[key]; !ok || v == nil {
		return 0, false, nil
	}
	n, err := requireInt(params, key)
	return n, err == nil, err
}

func stringSliceParam(params map[string]interface{}, key string) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing required argument %q", key)
	}
	switch items := v.(type) {
	case []string:
		return items, nil
	case []interface{}:
		out := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("item %d of %q is not a string", i, key)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		// Some clients send "ctrl+c" instead of ["ctrl", "c"].
		return strings.Split(items, "+"), nil
	default:
		return nil, fmt.Errorf("argument %q must be a list of strings", key)
	}
}
