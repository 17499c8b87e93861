package normalize

import (
	"strconv"
	"strings"
)

// asString coerces a value into a trimmed, non-empty string. Numbers are
// stringified so a numeric capacity or legacy id still renders. The false
// return marks values that should fall through to the next candidate.
func asString(value any) (string, bool) {
	switch typed := value.(type) {
	case string:
		trimmed := strings.TrimSpace(typed)
		return trimmed, trimmed != ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case int:
		return strconv.Itoa(typed), true
	case int32:
		return strconv.FormatInt(int64(typed), 10), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	default:
		return "", false
	}
}

// asInt64 coerces JSON numerics (and numeric strings) into int64. Zero is
// treated as unset so fallback chains keep looking, mirroring the loose
// truthiness of the upstream payload producers.
func asInt64(value any) (int64, bool) {
	switch typed := value.(type) {
	case int64:
		return typed, typed != 0
	case int:
		return int64(typed), typed != 0
	case int32:
		return int64(typed), typed != 0
	case float64:
		return int64(typed), typed != 0
	case float32:
		return int64(typed), typed != 0
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int64(parsed), parsed != 0
		}
		return 0, false
	default:
		return 0, false
	}
}

// asFloat64 coerces JSON numerics (and numeric strings) into float64.
func asFloat64(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, typed != 0
	case float32:
		return float64(typed), typed != 0
	case int:
		return float64(typed), typed != 0
	case int32:
		return float64(typed), typed != 0
	case int64:
		return float64(typed), typed != 0
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return 0, false
		}
		if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return parsed, parsed != 0
		}
		return 0, false
	default:
		return 0, false
	}
}
