package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type intBounds struct {
	min *int64
	max *int64
}

// IntOption sets an optional bound for RequireInt.
type IntOption func(*intBounds)

func WithMin(v int64) IntOption {
	return func(b *intBounds) { b.min = &v }
}

func WithMax(v int64) IntOption {
	return func(b *intBounds) { b.max = &v }
}

// RequireInt reads fields[key] as an integer. Native integers, json.Number
// integers and strings made only of ASCII digits are accepted. Booleans and
// floats never are.
func RequireInt(fields map[string]any, key string, opts ...IntOption) (int64, error) {
	var bounds intBounds
	for _, opt := range opts {
		opt(&bounds)
	}

	raw, ok := fields[key]
	if !ok {
		return 0, newError(KindMissingField, key, "Campo em falta: "+key)
	}

	if _, isBool := raw.(bool); isBool {
		return 0, newError(KindInvalidType, key, fmt.Sprintf("Campo '%s' inválido.", key))
	}

	value, ok := toInt64(raw)
	if !ok {
		return 0, newError(KindInvalidType, key, fmt.Sprintf("Campo '%s' tem de ser número inteiro.", key))
	}

	if bounds.min != nil && value < *bounds.min {
		return 0, newError(KindOutOfRange, key, fmt.Sprintf("Campo '%s' tem de ser >= %d.", key, *bounds.min))
	}
	if bounds.max != nil && value > *bounds.max {
		return 0, newError(KindOutOfRange, key, fmt.Sprintf("Campo '%s' tem de ser <= %d.", key, *bounds.max))
	}

	return value, nil
}

func toInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return uintToInt64(uint64(v))
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return uintToInt64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		s := trimSpace(v)
		if !isDigits(s) {
			return 0, false
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func uintToInt64(v uint64) (int64, bool) {
	if v > math.MaxInt64 {
		return 0, false
	}
	return int64(v), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
