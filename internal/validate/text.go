// Package validate holds the field validators shared by every entity that is
// built from untyped request input. Validators are pure and fail on the
// first broken constraint.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RequireText reads fields[key] as a string, trims surrounding whitespace and
// checks the trimmed length (in characters) against [minLen, maxLen].
func RequireText(fields map[string]any, key string, minLen, maxLen int) (string, error) {
	raw, ok := fields[key]
	if !ok {
		return "", newError(KindMissingField, key, "Campo em falta: "+key)
	}

	value, ok := raw.(string)
	if !ok {
		return "", newError(KindWrongType, key, fmt.Sprintf("Campo '%s' tem de ser texto (string).", key))
	}

	value = trimSpace(value)
	n := utf8.RuneCountInString(value)

	if n < minLen {
		return "", newError(KindTooShort, key, fmt.Sprintf("Campo '%s' é demasiado curto (mín %d).", key, minLen))
	}
	if n > maxLen {
		return "", newError(KindTooLong, key, fmt.Sprintf("Campo '%s' é demasiado longo (máx %d).", key, maxLen))
	}

	return value, nil
}

// isSpace is unicode.IsSpace plus the ASCII information separators
// U+001C..U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
