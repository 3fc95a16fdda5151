package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmailMaxLen is the longest email accepted, in characters.
const EmailMaxLen = 150

const emailChars = `[^@\s\v\x1c-\x1f\x{85}\p{Z}]`

// Shape checks only, not RFC 5322.
var (
	// RE2's \s is ASCII only; the class also excludes \v, the ASCII
	// separators U+001C..U+001F, NEL and every Unicode space separator.
	emailPattern = regexp.MustCompile(`^` + emailChars + `+@` + emailChars + `+\.` + emailChars + `+$`)
	phonePattern = regexp.MustCompile(`^\+?\p{Nd}{6,20}$`)
)

// Email checks that text looks like local@domain.tld and returns it unchanged.
// Callers are expected to trim first.
func Email(text string) (string, error) {
	if utf8.RuneCountInString(text) > EmailMaxLen {
		return "", newError(KindTooLong, "email", fmt.Sprintf("Email demasiado longo (máx %d).", EmailMaxLen))
	}

	if !emailPattern.MatchString(text) {
		return "", newError(KindInvalidFormat, "email", "Email inválido.")
	}

	return text, nil
}

// Phone accepts digits with an optional leading '+', ignoring spaces, e.g.
// "+351 912 345 678". The original text is returned, spaces included.
func Phone(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, " ", "")

	if !phonePattern.MatchString(cleaned) {
		return "", newError(KindInvalidFormat, "contacto", "Contacto inválido. Use apenas dígitos e opcional '+'.")
	}

	return text, nil
}
