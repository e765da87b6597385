// Package validation checks raw user answers against a field's validation type.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/tbxark/docform/types"
)

const (
	MessageNumber = "⚠️ Введіть, будь ласка, лише число (наприклад: 4000,00):"
	MessageText   = "⚠️ Це має бути текст, а не число. Спробуйте ще раз:"
	MessageMixed  = "⚠️ Невірний формат. Використовуйте лише цифри, літери та крапки/дефіси."
)

var (
	numberPattern = regexp.MustCompile(`^[0-9]+([.,][0-9]+)?$`)
	mixedPattern  = regexp.MustCompile(`^[0-9A-Za-zА-Яа-яІЇЄҐіїєґ._/-]+$`)
)

// Verdict is the outcome of validating one answer.
// Value is the normalized answer and is only meaningful when Accepted is true;
// Message explains a rejection to the user.
type Verdict struct {
	Accepted bool
	Value    string
	Message  string
}

func accept(value string) Verdict {
	return Verdict{Accepted: true, Value: value}
}

func reject(message string) Verdict {
	return Verdict{Message: message}
}

// Validate applies the rule for t to raw. Unknown types are validated as text.
func Validate(t types.ValidationType, raw string) Verdict {
	value := strings.TrimSpace(raw)
	switch t {
	case types.ValidationNumber:
		if !numberPattern.MatchString(value) {
			return reject(MessageNumber)
		}
	case types.ValidationMixed:
		if !mixedPattern.MatchString(value) {
			return reject(MessageMixed)
		}
	default:
		if numericLooking(value) {
			return reject(MessageText)
		}
	}
	return accept(value)
}

// numericLooking reports whether s is non-empty and only digits once every '.' and ','
// is dropped.
func numericLooking(s string) bool {
	stripped := strings.NewReplacer(".", "", ",", "").Replace(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
