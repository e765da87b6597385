package patch

import "strings"

var tokenEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapeToken escapes one JSON pointer reference token.
func EscapeToken(token string) string {
	return tokenEscaper.Replace(token)
}

// Pointer joins reference tokens into a JSON pointer.
func Pointer(tokens ...string) string {
	var sb strings.Builder
	for _, token := range tokens {
		sb.WriteByte('/')
		sb.WriteString(EscapeToken(token))
	}
	return sb.String()
}
