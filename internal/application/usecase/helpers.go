package usecase

import (
	"strings"
	"unicode"
)

// sanitize turns free text into a filename fragment. Unicode letters stay;
// customs product names are usually Chinese.
func sanitize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "query"
	}
	return b.String()
}
