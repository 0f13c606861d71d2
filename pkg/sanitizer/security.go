package sanitizer

import (
	"strings"
	"unicode"
)

// RemoveNullBytes removes NUL bytes.
func RemoveNullBytes(s string) string {
	return strings.ReplaceAll(s, "\x00", "")
}

// RemoveControlSequences removes ANSI escape sequences and control characters
// other than newline, carriage return and tab.
func RemoveControlSequences(s string) string {
	result := ansiEscapeRegex.ReplaceAllString(s, "")
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return -1
		}
		return r
	}, result)
}

// LimitLength truncates s to at most maxLength runes.
func LimitLength(s string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// PreventHeaderInjection strips the characters that could split a mail or
// HTTP header value into several headers.
func PreventHeaderInjection(s string) string {
	result := strings.ReplaceAll(s, "\r", "")
	result = strings.ReplaceAll(result, "\n", "")
	return RemoveNullBytes(result)
}

// SanitizeSecureFilename makes a filename safe by replacing path separators
// and reserved characters.
func SanitizeSecureFilename(filename string) string {
	dangerous := []string{
		"/", "\\", ":", "*", "?", "\"", "<", ">", "|",
		"\x00", "\r", "\n", "\t", "@", " ",
	}

	result := filename
	for _, char := range dangerous {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.Trim(result, " ._")
	result = LimitLength(result, 100)

	if result == "" {
		result = "file"
	}
	return result
}
