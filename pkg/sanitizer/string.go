package sanitizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NFC converts s to Unicode normalization form C so that visually identical
// input (precomposed or combining accents) is stored and rendered the same way.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// SingleLine converts a multi-line string to a single line by replacing
// line breaks with spaces and collapsing whitespace.
func SingleLine(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF and
// collapses runs of more than two blank lines.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return blankLinesRegex.ReplaceAllString(s, "\n\n")
}

// MaskEmail hides the local part of an address for log output,
// keeping the first character: "jane@example.com" -> "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return "***"
	}
	local := []rune(email[:at])
	return string(local[0]) + "***" + email[at:]
}
