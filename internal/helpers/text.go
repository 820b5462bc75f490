package helpers

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// CollapseWhitespace folds runs of whitespace (including newlines) into single
// spaces and trims the result. Rendered page text keeps only its word content.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// TitleFromURL derives a display title from the last path segment of a URL:
// dashes become spaces and the first letter is capitalized. Falls back to
// "Untitled" when the segment is empty.
func TitleFromURL(raw string) string {
	seg := raw
	if i := strings.LastIndex(seg, "/"); i != -1 {
		seg = seg[i+1:]
	}
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.TrimSpace(seg)
	if seg == "" {
		return "Untitled"
	}
	runes := []rune(strings.ToLower(seg))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// Clip truncates s to at most n bytes without splitting a UTF-8 sequence.
func Clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8Start(s[n]) {
		n--
	}
	return s[:n]
}

func utf8Start(b byte) bool { return b&0xC0 != 0x80 }
