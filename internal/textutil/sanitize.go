package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest sheet name spreadsheet applications accept.
const MaxSheetNameLength = 31

// sheetNameReplacer replaces characters that are forbidden in sheet names.
var sheetNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"[", "(",
	"]", ")",
)

// SanitizeSheetName converts an arbitrary string into a legal sheet name.
// Slashes, backslashes, colons, and asterisks become dashes, brackets become
// parentheses, question marks and control characters are removed, leading
// and trailing spaces and apostrophes are trimmed, and the result is cut to
// MaxSheetNameLength runes. The result may be empty.
func SanitizeSheetName(name string) string {
	name = sheetNameReplacer.Replace(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.Trim(name, " '")
	return strings.Trim(TruncateRunes(name, MaxSheetNameLength), " '")
}

// TruncateRunes returns s cut to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
