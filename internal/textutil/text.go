package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText strips NUL padding left by fixed-width tag frames and
// converts the value to Unicode NFC so visually identical album names group
// together.
func NormalizeText(value string) string {
	if value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "\x00", "")
	return norm.NFC.String(value)
}

// DeriveTitle builds a human-readable title from a file path: the extension
// is dropped, separators collapse to single spaces, and words are title-cased.
// The base name is returned unchanged when nothing readable remains.
func DeriveTitle(sourcePath string) string {
	base := filepath.Base(sourcePath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range stem {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		default:
			cleaned.WriteRune(r)
			prevSpace = false
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return base
	}
	return cases.Title(language.Und).String(title)
}

// DisplayWidth returns the number of terminal cells needed to render s;
// East Asian wide characters count twice.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
