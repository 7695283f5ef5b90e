// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned when a name has no character that survives slugging
var ErrEmpty = errors.New("name does not contain any letter or digit")

// letters without a canonical decomposition into ASCII + combining marks
var replacements = map[rune]string{
	'ß': "ss",
	'æ': "ae",
	'Æ': "ae",
	'œ': "oe",
	'Œ': "oe",
	'ø': "o",
	'Ø': "o",
	'đ': "d",
	'Đ': "d",
	'ł': "l",
	'Ł': "l",
	'@': " at ",
}

// Make lowercases name, strips diacritics and punctuation, and joins the
// remaining words with hyphens: "Café Premium León" becomes "cafe-premium-leon".
// Whitespace, hyphens and underscores separate words; any other punctuation is
// dropped without splitting the word it sits in.
func Make(name string) (string, error) {
	var expanded strings.Builder
	for _, r := range name {
		if repl, ok := replacements[r]; ok {
			expanded.WriteString(repl)
			continue
		}
		expanded.WriteRune(r)
	}

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, expanded.String())
	if err != nil {
		return "", err
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '_':
			pendingHyphen = true
		}
	}

	if b.Len() == 0 {
		return "", ErrEmpty
	}
	return b.String(), nil
}
