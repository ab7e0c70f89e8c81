package util

import (
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText transliterates text to ASCII, lowercases it, collapses all
// whitespace into single spaces and drops everything that is neither a letter
// nor a digit. The result is used for token-wise search matching.
func NormalizeText(text string) string {
	ascii := unidecode.Unidecode(norm.NFC.String(text))
	result := make([]rune, 0, len(ascii))
	for _, r := range ascii {
		// replace all space characters with ' '
		if unicode.IsSpace(r) {
			if len(result) == 0 || result[len(result)-1] != ' ' {
				result = append(result, ' ')
			}
			continue
		}
		// discard non letter/digit characters
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// SearchText returns the normalized form of the joined parts surrounded by spaces
// so that every token can be matched with a leading space.
func SearchText(parts ...string) string {
	normalized := make([]rune, 0, 64)
	normalized = append(normalized, ' ')
	for _, p := range parts {
		n := NormalizeText(p)
		if n == "" {
			continue
		}
		normalized = append(normalized, []rune(n)...)
		normalized = append(normalized, ' ')
	}
	return collapseSpaces(string(normalized))
}

func collapseSpaces(s string) string {
	result := make([]rune, 0, len(s))
	for _, r := range s {
		if r == ' ' && len(result) > 0 && result[len(result)-1] == ' ' {
			continue
		}
		result = append(result, r)
	}
	return string(result)
}
