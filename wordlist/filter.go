package wordlist

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsValidEntry reports whether a word or compound is usable as a deck
// candidate. It rejects pure numbers, single characters, punctuation-only
// strings, and anything with no alphabetic content.
func IsValidEntry(word string) bool {
	trimmed := strings.TrimSpace(word)
	if utf8.RuneCountInString(trimmed) < 2 {
		return false
	}

	hasLetter := false
	for _, r := range trimmed {
		// Latin Extended Additional covers the Vietnamese tone marks.
		if (r >= 'À' && r <= 'ỹ') || unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}

	collapsed := strings.ReplaceAll(trimmed, " ", "")
	if collapsed == "" {
		return false
	}

	allDigits := true
	for _, r := range collapsed {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return false
	}

	allPunct := true
	for _, r := range collapsed {
		if !strings.ContainsRune(".,;:!?-_()[]{}", r) {
			allPunct = false
			break
		}
	}
	return !allPunct
}

// TokenCount counts whitespace-separated syllables. Vietnamese compounds
// are written with spaces between syllables, so a count above one marks a
// compound.
func TokenCount(word string) int {
	return len(strings.Fields(word))
}
