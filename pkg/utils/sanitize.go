package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxUserTextLength bounds free text such as shot notes and player names
const MaxUserTextLength = 500

var (
	injectionPattern = regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous|disregard\s+previous|system\s*:|you\s+are\s+(now|a)\b|pretend\s+you\s+are|\bact\s+as\b|<\s*(system|user|assistant)\s*>`)
	controlChars     = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	htmlTags         = regexp.MustCompile(`<[^>]+>`)
	whitespace       = regexp.MustCompile(`\s+`)
	idPattern        = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// SanitizeText truncates free text, strips control characters and HTML tags
// and collapses whitespace. Text that looks like an instruction injection is
// rejected with ErrInvalidInput.
func SanitizeText(text string) (string, error) {
	if text == "" {
		return "", nil
	}

	if runes := []rune(text); len(runes) > MaxUserTextLength {
		text = string(runes[:MaxUserTextLength])
	}

	if injectionPattern.MatchString(text) {
		return "", fmt.Errorf("%w: text contains suspicious patterns", ErrInvalidInput)
	}

	text = controlChars.ReplaceAllString(text, " ")
	text = htmlTags.ReplaceAllString(text, "")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text), nil
}

// ValidID reports whether id is 1-50 characters of letters, digits, dash or underscore
func ValidID(id string) bool {
	return len(id) > 0 && len(id) <= 50 && idPattern.MatchString(id)
}
