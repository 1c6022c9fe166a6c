package flashcard

import (
	"fmt"
	"strings"
	"unicode"
)

// Minimum lengths a generated card must reach per field.
const (
	minQuestionLen = 20
	minAnswerLen   = 50
	minContextLen  = 50
	minSummaryLen  = 100

	// answerDetailLen is the length past which an answer without any
	// digit is still accepted as detailed enough.
	answerDetailLen = 100
)

// placeholders are phrases that mark a field as generated filler rather
// than content extracted from the article. Matched case-insensitively.
var placeholders = []string{
	"n/a",
	"none",
	"unknown",
	"not applicable",
	"no information",
	"not mentioned",
}

// Validate checks a generated flashcard against the quality rules and
// returns one issue string per violation. An empty result means the card
// is acceptable.
func Validate(fc *Flashcard) []string {
	var issues []string

	required := []struct {
		name  string
		value string
	}{
		{"question", fc.Question},
		{"answer", fc.Answer},
		{"context", fc.Context},
		{"summary", fc.Summary},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			issues = append(issues, fmt.Sprintf("%s is empty", f.name))
		}
	}

	if len([]rune(fc.Question)) < minQuestionLen {
		issues = append(issues, fmt.Sprintf("question too short (< %d chars)", minQuestionLen))
	}
	if len([]rune(fc.Answer)) < minAnswerLen {
		issues = append(issues, fmt.Sprintf("answer too short (< %d chars)", minAnswerLen))
	}
	if len([]rune(fc.Context)) < minContextLen {
		issues = append(issues, fmt.Sprintf("context too short (< %d chars)", minContextLen))
	}
	if len([]rune(fc.Summary)) < minSummaryLen {
		issues = append(issues, fmt.Sprintf("summary too short (< %d chars)", minSummaryLen))
	}

	checked := []struct {
		name  string
		value string
	}{
		{"answer", fc.Answer},
		{"context", fc.Context},
		{"summary", fc.Summary},
	}
	for _, f := range checked {
		if containsPlaceholder(f.value) {
			issues = append(issues, fmt.Sprintf("%s contains placeholder text", f.name))
		}
	}

	if !containsDigit(fc.Answer) && len([]rune(fc.Answer)) < answerDetailLen {
		issues = append(issues, "answer lacks specific details (numbers, statistics)")
	}

	return issues
}

func containsPlaceholder(s string) bool {
	lower := strings.ToLower(s)
	for _, ph := range placeholders {
		if strings.Contains(lower, ph) {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
