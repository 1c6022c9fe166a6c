package scrape

import (
	"regexp"
	"strings"
)

var (
	// adLineRe matches a standalone "Advertisement" line.
	adLineRe = regexp.MustCompile(`(?im)^\s*Advertisement\s*$`)

	// disclaimerRe marks the start of a syndicated-feed disclaimer;
	// everything from the match onward is cut.
	disclaimerRe = regexp.MustCompile(`(?is)\(\s*This content is sourced.*?\)`)

	// agencyTagRe matches simple agency tags like "(ANI)".
	agencyTagRe = regexp.MustCompile(`(?i)\(\s*ANI\s*\)`)

	// blankLinesRe collapses runs of blank lines to one paragraph break.
	blankLinesRe = regexp.MustCompile(`\n\s*\n`)
)

// junkPhrases mark subscription and premium boilerplate lines, which are
// dropped wholesale.
var junkPhrases = []string{
	"unlock exclusive insights",
	"take your experience further with premium",
	"member only benefits",
	"already a member? sign in",
	"subscribe now",
	"read more with a subscription",
}

// CleanArtifacts strips common news-page artifacts from extracted body
// text: advertisement lines, syndication disclaimers (cutting everything
// after them), agency tags, and subscription boilerplate.
func CleanArtifacts(text string) string {
	if text == "" {
		return ""
	}

	text = adLineRe.ReplaceAllString(text, "")

	if loc := disclaimerRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	text = agencyTagRe.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	clean := lines[:0]
	for _, line := range lines {
		if containsJunk(line) {
			continue
		}
		clean = append(clean, line)
	}
	text = strings.Join(clean, "\n")

	text = blankLinesRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

func containsJunk(line string) bool {
	lower := strings.ToLower(line)
	for _, phrase := range junkPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
