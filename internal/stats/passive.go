package stats

import (
	"regexp"

	"github.com/verte-zerg/readscore/internal/lexical"
)

// Word boundaries are spelled out as non-word characters or text edges.
var passivePatterns = []*regexp.Regexp{
	lexical.MustCompile(`(?i)(?:^|\W)(?:is|are|was|were|been|being)\s+\w+ed(?:\W|$)`),
	lexical.MustCompile(`(?i)(?:^|\W)(?:is|are|was|were|been|being)\s+\w+en(?:\W|$)`),
	lexical.MustCompile(`(?i)(?:^|\W)(?:has|have|had)\s+been\s+\w+ed(?:\W|$)`),
	lexical.MustCompile(`(?i)(?:^|\W)(?:has|have|had)\s+been\s+\w+en(?:\W|$)`),
	lexical.MustCompile(`(?i)(?:^|\W)(?:will|shall|can|could|would|should|may|might)\s+be\s+\w+ed(?:\W|$)`),
}

// IsPassive reports whether a sentence matches any passive construction.
func IsPassive(sentence string) bool {
	for _, re := range passivePatterns {
		if re.MatchString(sentence) {
			return true
		}
	}
	return false
}

// PassiveVoicePct returns the percentage of passive sentences, rounded to one
// decimal place.
func PassiveVoicePct(sentences []string) float64 {
	if len(sentences) == 0 {
		return 0
	}
	passive := 0
	for _, s := range sentences {
		if IsPassive(s) {
			passive++
		}
	}
	return round(float64(passive)/float64(len(sentences))*100, 1)
}
