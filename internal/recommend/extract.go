// Package recommend extracts actionable recommendation strings from model
// output.
//
// The extraction is lexical, not semantic: a sentence counts as a
// recommendation when it contains one of the trigger phrases. The result
// only populates an optional UI affordance on the assistant turn and is
// never treated as authoritative.
package recommend

import (
	"strings"
	"unicode"
)

// MaxRecommendations caps the extracted list.
const MaxRecommendations = 5

// triggerPhrases mark a sentence as actionable.
var triggerPhrases = []string{"recommend", "suggest", "should", "need to", "action"}

// Extract scans text for sentences containing a trigger phrase. Matches are
// trimmed, deduplicated, kept in first-seen order, and capped at
// MaxRecommendations.
func Extract(text string) []string {
	var recs []string
	seen := make(map[string]bool)

	for _, sentence := range splitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || seen[sentence] {
			continue
		}

		lower := strings.ToLower(sentence)
		for _, phrase := range triggerPhrases {
			if strings.Contains(lower, phrase) {
				seen[sentence] = true
				recs = append(recs, sentence)
				break
			}
		}

		if len(recs) == MaxRecommendations {
			break
		}
	}
	return recs
}

// splitSentences breaks text at sentence terminators (., !, ?) followed by
// whitespace or end of input. A period between digits ("12.5%") is not a
// boundary.
func splitSentences(text string) []string {
	var sentences []string
	runes := []rune(text)

	start := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		start = i + 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}
