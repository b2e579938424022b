// Package flags detects length-based style issues in markdown prose.
package flags

import (
	"regexp"

	"github.com/verte-zerg/readscore/internal/lexical"
	"github.com/verte-zerg/readscore/internal/markup"
	"github.com/verte-zerg/readscore/internal/model"
)

const (
	// LongSentenceWords is the word count a sentence must exceed to be flagged.
	LongSentenceWords = 25
	// LongParagraphSentences is the sentence count a paragraph must exceed.
	LongParagraphSentences = 5
	// ExcerptLength is the number of characters kept in a flag excerpt.
	ExcerptLength = 100
)

var paragraphBreakRe = regexp.MustCompile(`\n\n+`)

// Detect normalizes raw markdown and returns long-sentence flags followed by
// long-paragraph flags, each in document order.
func Detect(raw string) []model.Flag {
	text := markup.Normalize(raw)
	out := []model.Flag{}

	for _, sentence := range lexical.SplitSentences(text) {
		words := len(lexical.Words(sentence))
		if words > LongSentenceWords {
			out = append(out, model.Flag{
				Type:      model.FlagLongSentence,
				Severity:  model.SeveritySuggestion,
				WordCount: words,
				Text:      Excerpt(sentence),
			})
		}
	}

	for _, para := range paragraphBreakRe.Split(text, -1) {
		count := len(lexical.SplitSentences(para))
		if count > LongParagraphSentences {
			out = append(out, model.Flag{
				Type:          model.FlagLongParagraph,
				Severity:      model.SeveritySuggestion,
				SentenceCount: count,
				Text:          Excerpt(para),
			})
		}
	}
	return out
}

// Excerpt keeps the first ExcerptLength characters of s and marks a cut
// with "...".
func Excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= ExcerptLength {
		return s
	}
	return string(runes[:ExcerptLength]) + "..."
}
