// Package lexical splits plain text into sentences and words and estimates
// syllable counts.
package lexical

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	sentenceBreakRe = MustCompile(`[.!?]\s+`)
	wordRe          = regexp.MustCompile(`[a-zA-Z]+(?:'[a-zA-Z]+)?`)
)

const vowels = "aeiouy"

// SplitSentences splits text on whitespace that follows '.', '!' or '?'.
// Fragments of two characters or fewer are dropped.
func SplitSentences(text string) []string {
	var sentences []string
	prev := 0
	for _, loc := range sentenceBreakRe.FindAllStringIndex(text, -1) {
		// Keep the punctuation with the sentence it terminates.
		sentences = appendSentence(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	return appendSentence(sentences, text[prev:])
}

func appendSentence(sentences []string, fragment string) []string {
	fragment = TrimSpace(fragment)
	if utf8.RuneCountInString(fragment) <= 2 {
		return sentences
	}
	return append(sentences, fragment)
}

// Words extracts alphabetic words; a single apostrophe suffix stays attached.
func Words(text string) []string {
	return wordRe.FindAllString(text, -1)
}

// CountSyllables estimates the syllable count of an English word.
func CountSyllables(word string) int {
	word = TrimSpace(strings.ToLower(word))
	if word == "" {
		return 0
	}
	if utf8.RuneCountInString(word) <= 2 {
		return 1
	}
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") {
		word = word[:len(word)-1]
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune(vowels, r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}
	if count < 1 {
		return 1
	}
	return count
}

// TotalSyllables sums the syllable estimates of words.
func TotalSyllables(words []string) int {
	total := 0
	for _, w := range words {
		total += CountSyllables(w)
	}
	return total
}
