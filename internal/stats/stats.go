// Package stats contains readability calculations and reporting.
package stats

import (
	"strconv"

	"github.com/verte-zerg/readscore/internal/lexical"
	"github.com/verte-zerg/readscore/internal/model"
)

// Compute scores plain (already normalized) text. Text without sentences or
// words yields zero metrics.
func Compute(text string) model.Metrics {
	sentences := lexical.SplitSentences(text)
	words := lexical.Words(text)
	if len(sentences) == 0 || len(words) == 0 {
		return model.Metrics{}
	}

	avgSentenceLength := float64(len(words)) / float64(len(sentences))
	avgSyllables := float64(lexical.TotalSyllables(words)) / float64(len(words))

	return model.Metrics{
		FleschKincaidGrade: round(FleschKincaidGrade(avgSentenceLength, avgSyllables), 1),
		FleschReadingEase:  round(FleschReadingEase(avgSentenceLength, avgSyllables), 1),
		AvgSentenceLength:  round(avgSentenceLength, 1),
		AvgWordSyllables:   round(avgSyllables, 2),
		PassiveVoicePct:    PassiveVoicePct(sentences),
		SentenceCount:      len(sentences),
		WordCount:          len(words),
	}
}

// FleschKincaidGrade estimates the U.S. school grade level of the text.
func FleschKincaidGrade(avgSentenceLength, avgSyllables float64) float64 {
	// Explicit conversions stop the compiler from fusing multiply-adds.
	return float64(0.39*avgSentenceLength) + float64(11.8*avgSyllables) - 15.59
}

// FleschReadingEase returns the 0-100 ease score (higher is easier).
func FleschReadingEase(avgSentenceLength, avgSyllables float64) float64 {
	return 206.835 - float64(1.015*avgSentenceLength) - float64(84.6*avgSyllables)
}

// round rounds to the given number of decimal places using exact decimal
// rounding of the binary value, ties to even.
func round(v float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
