// Package model defines shared data structures.
package model

import "time"

// IntroductionSection keys content that appears before the first heading.
const IntroductionSection = "(introduction)"

// SeveritySuggestion is the only severity a flag carries.
const SeveritySuggestion = "suggestion"

// FlagType tags the kind of style issue a Flag reports.
type FlagType string

// Flag types emitted by the flag detector.
const (
	FlagLongSentence  FlagType = "long_sentence"
	FlagLongParagraph FlagType = "long_paragraph"
)

// Metrics holds readability scores for a block of text.
type Metrics struct {
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	AvgWordSyllables   float64 `json:"avg_word_syllables"`
	PassiveVoicePct    float64 `json:"passive_voice_pct"`
	SentenceCount      int     `json:"sentence_count"`
	WordCount          int     `json:"word_count"`
}

// Flag is a length-based style issue found in the document.
type Flag struct {
	Type          FlagType `json:"type"`
	Severity      string   `json:"severity"`
	WordCount     int      `json:"word_count,omitempty"`
	SentenceCount int      `json:"sentence_count,omitempty"`
	Text          string   `json:"text"`
}

// Report is the result of analysing one markdown file.
type Report struct {
	File     string             `json:"file"`
	Title    string             `json:"-"`
	Overall  Metrics            `json:"overall"`
	Sections map[string]Metrics `json:"sections"`
	Flags    []Flag             `json:"flags"`
}

// Run is a recorded analysis of a file.
type Run struct {
	File       string
	Title      string
	AnalyzedAt time.Time
	Overall    Metrics
	Sections   map[string]Metrics
	FlagCount  int
}

// RunAggregate summarizes a stored run for history reporting.
type RunAggregate struct {
	RunID      int64
	File       string
	Title      string
	AnalyzedAt time.Time
	Metrics    Metrics
	FlagCount  int
}

// HistoryConfig defines filters and options for history output.
type HistoryConfig struct {
	File    string
	Section string
	Last    int
	Window  int
}

// ColorMode controls ANSI styling of human-readable output.
type ColorMode string

// Supported color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)
