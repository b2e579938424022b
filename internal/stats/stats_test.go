package stats

import (
	"testing"

	"github.com/verte-zerg/readscore/internal/model"
)

func TestComputeShortText(t *testing.T) {
	got := Compute("This is a short test. It has two sentences.")
	want := model.Metrics{
		FleschKincaidGrade: 0.6,
		FleschReadingEase:  98.9,
		AvgSentenceLength:  4.5,
		AvgWordSyllables:   1.22,
		PassiveVoicePct:    0,
		SentenceCount:      2,
		WordCount:          9,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeWithPassive(t *testing.T) {
	got := Compute("The cat was chased by the dog. The report has been written. It will be finished soon. I ran.")
	want := model.Metrics{
		FleschKincaidGrade: 1.2,
		FleschReadingEase:  95.2,
		AvgSentenceLength:  4.8,
		AvgWordSyllables:   1.26,
		PassiveVoicePct:    75,
		SentenceCount:      4,
		WordCount:          19,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeDifficultText(t *testing.T) {
	got := Compute("Readability metrics quantify comprehension difficulty. Organizations evaluate documentation systematically!")
	if got.FleschKincaidGrade != 34.7 || got.FleschReadingEase != -145.5 {
		t.Fatalf("unexpected scores: %+v", got)
	}
	if got.AvgWordSyllables != 4.11 {
		t.Fatalf("expected 4.11 syllables per word, got %v", got.AvgWordSyllables)
	}
}

func TestComputeZeroForEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   \n\t ", "12345 67890.", "ok"} {
		if got := Compute(in); got != (model.Metrics{}) {
			t.Fatalf("expected zero metrics for %q, got %+v", in, got)
		}
	}
}

func TestRound(t *testing.T) {
	cases := []struct {
		in     float64
		places int
		want   float64
	}{
		{4.45, 1, 4.5},
		{0.125, 2, 0.12},
		{1.2222, 2, 1.22},
		{-0.04, 1, 0},
	}
	for _, tc := range cases {
		if got := round(tc.in, tc.places); got != tc.want {
			t.Fatalf("round(%v, %d): expected %v, got %v", tc.in, tc.places, tc.want, got)
		}
	}
}
