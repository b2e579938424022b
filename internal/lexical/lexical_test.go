package lexical

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	got := SplitSentences("Hi. A. Wow! Is it? Yes...  ok  e.g. fine")
	want := []string{"Hi.", "Wow!", "Is it?", "Yes...", "ok  e.g.", "fine"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitSentencesNewlines(t *testing.T) {
	got := SplitSentences("First line.\nSecond line!\n\nThird")
	want := []string{"First line.", "Second line!", "Third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSplitSentencesEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "ok", ". ."} {
		if got := SplitSentences(in); len(got) != 0 {
			t.Fatalf("expected no sentences for %q, got %q", in, got)
		}
	}
}

func TestWords(t *testing.T) {
	got := Words("It's John's 3rd car-park, isn't it? rock'n'roll 42")
	want := []string{"It's", "John's", "rd", "car", "park", "isn't", "it", "rock'n", "roll"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if n := len(Words("This is a short test. It has two sentences.")); n != 9 {
		t.Fatalf("expected 9 words, got %d", n)
	}
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"the":           1,
		"a":             1,
		"be":            1,
		"table":         2,
		"make":          1,
		"readability":   5,
		"syllable":      3,
		"queue":         1,
		"rhythm":        1,
		"why":           1,
		"cafe":          1,
		"apple":         2,
		"area":          2,
		"beautiful":     3,
		"don't":         1,
		"Hello":         2,
		"programming":   3,
		"documentation": 5,
	}
	for word, want := range cases {
		if got := CountSyllables(word); got != want {
			t.Fatalf("expected %d syllables for %q, got %d", want, word, got)
		}
	}
}

func TestCountSyllablesAtLeastOne(t *testing.T) {
	for _, word := range []string{"e", "ee", "eee", "hmm", "zzz", "the", "brr"} {
		if got := CountSyllables(word); got < 1 {
			t.Fatalf("expected at least 1 syllable for %q, got %d", word, got)
		}
	}
	if got := CountSyllables(""); got != 0 {
		t.Fatalf("expected 0 syllables for empty word, got %d", got)
	}
}

func TestTotalSyllables(t *testing.T) {
	if got := TotalSyllables([]string{"table", "apple", "the"}); got != 5 {
		t.Fatalf("expected 5 syllables, got %d", got)
	}
}

func TestSplitSentencesUnicodeSpace(t *testing.T) {
	got := SplitSentences("The first part ends here.\u00a0Then a second sentence follows.\vAnd a third one.")
	want := []string{"The first part ends here.", "Then a second sentence follows.", "And a third one."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got = SplitSentences("One idea.\u3000Two ideas!\u2028Three?\x1fFour")
	want = []string{"One idea.", "Two ideas!", "Three?", "Four"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTrimSpace(t *testing.T) {
	cases := map[string]string{
		"\u00a0Padded sentence.\u3000": "Padded sentence.",
		"\x1c\x1dtext\x1e\x1f":         "text",
		"\u0085\u2029":                 "",
		"inner\u00a0space":             "inner\u00a0space",
	}
	for in, want := range cases {
		if got := TrimSpace(in); got != want {
			t.Fatalf("TrimSpace(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestMustCompileUnicodeClasses(t *testing.T) {
	re := MustCompile(`^\w+\s\d+$`)
	for _, in := range []string{"déjà\u00a0\u0661\u0662", "abc_1\v42", "Ωμέγα\u20283"} {
		if !re.MatchString(in) {
			t.Fatalf("expected %q to match", in)
		}
	}
	if re.MatchString("a-b 1") {
		t.Fatalf("expected hyphen to break the word class")
	}
}
