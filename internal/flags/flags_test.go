package flags

import (
	"strings"
	"testing"

	"github.com/verte-zerg/readscore/internal/model"
)

const natoWords = "alpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike " +
	"november oscar papa quebec romeo sierra tango uniform victor whiskey xray yankee zulu"

func TestDetectLongSentence(t *testing.T) {
	got := Detect("Alpha" + strings.TrimPrefix(natoWords, "alpha") + ".")
	if len(got) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(got))
	}
	flag := got[0]
	if flag.Type != model.FlagLongSentence || flag.Severity != model.SeveritySuggestion {
		t.Fatalf("unexpected flag: %+v", flag)
	}
	if flag.WordCount != 26 || flag.SentenceCount != 0 {
		t.Fatalf("expected word count 26, got %+v", flag)
	}
	if !strings.HasSuffix(flag.Text, "...") || len([]rune(flag.Text)) != ExcerptLength+3 {
		t.Fatalf("expected truncated excerpt, got %q", flag.Text)
	}
}

func TestDetectSentenceAtThreshold(t *testing.T) {
	words := strings.Fields(natoWords)[:LongSentenceWords]
	if got := Detect(strings.Join(words, " ") + "."); len(got) != 0 {
		t.Fatalf("expected no flags for %d words, got %+v", LongSentenceWords, got)
	}
}

func TestDetectLongParagraph(t *testing.T) {
	para := "One is here. Two is here. Three is here. Four is here. Five is here. Six is here."
	got := Detect(para + "\n\nShort one.")
	if len(got) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(got))
	}
	flag := got[0]
	if flag.Type != model.FlagLongParagraph || flag.SentenceCount != 6 || flag.WordCount != 0 {
		t.Fatalf("unexpected flag: %+v", flag)
	}
	if flag.Text != para {
		t.Fatalf("expected untruncated excerpt, got %q", flag.Text)
	}
}

func TestDetectLongParagraphUnicodeSpace(t *testing.T) {
	para := "One.\u00a0Two is here.\u00a0Three is here.\u00a0Four is here.\u00a0Five is here.\u00a0Six is here."
	got := Detect(para)
	if len(got) != 1 || got[0].Type != model.FlagLongParagraph || got[0].SentenceCount != 6 {
		t.Fatalf("expected one long paragraph with 6 sentences, got %+v", got)
	}
}

func TestDetectOrderAndHeadingJoin(t *testing.T) {
	doc := "# Title\n\nAlpha" + strings.TrimPrefix(natoWords, "alpha") + ".\n\n" +
		"One is here. Two is here. Three is here. Four is here. Five is here. Six is here.\n\nShort one."
	got := Detect(doc)
	if len(got) != 2 {
		t.Fatalf("expected 2 flags, got %d", len(got))
	}
	if got[0].Type != model.FlagLongSentence || got[1].Type != model.FlagLongParagraph {
		t.Fatalf("unexpected flag order: %+v", got)
	}
	// The heading has no terminal punctuation so it joins the first sentence.
	if got[0].WordCount != 27 {
		t.Fatalf("expected 27 words, got %d", got[0].WordCount)
	}
	want := "Title\n\nAlpha bravo charlie delta echo foxtrot golf hotel india juliet kilo lima mike november oscar ..."
	if got[0].Text != want {
		t.Fatalf("expected %q, got %q", want, got[0].Text)
	}
}

func TestDetectNoFlags(t *testing.T) {
	got := Detect("Just a short sentence. Another one.")
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil flags, got %#v", got)
	}
}

func TestExcerpt(t *testing.T) {
	exact := strings.Repeat("é", ExcerptLength)
	if got := Excerpt(exact); got != exact {
		t.Fatalf("expected excerpt unchanged at %d characters", ExcerptLength)
	}
	if got := Excerpt(exact + "x"); got != exact+"..." {
		t.Fatalf("expected truncated excerpt, got %q", got)
	}
}
