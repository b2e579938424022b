package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/readscore/internal/model"
)

func sampleReport() model.Report {
	return model.Report{
		File:  "docs/guide.md",
		Title: "Guide",
		Overall: model.Metrics{
			FleschKincaidGrade: 8.2,
			FleschReadingEase:  63.1,
			AvgSentenceLength:  14.2,
			AvgWordSyllables:   1.45,
			PassiveVoicePct:    12.5,
			SentenceCount:      10,
			WordCount:          142,
		},
		Sections: map[string]model.Metrics{
			"Usage":   {FleschKincaidGrade: 9, FleschReadingEase: 55, SentenceCount: 4, WordCount: 60},
			"Install": {FleschKincaidGrade: 6.5, FleschReadingEase: 72.3, SentenceCount: 6, WordCount: 82},
		},
		Flags: []model.Flag{
			{Type: model.FlagLongSentence, Severity: model.SeveritySuggestion, WordCount: 30, Text: "A very long sentence that keeps going"},
			{Type: model.FlagLongParagraph, Severity: model.SeveritySuggestion, SentenceCount: 6, Text: "First sentence. Second sentence."},
		},
	}
}

func TestRenderReportPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, sampleReport(), RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "Guide\ndocs/guide.md\n\nOverall\n") {
		t.Fatalf("unexpected heading block:\n%s", out)
	}
	for _, want := range []string{
		"  Grade level    8.2",
		"  Reading ease   63.1",
		"  Avg sentence   14.2 words",
		"  Syllables/word 1.45",
		"  Passive voice  12.5%",
		"Section Grade Ease Avg Sent Syl/Word Passive % Sentences Words",
		"Flags (2)",
		"- long_sentence (30 words): A very long sentence that keeps going",
		"- long_paragraph (6 sentences): First sentence. Second sentence.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Install") > strings.Index(out, "Usage") {
		t.Fatalf("expected sections sorted by heading:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape sequences without color")
	}
}

func TestRenderReportTruncatesFlags(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, sampleReport(), RenderOptions{Width: 30}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "- long_sentence (30 words):...\n") {
		t.Fatalf("expected truncated flag line:\n%s", buf.String())
	}
}

func TestRenderReportFlattensFlagLines(t *testing.T) {
	rep := sampleReport()
	rep.Flags = []model.Flag{
		{Type: model.FlagLongParagraph, Severity: model.SeveritySuggestion, SentenceCount: 6, Text: "First line.\nSecond line."},
	}

	var buf bytes.Buffer
	if err := RenderReport(&buf, rep, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "- long_paragraph (6 sentences): First line. Second line.\n") {
		t.Fatalf("expected flag on one line:\n%s", buf.String())
	}

	buf.Reset()
	if err := RenderReport(&buf, rep, RenderOptions{Width: 45}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "- long_paragraph (6 sentences): First line...\n") {
		t.Fatalf("expected truncated flag line:\n%s", buf.String())
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	rep := model.Report{File: "empty.md"}
	if err := RenderReport(&buf, rep, RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "empty.md\n\n") {
		t.Fatalf("expected file as heading:\n%s", out)
	}
	if !strings.Contains(out, "No sections with enough words to score.") || !strings.HasSuffix(out, "Flags (0)\nNo flags.\n") {
		t.Fatalf("unexpected empty report output:\n%s", out)
	}
}

func TestRenderReportColor(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, sampleReport(), RenderOptions{Color: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected escape sequences with color")
	}
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	if ShouldUseColor(&buf, model.ColorAuto) {
		t.Fatalf("expected no color for non-terminal writer")
	}
	if !ShouldUseColor(&buf, model.ColorAlways) {
		t.Fatalf("expected color when forced")
	}
	if ShouldUseColor(&buf, model.ColorNever) {
		t.Fatalf("expected no color when disabled")
	}
}

func TestFormatScore(t *testing.T) {
	cases := map[float64]string{
		8.2:   "8.2",
		-0.04: "0.0",
		10:    "10.0",
		-3.5:  "-3.5",
	}
	for in, want := range cases {
		if got := formatScore(in); got != want {
			t.Fatalf("formatScore(%v) = %q, want %q", in, got, want)
		}
	}
}
