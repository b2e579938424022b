package reportui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/readscore/internal/model"
)

func viewerReport() model.Report {
	return model.Report{
		File:  "docs/guide.md",
		Title: "Guide",
		Overall: model.Metrics{
			FleschKincaidGrade: 8.2,
			FleschReadingEase:  63.1,
			SentenceCount:      10,
			WordCount:          142,
		},
		Sections: map[string]model.Metrics{
			"Usage":   {FleschKincaidGrade: 9, WordCount: 60},
			"Install": {FleschKincaidGrade: 6.5, WordCount: 82},
		},
		Flags: []model.Flag{
			{Type: model.FlagLongSentence, Severity: model.SeveritySuggestion, WordCount: 30, Text: "A very long sentence"},
		},
	}
}

type fakeLoader struct {
	calls int
	rep   model.Report
	err   error
}

func (f *fakeLoader) load() (model.Report, error) {
	f.calls++
	if f.err != nil {
		return model.Report{}, f.err
	}
	return f.rep, nil
}

func sizedModel(t *testing.T, loader *fakeLoader) *Model {
	t.Helper()
	m := NewModel("docs/guide.md", loader.load, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestNewModelLoadsReport(t *testing.T) {
	loader := &fakeLoader{rep: viewerReport()}
	m := sizedModel(t, loader)
	if loader.calls != 1 {
		t.Fatalf("expected one load, got %d", loader.calls)
	}
	view := m.View()
	for _, want := range []string{"Overview", "Sections", "Flags", "Guide", "8.2", "63.1", "docs/guide.md"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
	if m.Init() != nil {
		t.Fatalf("expected no watch command without a watcher")
	}
}

func TestTabNavigation(t *testing.T) {
	m := sizedModel(t, &fakeLoader{rep: viewerReport()})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabSections {
		t.Fatalf("expected sections tab, got %d", m.activeTab)
	}
	view := m.View()
	if !strings.Contains(view, "Install") || !strings.Contains(view, "Usage") {
		t.Fatalf("expected section rows in view:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if m.activeTab != tabFlags {
		t.Fatalf("expected flags tab, got %d", m.activeTab)
	}
	if view := m.View(); !strings.Contains(view, "1. long_sentence (30 words)") {
		t.Fatalf("expected flag entry in view:\n%s", view)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabOverview {
		t.Fatalf("expected wrap to overview, got %d", m.activeTab)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.activeTab != tabFlags {
		t.Fatalf("expected wrap to flags, got %d", m.activeTab)
	}
}

func TestReloadKeepsLastReportOnError(t *testing.T) {
	loader := &fakeLoader{rep: viewerReport()}
	m := sizedModel(t, loader)

	loader.err = errors.New("failed to decode docs/guide.md: invalid UTF-8")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if loader.calls != 2 {
		t.Fatalf("expected reload, got %d calls", loader.calls)
	}
	view := m.View()
	if !strings.Contains(view, "invalid UTF-8") {
		t.Fatalf("expected error in footer:\n%s", view)
	}
	if !strings.Contains(view, "Guide") {
		t.Fatalf("expected previous report to stay visible:\n%s", view)
	}

	loader.err = nil
	loader.rep.Title = "Guide v2"
	m.Update(fileChangedMsg{})
	if m.errMsg != "" {
		t.Fatalf("expected error to clear, got %q", m.errMsg)
	}
	if !strings.Contains(m.View(), "Guide v2") {
		t.Fatalf("expected reloaded report")
	}
}

func TestInitialLoadError(t *testing.T) {
	m := sizedModel(t, &fakeLoader{err: errors.New("File not found: docs/guide.md")})
	view := m.View()
	if !strings.Contains(view, "Failed to load report.") || !strings.Contains(view, "File not found") {
		t.Fatalf("expected load failure in view:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m := sizedModel(t, &fakeLoader{rep: viewerReport()})
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected quit message for %q", key.String())
		}
	}
}

func TestBuildSectionTableDataSorted(t *testing.T) {
	cols, rows := buildSectionTableData(viewerReport().Sections)
	if len(cols) != 8 {
		t.Fatalf("expected 8 columns, got %d", len(cols))
	}
	if len(rows) != 2 || rows[0][0] != "Install" || rows[1][0] != "Usage" {
		t.Fatalf("expected rows sorted by heading, got %v", rows)
	}
	if rows[0][1] != "6.5" || rows[0][7] != "82" {
		t.Fatalf("unexpected row values: %v", rows[0])
	}
}

func TestFitLines(t *testing.T) {
	out := fitLines("a\nb\nc", 3, 2)
	if out != "a  \nb  " {
		t.Fatalf("unexpected fitLines output %q", out)
	}
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}
