// Package copyedit checks markdown for heading hierarchy, heading case,
// em-dashes and flagged words.
package copyedit

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/readscore/internal/lexical"
	"github.com/verte-zerg/readscore/internal/sections"
)

// Heading issue types.
const (
	SkippedLevel    = "skipped-level"
	MultipleH1      = "multiple-h1"
	NotSentenceCase = "not-sentence-case"
)

// EmDash is the formatting issue type for lines containing U+2014.
const EmDash = "em-dash"

const (
	emDash          = "—"
	codePlaceholder = "PLACEHOLDER"
	emDashMessage   = "Em-dash (" + emDash + ") found. Use an alternative phrasing or punctuation."
)

var (
	inlineCodeRe  = regexp.MustCompile("`[^`]+`")
	pascalCaseRe  = regexp.MustCompile(`^[A-Z][a-z]+[A-Z]`)
	capitalisedRe = regexp.MustCompile(`^[A-Z][a-z]`)
)

// WordIssue is a flagged word or phrase found on a line.
type WordIssue struct {
	Word       string `json:"word"`
	Line       int    `json:"line"`
	LineText   string `json:"lineText"`
	Suggestion string `json:"suggestion,omitempty"`
}

// HeadingIssue is a hierarchy or capitalisation problem with a heading.
type HeadingIssue struct {
	Type    string `json:"type"`
	Line    int    `json:"line"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// FormattingIssue is a punctuation problem on a line.
type FormattingIssue struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	LineText string `json:"lineText"`
	Message  string `json:"message"`
}

// Summary counts issues by category.
type Summary struct {
	ForbiddenWords int `json:"forbiddenWords"`
	Headings       int `json:"headings"`
	Formatting     int `json:"formatting"`
	Total          int `json:"total"`
}

// Result is the outcome of checking one document.
type Result struct {
	File           string            `json:"file"`
	ForbiddenWords []WordIssue       `json:"forbiddenWords"`
	Headings       []HeadingIssue    `json:"headings"`
	Formatting     []FormattingIssue `json:"formatting"`
	Summary        Summary           `json:"summary"`
}

// Check runs every check over raw markdown. The path is only recorded.
func Check(path, raw string, list WordList) Result {
	res := Result{
		File:           path,
		ForbiddenWords: FindWords(raw, list),
		Headings:       CheckHeadings(sections.Headings(raw)),
		Formatting:     CheckFormatting(raw),
	}
	res.Summary = Summary{
		ForbiddenWords: len(res.ForbiddenWords),
		Headings:       len(res.Headings),
		Formatting:     len(res.Formatting),
	}
	res.Summary.Total = res.Summary.ForbiddenWords + res.Summary.Headings + res.Summary.Formatting
	return res
}

// CheckHeadings reports extra H1 headings, then skipped levels, then
// headings that are not in sentence case.
func CheckHeadings(headings []sections.Heading) []HeadingIssue {
	out := []HeadingIssue{}

	h1 := 0
	for _, h := range headings {
		if h.Depth != 1 {
			continue
		}
		h1++
		if h1 > 1 {
			out = append(out, HeadingIssue{
				Type:    MultipleH1,
				Line:    h.Line,
				Text:    h.Text,
				Message: fmt.Sprintf("Multiple H1 headings found. %q is H1 number %d; a document should have only one.", h.Text, h1),
			})
		}
	}

	last := 0
	for _, h := range headings {
		if last > 0 && h.Depth > last+1 {
			out = append(out, HeadingIssue{
				Type:    SkippedLevel,
				Line:    h.Line,
				Text:    h.Text,
				Message: fmt.Sprintf("Heading level skipped: H%d → H%d. Expected H%d.", last, h.Depth, last+1),
			})
		}
		last = h.Depth
	}

	for _, h := range headings {
		if !IsSentenceCase(h.Text) {
			out = append(out, HeadingIssue{
				Type:    NotSentenceCase,
				Line:    h.Line,
				Text:    h.Text,
				Message: fmt.Sprintf("Heading is not in sentence case: %q.", h.Text),
			})
		}
	}
	return out
}

// IsSentenceCase reports whether only the first word of text is
// capitalised. Inline code, all-caps words, PascalCase words and words
// after a colon or em-dash are allowed.
func IsSentenceCase(text string) bool {
	words := strings.FieldsFunc(inlineCodeRe.ReplaceAllString(text, codePlaceholder), lexical.IsSpace)
	for i := 1; i < len(words); i++ {
		word := words[i]
		if word == codePlaceholder {
			continue
		}
		if word == strings.ToUpper(word) && utf8.RuneCountInString(word) > 1 {
			continue
		}
		if pascalCaseRe.MatchString(word) {
			continue
		}
		prev := words[i-1]
		if strings.HasSuffix(prev, ":") || strings.HasSuffix(prev, emDash) {
			continue
		}
		if capitalisedRe.MatchString(word) {
			return false
		}
	}
	return true
}

// CheckFormatting reports every line containing an em-dash.
func CheckFormatting(raw string) []FormattingIssue {
	out := []FormattingIssue{}
	for i, line := range strings.Split(raw, "\n") {
		if !strings.Contains(line, emDash) {
			continue
		}
		out = append(out, FormattingIssue{
			Type:     EmDash,
			Line:     i + 1,
			LineText: line,
			Message:  emDashMessage,
		})
	}
	return out
}
