package stats

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/verte-zerg/readscore/internal/model"
)

// RenderOptions controls human-readable output.
type RenderOptions struct {
	Color bool
	Width int
}

// Reading ease bands used for colouring scores.
const (
	easeEasy      = 60.0
	easeDifficult = 30.0
)

type palette struct {
	title  lipgloss.Style
	label  lipgloss.Style
	muted  lipgloss.Style
	easy   lipgloss.Style
	medium lipgloss.Style
	hard   lipgloss.Style
}

func newPalette(w io.Writer, color bool) palette {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return palette{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A")),
		label:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Foreground(lipgloss.Color("#8C8C8C")),
		easy:   r.NewStyle().Foreground(lipgloss.Color("#52C41A")),
		medium: r.NewStyle().Foreground(lipgloss.Color("#FAAD14")),
		hard:   r.NewStyle().Foreground(lipgloss.Color("#FF4D4F")),
	}
}

func (p palette) ease(ease float64) lipgloss.Style {
	switch {
	case ease >= easeEasy:
		return p.easy
	case ease >= easeDifficult:
		return p.medium
	default:
		return p.hard
	}
}

// ShouldUseColor resolves a color mode against the output writer.
func ShouldUseColor(w io.Writer, mode model.ColorMode) bool {
	switch mode {
	case model.ColorAlways:
		return true
	case model.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// TerminalWidth returns the column count of w when it is a terminal, or 0.
func TerminalWidth(w io.Writer) int {
	file, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

// RenderReport prints a report as text: overall metrics, a section table and
// the flag list.
func RenderReport(w io.Writer, rep model.Report, opts RenderOptions) error {
	p := newPalette(w, opts.Color)
	heading := rep.File
	if rep.Title != "" {
		heading = rep.Title
	}
	if _, err := fmt.Fprintln(w, p.title.Render(heading)); err != nil {
		return err
	}
	if rep.Title != "" {
		if _, err := fmt.Fprintln(w, p.muted.Render(rep.File)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	if err := renderOverall(w, p, rep.Overall); err != nil {
		return err
	}
	if err := renderSections(w, p, rep.Sections); err != nil {
		return err
	}
	return renderFlags(w, p, rep.Flags, opts.Width)
}

func renderOverall(w io.Writer, p palette, m model.Metrics) error {
	if _, err := fmt.Fprintln(w, p.label.Render("Overall")); err != nil {
		return err
	}
	style := p.ease(m.FleschReadingEase)
	rows := [][]string{
		{"Grade level", style.Render(formatScore(m.FleschKincaidGrade))},
		{"Reading ease", style.Render(formatScore(m.FleschReadingEase))},
		{"Avg sentence", fmt.Sprintf("%s words", formatScore(m.AvgSentenceLength))},
		{"Syllables/word", fmt.Sprintf("%.2f", m.AvgWordSyllables)},
		{"Passive voice", fmt.Sprintf("%s%%", formatScore(m.PassiveVoicePct))},
		{"Sentences", fmt.Sprintf("%d", m.SentenceCount)},
		{"Words", fmt.Sprintf("%d", m.WordCount)},
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderSections(w io.Writer, p palette, sections map[string]model.Metrics) error {
	if _, err := fmt.Fprintln(w, p.label.Render("Sections")); err != nil {
		return err
	}
	if len(sections) == 0 {
		if _, err := fmt.Fprintln(w, p.muted.Render("No sections with enough words to score.")); err != nil {
			return err
		}
		_, err := fmt.Fprintln(w, "")
		return err
	}
	headings := make([]string, 0, len(sections))
	for heading := range sections {
		headings = append(headings, heading)
	}
	sort.Strings(headings)

	headers := []string{"Section", "Grade", "Ease", "Avg Sent", "Syl/Word", "Passive %", "Sentences", "Words"}
	rows := make([][]string, 0, len(headings))
	for _, heading := range headings {
		m := sections[heading]
		rows = append(rows, []string{
			heading,
			formatScore(m.FleschKincaidGrade),
			formatScore(m.FleschReadingEase),
			formatScore(m.AvgSentenceLength),
			fmt.Sprintf("%.2f", m.AvgWordSyllables),
			formatScore(m.PassiveVoicePct),
			fmt.Sprintf("%d", m.SentenceCount),
			fmt.Sprintf("%d", m.WordCount),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true, 7: true}
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i == 0 {
			line = p.label.Render(line)
		} else {
			line = p.ease(sections[headings[i-1]].FleschReadingEase).Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderFlags(w io.Writer, p palette, flagList []model.Flag, width int) error {
	if _, err := fmt.Fprintln(w, p.label.Render(fmt.Sprintf("Flags (%d)", len(flagList)))); err != nil {
		return err
	}
	if len(flagList) == 0 {
		_, err := fmt.Fprintln(w, p.muted.Render("No flags."))
		return err
	}
	for _, f := range flagList {
		text := strings.ReplaceAll(f.Text, "\n", " ")
		line := fmt.Sprintf("- %s (%s): %s", f.Type, flagSize(f), text)
		line = truncateWidth(line, width)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func flagSize(f model.Flag) string {
	if f.Type == model.FlagLongParagraph {
		return fmt.Sprintf("%d sentences", f.SentenceCount)
	}
	return fmt.Sprintf("%d words", f.WordCount)
}

func formatScore(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if s == "-0.0" {
		return "0.0"
	}
	return s
}
