package stats

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/readscore/internal/model"
	"github.com/verte-zerg/readscore/internal/store"
)

// DefaultTrendWindow is the moving average window applied to history trends.
const DefaultTrendWindow = 5

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// History contains recorded runs prepared for trend rendering.
type History struct {
	Runs     []model.RunAggregate
	Section  string
	Window   int
	Headings []string
}

// LoadHistory reads recorded runs and applies the last-N limit.
func LoadHistory(ctx context.Context, st *store.Store, cfg model.HistoryConfig) (History, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return History{}, fmt.Errorf("failed to list runs: %w", err)
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	h := History{Runs: runs, Section: cfg.Section, Window: cfg.Window}
	if cfg.Section != "" && len(runs) == 0 {
		h.Headings, err = st.ListSectionHeadings(ctx, cfg.File)
		if err != nil {
			return History{}, fmt.Errorf("failed to list sections: %w", err)
		}
	}
	return h, nil
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}

// Sparkline renders the values as a single line of block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesRange([]Series{{Values: values}})
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkRunes[len(sparkRunes)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkRunes) - 1
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * float64(last)))
		b.WriteRune(sparkRunes[min(max(idx, 0), last)])
	}
	return b.String()
}

// RenderHistory prints a summary, the runs table and grade/ease trends.
func RenderHistory(w io.Writer, h History, opts RenderOptions) error {
	p := newPalette(w, opts.Color)
	if len(h.Runs) == 0 {
		msg := "No runs recorded."
		if h.Section != "" {
			msg = fmt.Sprintf("No runs recorded for section %q.", h.Section)
			if len(h.Headings) > 0 {
				msg += " Recorded sections: " + strings.Join(h.Headings, ", ")
			}
		}
		_, err := fmt.Fprintln(w, msg)
		return err
	}
	if err := renderHistorySummary(w, p, h); err != nil {
		return err
	}
	if err := renderRunsTable(w, p, h.Runs, opts.Width); err != nil {
		return err
	}
	return renderTrends(w, p, h, opts)
}

func renderHistorySummary(w io.Writer, p palette, h History) error {
	title := "History"
	if h.Section != "" {
		title = fmt.Sprintf("History: %s", h.Section)
	}
	if _, err := fmt.Fprintln(w, p.title.Render(title)); err != nil {
		return err
	}
	files := map[string]struct{}{}
	bestEase := math.Inf(-1)
	for _, run := range h.Runs {
		files[run.File] = struct{}{}
		bestEase = math.Max(bestEase, run.Metrics.FleschReadingEase)
	}
	first := h.Runs[0].Metrics
	latest := h.Runs[len(h.Runs)-1].Metrics
	rows := [][]string{
		{"Runs", fmt.Sprintf("%d", len(h.Runs))},
		{"Files", fmt.Sprintf("%d", len(files))},
		{"Latest grade", formatScore(latest.FleschKincaidGrade)},
		{"Latest ease", p.ease(latest.FleschReadingEase).Render(formatScore(latest.FleschReadingEase))},
		{"Best ease", formatScore(bestEase)},
		{"Grade change", formatDelta(latest.FleschKincaidGrade - first.FleschKincaidGrade)},
		{"Ease change", formatDelta(latest.FleschReadingEase - first.FleschReadingEase)},
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderRunsTable(w io.Writer, p palette, runs []model.RunAggregate, width int) error {
	headers := []string{"Analyzed", "File", "Grade", "Ease", "Words", "Flags"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.AnalyzedAt.Local().Format("2006-01-02 15:04"),
			run.File,
			formatScore(run.Metrics.FleschKincaidGrade),
			formatScore(run.Metrics.FleschReadingEase),
			fmt.Sprintf("%d", run.Metrics.WordCount),
			fmt.Sprintf("%d", run.FlagCount),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for i, line := range formatTable(headers, rows, rightAlign) {
		line = truncateWidth(line, width)
		if i == 0 {
			line = p.label.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderTrends(w io.Writer, p palette, h History, opts RenderOptions) error {
	window := h.Window
	if window <= 0 {
		window = DefaultTrendWindow
	}
	grades := make([]float64, len(h.Runs))
	eases := make([]float64, len(h.Runs))
	for i, run := range h.Runs {
		grades[i] = run.Metrics.FleschKincaidGrade
		eases[i] = run.Metrics.FleschReadingEase
	}
	smoothGrades := MovingAverage(grades, window)
	smoothEases := MovingAverage(eases, window)

	if _, err := fmt.Fprintln(w, p.label.Render(fmt.Sprintf("Trend (moving average, window %d)", window))); err != nil {
		return err
	}
	rows := [][]string{
		{"Grade", Sparkline(smoothGrades)},
		{"Ease", Sparkline(smoothEases)},
	}
	for _, line := range formatTable(nil, rows, nil) {
		if _, err := fmt.Fprintln(w, "  "+strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	if len(h.Runs) < 2 {
		return nil
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	plotOpts := PlotOptions{Width: opts.Width, Color: opts.Color}
	if err := PlotSeries(w, "Grade level", []Series{
		{Name: "grade", Values: grades},
		{Name: "average", Values: smoothGrades},
	}, plotOpts); err != nil {
		return err
	}
	return PlotSeries(w, "Reading ease", []Series{
		{Name: "ease", Values: eases},
		{Name: "average", Values: smoothEases},
	}, plotOpts)
}

func formatDelta(v float64) string {
	s := formatScore(v)
	if v > 0 && s != "0.0" {
		return "+" + s
	}
	return s
}
