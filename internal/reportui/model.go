// Package reportui provides the Bubble Tea report viewer.
package reportui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/readscore/internal/model"
)

const (
	tabOverview = iota
	tabSections
	tabFlags
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	flagTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAAD14")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Loader produces a fresh report for the viewed file.
type Loader func() (model.Report, error)

// Model implements the Bubble Tea report viewer.
type Model struct {
	path    string
	load    Loader
	watcher *Watcher

	report   model.Report
	loaded   bool
	loadedAt time.Time
	errMsg   string

	tabs         []string
	activeTab    int
	viewports    []viewport.Model
	sectionTable table.Model

	width  int
	height int
}

// NewModel constructs a viewer for path and performs the first load. A nil
// watcher disables live reloading.
func NewModel(path string, load Loader, watcher *Watcher) *Model {
	m := &Model{
		path:    path,
		load:    load,
		watcher: watcher,
		tabs:    []string{"Overview", "Sections", "Flags"},
	}
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.sectionTable = table.New(table.WithStyles(sectionTableStyles()))
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.wait()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case fileChangedMsg:
		m.reload()
		return m, m.waitForChange()
	case watchErrMsg:
		m.errMsg = fmt.Sprintf("watch error: %v", msg.err)
		return m, m.waitForChange()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "r":
			m.reload()
			return m, nil
		case "g", "home":
			if m.activeTab == tabSections {
				m.sectionTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabSections {
				m.sectionTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			var cmd tea.Cmd
			if m.activeTab == tabSections {
				m.sectionTable, cmd = m.sectionTable.Update(msg)
				return m, cmd
			}
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// reload re-runs the loader. A failed load keeps the last good report.
func (m *Model) reload() {
	rep, err := m.load()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.report = rep
	m.loaded = true
	m.loadedAt = time.Now()
	m.applySectionTable()
	m.renderTabContents()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := maxInt(1, lipgloss.Height(activeNavStyle.Render("X")))
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = maxInt(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.sectionTable.SetWidth(m.width)
	m.sectionTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabSections {
		m.sectionTable.Focus()
	} else {
		m.sectionTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	status := m.path
	if m.loaded {
		status += "  loaded " + m.loadedAt.Format("15:04:05")
	}
	if m.watcher != nil {
		status += "  watching"
	}
	return tabs + "\n" + headerStyle.Render(truncateLine(status, m.width))
}

func (m *Model) renderFooter() string {
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Reload: r  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return help
}

func (m *Model) renderBody(height int) string {
	if !m.loaded {
		return fitLines("Failed to load report.", m.width, height)
	}
	if m.activeTab == tabSections {
		if len(m.report.Sections) == 0 {
			return fitLines("No sections with enough words to score.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.sectionTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if !m.loaded {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, width))
	m.viewports[tabFlags].SetContent(renderFlags(m.report.Flags, width))
}

func renderOverview(rep model.Report, width int) string {
	heading := rep.File
	if rep.Title != "" {
		heading = rep.Title
	}
	o := rep.Overall
	cards := []string{
		metricCard("Grade", fmt.Sprintf("%.1f", o.FleschKincaidGrade)),
		metricCard("Ease", fmt.Sprintf("%.1f", o.FleschReadingEase)),
		metricCard("Avg Sent", fmt.Sprintf("%.1f", o.AvgSentenceLength)),
		metricCard("Syl/Word", fmt.Sprintf("%.2f", o.AvgWordSyllables)),
		metricCard("Passive", fmt.Sprintf("%.1f%%", o.PassiveVoicePct)),
		metricCard("Sentences", fmt.Sprintf("%d", o.SentenceCount)),
		metricCard("Words", fmt.Sprintf("%d", o.WordCount)),
		metricCard("Flags", fmt.Sprintf("%d", len(rep.Flags))),
	}
	var grid string
	if width < 80 {
		grid = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:4]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[4:]...)
		grid = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return titleStyle.Render(heading) + "\n\n" + grid
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderFlags(flagList []model.Flag, width int) string {
	if len(flagList) == 0 {
		return "No flags."
	}
	const indent = "   "
	blocks := make([]string, 0, len(flagList))
	for i, f := range flagList {
		size := fmt.Sprintf("%d words", f.WordCount)
		if f.Type == model.FlagLongParagraph {
			size = fmt.Sprintf("%d sentences", f.SentenceCount)
		}
		lines := []string{flagTitleStyle.Render(fmt.Sprintf("%d. %s (%s)", i+1, f.Type, size))}
		for _, line := range wrapText(f.Text, width-len(indent)) {
			lines = append(lines, indent+line)
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) applySectionTable() {
	cols, rows := buildSectionTableData(m.report.Sections)
	m.sectionTable.SetColumns(cols)
	m.sectionTable.SetRows(rows)
	if m.sectionTable.Cursor() >= len(rows) {
		m.sectionTable.SetCursor(maxInt(0, len(rows)-1))
	}
}

func buildSectionTableData(sections map[string]model.Metrics) ([]table.Column, []table.Row) {
	headings := make([]string, 0, len(sections))
	headingWidth := len("Section")
	for heading := range sections {
		headings = append(headings, heading)
		headingWidth = maxInt(headingWidth, runewidth.StringWidth(heading))
	}
	sort.Strings(headings)
	columns := []table.Column{
		{Title: "Section", Width: minInt(headingWidth, 40)},
		{Title: "Grade", Width: 6},
		{Title: "Ease", Width: 7},
		{Title: "Avg Sent", Width: 8},
		{Title: "Syl/Word", Width: 8},
		{Title: "Passive %", Width: 9},
		{Title: "Sentences", Width: 9},
		{Title: "Words", Width: 6},
	}
	rows := make([]table.Row, 0, len(headings))
	for _, heading := range headings {
		s := sections[heading]
		rows = append(rows, table.Row{
			heading,
			fmt.Sprintf("%.1f", s.FleschKincaidGrade),
			fmt.Sprintf("%.1f", s.FleschReadingEase),
			fmt.Sprintf("%.1f", s.AvgSentenceLength),
			fmt.Sprintf("%.2f", s.AvgWordSyllables),
			fmt.Sprintf("%.1f", s.PassiveVoicePct),
			fmt.Sprintf("%d", s.SentenceCount),
			fmt.Sprintf("%d", s.WordCount),
		})
	}
	return columns, rows
}

func sectionTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
