package statsui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/tusavi/internal/layout"
	"github.com/verte-zerg/tusavi/internal/model"
	"github.com/verte-zerg/tusavi/internal/stats"
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
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	curveStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	tableStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

const topMissed = 5

func (m *Model) renderHeader() string {
	tabs := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			tabs = append(tabs, activeNavStyle.Render(tab))
		} else {
			tabs = append(tabs, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	layoutName := m.cfg.Layout
	if layoutName == "" {
		layoutName = "any"
	}
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: layout=%s  since=%s  last=%s  window=%d", layoutName, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	if m.filterMode {
		lines := []string{"Settings (enter to apply, esc to cancel)"}
		for _, input := range m.filterInputs {
			lines = append(lines, input.View())
		}
		if m.filterError != "" {
			lines = append(lines, errorStyle.Render(m.filterError))
		}
		return strings.Join(lines, "\n")
	}
	if m.activeTab == tabKeyTable {
		switch {
		case len(m.report.Rounds) == 0:
			return "No rounds found."
		case len(m.report.KeyAggsWindow) == 0:
			return "No key stats found."
		default:
			return tableStyle.Render(m.keyTable.View())
		}
	}
	return m.overview.View()
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Rounds) == 0 {
		return "No rounds found. Finish a round to start tracking progress."
	}
	sections := []string{
		renderSummaryCards(report.Rounds, width),
		renderCurves(report.Rounds, window, width),
		renderTopMissed(report.KeyAggsWindow),
	}
	return strings.TrimRight(strings.Join(sections, "\n\n"), "\n")
}

func renderSummaryCards(rounds []model.RoundAggregate, width int) string {
	s := stats.Summarize(rounds)
	cards := []string{
		metricCard("Rounds", fmt.Sprintf("%d", s.Rounds)),
		metricCard("Avg Score", fmt.Sprintf("%.1f", s.AvgScore)),
		metricCard("Best Score", fmt.Sprintf("%d", s.BestScore)),
		metricCard("Avg Time", stats.FormatDuration(int(math.Round(s.AvgSeconds)))),
		metricCard("Best Time", stats.FormatDuration(s.BestSeconds)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", s.AvgAccuracy*100)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderCurves(rounds []model.RoundAggregate, window, width int) string {
	lines := stats.CurveLines(stats.Curves(rounds, window), width)
	out := []string{cardTitleStyle.Render(fmt.Sprintf("Learning Curves (window %d)", max(window, 1)))}
	for _, line := range lines {
		out = append(out, curveStyle.Render(line))
	}
	return strings.Join(out, "\n")
}

func renderTopMissed(aggs []model.KeyAggregate) string {
	top := stats.TopKeysByMisses(aggs, topMissed)
	if len(top) == 0 {
		return cardTitleStyle.Render("No misplaced keys in this window.")
	}
	parts := make([]string, 0, len(top))
	for _, agg := range top {
		parts = append(parts, fmt.Sprintf("%s ×%d", layout.Display(agg.Key), agg.Wrong))
	}
	return cardTitleStyle.Render("Most misplaced: ") + cardValueStyle.Render(strings.Join(parts, "  "))
}

func newKeyTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Key", Width: 10},
			{Title: "Accuracy", Width: 9},
			{Title: "Correct", Width: 7},
			{Title: "Wrong", Width: 6},
			{Title: "Total", Width: 6},
		}),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.Padding(0, 1).PaddingLeft(0)
	styles.Selected = styles.Cell.Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	t.SetStyles(styles)
	return t
}

func keyTableRows(aggs []model.KeyAggregate) []table.Row {
	rows := make([]table.Row, 0, len(aggs))
	for _, r := range stats.KeyRows(aggs) {
		rows = append(rows, table.Row{
			r.Key,
			fmt.Sprintf("%.2f%%", r.Accuracy*100),
			strconv.Itoa(r.Correct),
			strconv.Itoa(r.Wrong),
			strconv.Itoa(r.Correct + r.Wrong),
		})
	}
	return rows
}

func padLine(line string, width int) string {
	if lineWidth := lipgloss.Width(line); lineWidth < width {
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
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}
