package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tusavi/internal/layout"
	statsPkg "github.com/verte-zerg/tusavi/internal/stats"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	textStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	negativeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	slotEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A5A")).Background(lipgloss.Color("#262626"))
	slotFilledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2F5D2A"))
	slotHoverStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	chipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#44475A"))
	chipCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1A1A1A")).Background(lipgloss.Color("#C89A3A"))
	chipLiftedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E")).Background(lipgloss.Color("#262626")).Underline(true)
	modalStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#C89A3A")).Padding(1, 3)
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).PaddingLeft(2)
	menuActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen() {
	case screenStart:
		return m.place(m.renderStart())
	case screenInstructions:
		return m.place(m.renderInstructions())
	case screenMenu:
		return m.place(m.renderMenu())
	case screenComplete:
		return m.place(m.renderComplete())
	default:
		return m.renderGame()
	}
}

func (m *Model) place(content string) string {
	body := content + "\n\n" + m.renderHelp()
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderHelp() string {
	return m.help.ShortHelpView(m.keys.bindingsFor(m.screen()))
}

func (m *Model) renderStart() string {
	lines := []string{
		titleStyle.Render("tusavi"),
		"",
		textStyle.Render("Learn the " + layoutTitle(m.round.Layout().Name) + " layout by dragging every key into place."),
		"",
		menuActiveStyle.Render("[enter] start") + "   " + menuItemStyle.Render("[h] how to play"),
	}
	if footer := m.renderFooter(); footer != "" {
		lines = append(lines, "", footer)
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderInstructions() string {
	sc := m.round.Scoring()
	lines := []string{
		titleStyle.Render("How to play"),
		"",
		textStyle.Render("Drag each key from the pool onto its place on the keyboard."),
		successStyle.Render(fmt.Sprintf("+%d", sc.Reward)) + textStyle.Render(" for every key dropped in the right place"),
		negativeStyle.Render(fmt.Sprintf("-%d", sc.MismatchPenalty)) + textStyle.Render(" for every wrong drop"),
		negativeStyle.Render(fmt.Sprintf("-%d", sc.TimePenalty)) + textStyle.Render(fmt.Sprintf(" every %d seconds of play", sc.PenaltyInterval)),
		"",
		mutedStyle.Render("Left and right Shift fit either Shift slot; the same goes for Ctrl."),
		mutedStyle.Render("No mouse? Arrows choose, enter picks up and drops, esc cancels."),
		mutedStyle.Render("Press m during a round to pause."),
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMenu() string {
	lines := []string{titleStyle.Render("Paused"), ""}
	for i, item := range menuItems {
		if i == m.menuCursor {
			lines = append(lines, menuActiveStyle.Render("> "+item))
			continue
		}
		lines = append(lines, menuItemStyle.Render(item))
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderComplete() string {
	lines := []string{
		titleStyle.Render("Keyboard complete!"),
		"",
		"Score  " + m.renderScore(),
		"Time   " + textStyle.Render(statsPkg.FormatDuration(m.round.Elapsed())),
		"Wrong  " + textStyle.Render(fmt.Sprintf("%d", m.round.WrongAttempts())),
	}
	if m.hasLast {
		lines = append(lines, "", footerStyle.Render(fmt.Sprintf("Best %d", m.bestScore)))
	}
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderScore() string {
	score := fmt.Sprintf("%d", m.round.Score())
	if m.round.Score() < 0 {
		return negativeStyle.Render(score)
	}
	return textStyle.Render(score)
}

func (m *Model) renderHeader() string {
	segments := []string{
		titleStyle.Render("tusavi"),
		textStyle.Render(fmt.Sprintf("Placed %d/%d", m.round.PlacedCount(), m.round.Layout().Size())),
		textStyle.Render("Score ") + m.renderScore(),
		textStyle.Render("Time " + statsPkg.FormatDuration(m.round.Elapsed())),
		textStyle.Render(fmt.Sprintf("Wrong %d", m.round.WrongAttempts())),
	}
	return strings.Join(segments, "  ")
}

func (m *Model) renderFooter() string {
	if !m.hasLast {
		return ""
	}
	return footerStyle.Render(fmt.Sprintf("Last %d · Best %d", m.lastScore, m.bestScore))
}

func (m *Model) renderGame() string {
	g := m.geometry()
	pad := strings.Repeat(" ", g.originX)
	lines := make([]string, 0, g.statusY+2)
	lines = append(lines, pad+m.renderHeader(), "")

	for r, row := range g.rows {
		if r > 0 {
			for i := 0; i < boardRowGap; i++ {
				lines = append(lines, "")
			}
		}
		caps := make([]string, 0, len(row))
		for _, i := range row {
			caps = append(caps, m.renderSlot(g.slots[i]))
		}
		lines = append(lines, pad+strings.Join(caps, strings.Repeat(" ", capGap)))
	}
	for i := 0; i < boardRowGap; i++ {
		lines = append(lines, "")
	}

	caption := "drag keys up"
	if len(g.chips) == 0 {
		caption = "done!"
	}
	lines = append(lines, pad+mutedStyle.Render(caption))

	dragging, _ := m.round.Dragging()
	for _, chips := range g.chipLines {
		rendered := make([]string, 0, len(chips))
		for _, i := range chips {
			rendered = append(rendered, m.renderChip(g.chips[i], dragging))
		}
		lines = append(lines, pad+strings.Join(rendered, strings.Repeat(" ", chipGap)))
	}
	lines = append(lines, "")
	lines = append(lines, pad+m.renderStatus(dragging))
	lines = append(lines, pad+m.renderHelp())
	return strings.Join(lines, "\n")
}

func (m *Model) renderSlot(box slotBox) string {
	style := slotEmptyStyle
	text := "·"
	if label, ok := m.round.PlacedAt(box.slot); ok {
		style = slotFilledStyle
		text = layout.Display(label)
	}
	if m.slotHighlighted(box.slot) {
		style = slotHoverStyle
	}
	return style.Width(box.w).Align(lipgloss.Center).Render(text)
}

func (m *Model) slotHighlighted(s layout.Slot) bool {
	if m.mouseDrag {
		return m.hovering && m.hover == s
	}
	return m.focus == focusBoard && m.slotCursor == s
}

func (m *Model) renderChip(box chipBox, dragging string) string {
	style := chipStyle
	switch {
	case dragging != "" && box.label == dragging:
		style = chipLiftedStyle
	case m.focus == focusPool && !m.mouseDrag && box.index == m.poolCursor:
		style = chipCursorStyle
	}
	return style.Width(box.w).Align(lipgloss.Center).Render(layout.Display(box.label))
}

func (m *Model) renderStatus(dragging string) string {
	if dragging != "" {
		return menuActiveStyle.Render("Holding " + layout.Display(dragging))
	}
	return mutedStyle.Render(m.status)
}

func layoutTitle(name string) string {
	if name == layout.DefaultName {
		return "Turkish Q"
	}
	return name
}
