package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tusavi/internal/sound"
)

type soundErrMsg struct {
	cue sound.Cue
	err error
}

// playCmd plays a cue off the update loop. Failures come back as a message so
// they can be logged; they never affect the round.
func playCmd(p sound.Player, cue sound.Cue) tea.Cmd {
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		if err := p.Play(cue); err != nil {
			return soundErrMsg{cue: cue, err: err}
		}
		return nil
	}
}
