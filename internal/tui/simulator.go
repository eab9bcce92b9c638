package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wisdomarc/internal/stages"
)

// stageTickCmd schedules the next simulated stage transition. The timeline
// is a UX illusion: it runs on its own clock, fully decoupled from the real
// request, and ticks stamped with an old generation are ignored once the
// reply lands.
func (m Model) stageTickCmd(generation int) tea.Cmd {
	return tea.Tick(m.stageInterval, func(time.Time) tea.Msg {
		return stageTickMsg{generation: generation}
	})
}

// advanceStages marks the active stage done and promotes the next pending
// one. Reports whether a further transition remains to be scheduled.
func advanceStages(list []stages.Stage) bool {
	for i := range list {
		if list[i].Status != stages.StatusActive {
			continue
		}
		list[i].Status = stages.StatusDone
		if i+1 < len(list) {
			list[i+1].Status = stages.StatusActive
			return true
		}
		return false
	}
	return false
}
