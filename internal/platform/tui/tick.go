// Package tui provides the Bubble Tea front end: the screens, the play loop
// that drives the simulation, and the SSH server that serves them remotely.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxStep caps a single simulation step, so a suspended terminal does not
// fast-forward the session when it resumes.
const maxStep = 250 * time.Millisecond

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// stepSize converts the gap between two ticks to a simulation step.
// The first tick of a loop has no previous tick and gets one nominal interval.
func stepSize(prev, now time.Time, tickRate int) time.Duration {
	if prev.IsZero() {
		if tickRate <= 0 {
			tickRate = 30
		}
		return time.Second / time.Duration(tickRate)
	}
	return min(max(now.Sub(prev), 0), maxStep)
}
