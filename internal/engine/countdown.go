package engine

import (
	"git.lost.host/meutraa/yargcore/internal/game"
)

const (
	// Shortest gap between notes that gets a countdown
	WaitCountdownMinGap = 9.0
	// The countdown ends this long before the next note
	WaitCountdownLead = 1.0
)

// WaitCountdown is a break in the notes, [Start, End) in seconds.
type WaitCountdown struct {
	Start float64
	End   float64
}

func buildCountdowns[N game.ChartNote](notes []N) []WaitCountdown {
	countdowns := []WaitCountdown{}
	prevEnd := 0.0
	for _, n := range notes {
		b := n.Base()
		if b.Time-prevEnd >= WaitCountdownMinGap {
			countdowns = append(countdowns, WaitCountdown{Start: prevEnd, End: b.Time - WaitCountdownLead})
		}
		prevEnd = max(prevEnd, b.TimeEnd())
		for _, c := range n.ChildNotes() {
			prevEnd = max(prevEnd, c.TimeEnd())
		}
	}
	return countdowns
}

func (b *Base[N]) Countdowns() []WaitCountdown { return b.countdowns }

func (b *Base[N]) IsWaitCountdownActive() bool {
	for _, c := range b.countdowns {
		if b.CurrentTime >= c.Start && b.CurrentTime < c.End {
			return true
		}
	}
	return false
}
