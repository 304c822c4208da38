package engine

import (
	"git.lost.host/meutraa/yargcore/internal/input"
)

// Engine is one player's scoring run over one note track. Engines are not safe
// for concurrent use.
type Engine interface {
	// QueueInput appends an input. Inputs must be queued in time order.
	QueueInput(in input.GameInput)
	// Update advances the engine to time, stopping at every queued input and
	// every time the hit logic depends on along the way.
	Update(time float64)
	Stats() Stats
	// BaseScore is the score of a run that hits everything and never breaks
	// combo, without star power.
	BaseScore() int64
}

// Rules is the game mode half of an engine, driven by Base.
type Rules interface {
	// MutateStateWithInput applies an input. The clock has already been moved
	// to the input time.
	MutateStateWithInput(in input.GameInput)
	// UpdateHitLogic decides hits, misses and timer expiry at the current time.
	UpdateHitLogic(time float64)
	// GenerateQueuedUpdates queues every time after the current time and
	// before nextTime at which UpdateHitLogic could decide something.
	GenerateQueuedUpdates(nextTime float64)
}

// SustainRebaser is implemented by rules that accrue sustain points. Rebasing
// locks in the points accrued so far at the current multiplier.
type SustainRebaser interface {
	RebaseSustains(tick uint32)
}
