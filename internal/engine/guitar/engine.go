package guitar

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
)

// Engine scores five fret guitar, bass and rhythm.
type Engine struct {
	*engine.Base[*game.GuitarNote]

	params Params
	stats  Stats

	// Held frets, one bit per game.Fret
	held uint8
	// A fret was pressed or released since the last hit
	fretChanged bool
	// A strum arrived in this step
	strummed bool
	// Index of a note that has to be strummed after a ghost input
	ghosted int

	strumLeniency engine.EngineTimer
	hopoLeniency  engine.EngineTimer
	frontEnd      engine.EngineTimer
	whammy        engine.EngineTimer

	sustains []*sustain
}

func New(sync *synctrack.SyncTrack, track *game.InstrumentDifficulty[*game.GuitarNote], params Params, opts ...engine.Option) *Engine {
	e := &Engine{params: params, ghosted: -1}
	e.Base = engine.NewBase(sync, track, params.Base, &e.stats.BaseStats, e, opts...)

	front := -params.Base.HitWindow.FrontEnd(params.Base.HitWindow.MaxWindow)
	e.strumLeniency = e.NewTimer("strum leniency", params.StrumLeniency)
	e.hopoLeniency = e.NewTimer("hopo leniency", params.HopoLeniency)
	e.frontEnd = e.NewTimer("front end", front)
	e.whammy = e.NewTimer("whammy", params.WhammyBuffer)

	e.SetBaseScore(e.computeBaseScore())
	return e
}

func (e *Engine) Stats() engine.Stats { return &e.stats }

func (e *Engine) GuitarStats() *Stats { return &e.stats }

func fretBit(a input.Action) uint8 {
	return 1 << (uint8(game.Green) + uint8(a-input.GreenFret))
}

func (e *Engine) MutateStateWithInput(in input.GameInput) {
	switch {
	case in.Action.IsFret():
		bit := fretBit(in.Action)
		if in.Button {
			e.held |= bit
			e.checkGhost(bit)
		} else {
			e.held &^= bit
		}
		e.fretChanged = true
		e.StartTimer(&e.frontEnd)
	case in.Action.IsStrum():
		if in.Button {
			e.strummed = true
		}
	case in.Action == input.Whammy:
		e.StartTimer(&e.whammy)
	case in.Action == input.StarPower:
		if in.Button {
			e.ActivateStarPower()
		}
	default:
		e.Logger.Printf("guitar ignores input %v", in.Action)
	}
}

// checkGhost counts a fret pressed during a hopo or tap that is not part of
// it, and makes that note strum only.
func (e *Engine) checkGhost(bit uint8) {
	if !e.params.AntiGhosting || e.IsLastNoteDone() {
		return
	}
	i := e.NoteIndex
	note := e.Notes[i]
	if note.Type == game.Strum || !e.Window(i).Contains(e.CurrentTime) {
		return
	}
	if note.Mask&bit != 0 || bit < highestFret(note.Mask) {
		return
	}
	e.stats.GhostInputs++
	e.ghosted = i
}

func highestFret(mask uint8) uint8 {
	mask &= game.FretsMask
	var high uint8
	for b := uint8(1); b != 0 && b <= mask; b <<= 1 {
		if mask&b != 0 {
			high = b
		}
	}
	return high
}

func (e *Engine) GenerateQueuedUpdates(nextTime float64) {
	if !e.IsLastNoteDone() {
		w := e.Window(e.NoteIndex)
		e.QueueUpdateTime(w.Front)
		e.QueueUpdateTime(w.Back)
	}
	e.QueueTimer(&e.strumLeniency)
	e.QueueTimer(&e.hopoLeniency)
	e.QueueTimer(&e.frontEnd)
	e.QueueTimer(&e.whammy)
	for _, s := range e.sustains {
		e.QueueUpdateTime(s.endTime)
		e.QueueTimer(&s.drop)
	}
}
