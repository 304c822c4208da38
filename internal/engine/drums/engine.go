package drums

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
)

// Engine scores four lane drums. Every pad of a chord is hit and scored on its
// own; the chord resolves once all of its pads are hit or its window passes.
type Engine struct {
	*engine.Base[*game.DrumNote]

	params Params
	stats  Stats

	// Pads hit so far, one bit per game.Pad, indexed like the notes
	hitPads []uint8
	// Pads struck in this step
	struck []game.Pad
}

func New(sync *synctrack.SyncTrack, track *game.InstrumentDifficulty[*game.DrumNote], params Params, opts ...engine.Option) *Engine {
	e := &Engine{params: params}
	e.Base = engine.NewBase(sync, track, params.Base, &e.stats.BaseStats, e, opts...)
	e.hitPads = make([]uint8, len(track.Notes))

	pads := 0
	for _, n := range track.Notes {
		pads += len(n.AllNotes())
	}
	e.stats.TotalNotes = pads
	e.SetBaseScore(e.computeBaseScore())
	return e
}

func (e *Engine) Stats() engine.Stats { return &e.stats }

func (e *Engine) DrumStats() *Stats { return &e.stats }

var padActions = map[input.Action]game.Pad{
	input.Kick:         game.Kick,
	input.RedPad:       game.RedDrum,
	input.YellowPad:    game.YellowDrum,
	input.BluePad:      game.BlueDrum,
	input.GreenPad:     game.GreenDrum,
	input.YellowCymbal: game.YellowCymbal,
	input.BlueCymbal:   game.BlueCymbal,
	input.GreenCymbal:  game.GreenCymbal,
}

func (e *Engine) MutateStateWithInput(in input.GameInput) {
	if in.Action == input.StarPower {
		if in.Button {
			e.ActivateStarPower()
		}
		return
	}
	pad, ok := padActions[in.Action]
	if !ok {
		e.Logger.Printf("drums ignore input %v", in.Action)
		return
	}
	if in.Button {
		e.struck = append(e.struck, pad)
	}
}

// colour maps cymbals onto the drum of the same colour.
func colour(p game.Pad) game.Pad {
	switch p {
	case game.YellowCymbal:
		return game.YellowDrum
	case game.BlueCymbal:
		return game.BlueDrum
	case game.GreenCymbal:
		return game.GreenDrum
	}
	return p
}

func (e *Engine) padMatches(note, struck game.Pad) bool {
	if e.params.ProDrums {
		return note == struck
	}
	return colour(note) == colour(struck)
}

func (e *Engine) UpdateHitLogic(time float64) {
	e.UpdateStarPower()
	e.checkMisses()
	for _, pad := range e.struck {
		if !e.hitPad(pad) {
			e.overhit(pad)
		}
	}
	e.struck = e.struck[:0]
	e.checkMisses()
}

// hitPad scores the earliest unhit note of pad whose window holds the current
// time.
func (e *Engine) hitPad(pad game.Pad) bool {
	for i := e.NoteIndex; i < len(e.Notes); i++ {
		w := e.Window(i)
		if e.CurrentTime < w.Front {
			return false
		}
		if !e.States[i].Pending() || !w.Contains(e.CurrentTime) {
			continue
		}
		for j, n := range e.Notes[i].AllNotes() {
			bit := uint8(1) << j
			if e.hitPads[i]&bit != 0 || !e.padMatches(n.Pad, pad) {
				continue
			}
			e.hitPads[i] |= bit
			e.ScoreHit(1)
			e.resolveIfDone(i)
			return true
		}
	}
	return false
}

func (e *Engine) padsHit(i int) (hits, total int) {
	total = len(e.Notes[i].AllNotes())
	for j := 0; j < total; j++ {
		if e.hitPads[i]&(1<<j) != 0 {
			hits++
		}
	}
	return hits, total
}

func (e *Engine) resolveIfDone(i int) {
	hits, total := e.padsHit(i)
	if hits < total {
		return
	}
	e.ResolveNote(i, hits, total)
	e.skipResolved()
}

func (e *Engine) skipResolved() {
	for !e.IsLastNoteDone() && !e.States[e.NoteIndex].Pending() {
		e.NoteIndex++
	}
}

func (e *Engine) checkMisses() {
	for !e.IsLastNoteDone() && e.CurrentTime >= e.Window(e.NoteIndex).Back {
		i := e.NoteIndex
		hits, total := e.padsHit(i)
		for j := hits; j < total; j++ {
			e.ScoreMiss()
		}
		e.ResolveNote(i, hits, total)
		e.skipResolved()
	}
}

// overhit punishes a pad that hit nothing, under the same exemptions as an
// overstrum.
func (e *Engine) overhit(pad game.Pad) {
	switch {
	case e.NoteIndex == 0:
		return
	case e.IsLastNoteDone():
		return
	case e.IsWaitCountdownActive():
		return
	case e.Notes[e.NoteIndex].Is(game.FlagLane):
		return
	}
	e.StripUpcomingStarPower()
	e.ResetCombo()
	e.stats.Overhits++
	e.Logger.Printf("overhit %v at %v, note %d", pad, e.CurrentTime, e.NoteIndex)
}

func (e *Engine) GenerateQueuedUpdates(nextTime float64) {
	if !e.IsLastNoteDone() {
		e.QueueUpdateTime(e.Window(e.NoteIndex).Back)
	}
}

func (e *Engine) computeBaseScore() int64 {
	p := e.params.Base
	var score int64
	combo := 0
	for _, n := range e.Notes {
		for range n.AllNotes() {
			combo++
			score += int64(p.PointsPerNote * p.Multiplier(combo))
		}
	}
	return score
}
