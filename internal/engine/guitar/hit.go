package guitar

import (
	"git.lost.host/meutraa/yargcore/internal/game"
)

func (e *Engine) UpdateHitLogic(time float64) {
	e.UpdateStarPower()

	if e.strummed {
		e.strummed = false
		e.handleStrum()
	}

	e.updateSustains()
	e.checkMisses()
	if e.checkHit() {
		// a late hit can start a sustain that has already ended
		e.updateSustains()
		e.checkMisses()
	}

	if e.ExpireTimer(&e.strumLeniency) {
		e.overstrum()
	}
	e.ExpireTimer(&e.hopoLeniency)
	e.ExpireTimer(&e.frontEnd)
	e.ExpireTimer(&e.whammy)

	e.updateStarPowerGain()
	e.updatePending()
}

func (e *Engine) handleStrum() {
	if e.hopoLeniency.IsActiveAt(e.CurrentTime) {
		// the strum belongs to the hopo that was just fretted
		e.DisableTimer(&e.hopoLeniency)
		return
	}
	if e.strumLeniency.IsActive() {
		e.overstrum()
	}
	e.StartTimer(&e.strumLeniency)
}

// FretsMatch reports whether held frets hit a note of mask. Open notes need no
// frets, chords need exactly their frets, and single notes allow lower frets
// to be held as anchors.
func FretsMatch(held, mask uint8, chord bool) bool {
	held &= game.FretsMask
	if mask == game.OpenMask {
		return held == 0
	}
	mask &= game.FretsMask
	if chord {
		return held == mask
	}
	lowest := mask & -mask
	return held&^(lowest-1) == mask
}

// hitHeld is the held frets with the frets of extended sustains taken out.
func (e *Engine) hitHeld() uint8 {
	held := e.held
	for _, s := range e.sustains {
		if s.extended && s.mask != game.OpenMask {
			held &^= s.mask
		}
	}
	return held
}

func (e *Engine) checkHit() bool {
	if e.IsLastNoteDone() {
		return false
	}
	i := e.NoteIndex
	note := e.Notes[i]
	if !e.Window(i).Contains(e.CurrentTime) {
		return false
	}
	if !FretsMatch(e.hitHeld(), note.Mask, note.IsChord()) {
		return false
	}

	switch {
	case e.strumLeniency.IsActiveAt(e.CurrentTime):
		e.DisableTimer(&e.strumLeniency)
		if note.Type != game.Strum {
			e.stats.HoposStrummed++
		}
	case e.canFretHit(i):
		e.StartTimer(&e.hopoLeniency)
	default:
		return false
	}

	e.hitNote(i)
	return true
}

func (e *Engine) canFretHit(i int) bool {
	note := e.Notes[i]
	switch {
	case e.ghosted == i:
		return false
	case !e.fretChanged:
		return false
	case !e.params.InfiniteFrontEnd && !e.frontEnd.IsActiveAt(e.CurrentTime):
		return false
	}
	return note.Type == game.Tap ||
		note.Is(game.FlagLane) ||
		(note.Type == game.Hopo && (e.stats.Combo > 0 || i == 0))
}

func (e *Engine) hitNote(i int) {
	note := e.Notes[i]
	if !e.HitNote(i) {
		return
	}
	e.NoteIndex++
	e.fretChanged = false
	e.ghosted = -1
	e.startSustains(i, note)
}

func (e *Engine) checkMisses() {
	for !e.IsLastNoteDone() && e.CurrentTime >= e.Window(e.NoteIndex).Back {
		e.MissNote(e.NoteIndex)
		e.NoteIndex++
		e.ghosted = -1
	}
}

func (e *Engine) isLaneActive() bool {
	return !e.IsLastNoteDone() && e.Notes[e.NoteIndex].Is(game.FlagLane)
}

// overstrum punishes a strum that hit nothing, unless nothing can be hit yet,
// everything is over, a countdown is running or a lane is being played.
func (e *Engine) overstrum() {
	switch {
	case e.NoteIndex == 0:
		return
	case e.IsLastNoteDone() && len(e.sustains) == 0:
		return
	case e.IsWaitCountdownActive():
		return
	case e.isLaneActive():
		return
	}

	e.endAllSustains()
	e.StripUpcomingStarPower()
	e.ResetCombo()
	e.stats.Overstrums++
	e.Logger.Printf("overstrum at %v, note %d", e.CurrentTime, e.NoteIndex)
}

func (e *Engine) updateStarPowerGain() {
	gaining := false
	if e.whammy.IsActiveAt(e.CurrentTime) {
		for _, s := range e.sustains {
			if s.starPower {
				gaining = true
				break
			}
		}
	}
	e.SetStarPowerGain(gaining)
}
