package guitar

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
)

type sustain struct {
	index int
	note  *game.GuitarNote
	mask  uint8
	// Number of frets the sustain scores for
	weight int

	extended  bool
	disjoint  bool
	starPower bool

	endTick uint32
	endTime float64

	// Points are base plus the ticks since baseTick at the current multiplier
	baseTick uint32
	base     int64

	drop engine.EngineTimer
}

func (e *Engine) newSustain(index int, note, fret *game.GuitarNote, mask uint8, weight int) *sustain {
	return &sustain{
		index:     index,
		note:      fret,
		mask:      mask,
		weight:    weight,
		extended:  note.IsExtendedSustain,
		disjoint:  note.IsDisjoint,
		starPower: fret.Is(game.FlagStarPower) && !e.IsStarPowerStripped(),
		endTick:   fret.TickEnd(),
		endTime:   e.Sync.TickToTime(fret.TickEnd()),
		baseTick:  fret.Tick,
		drop:      e.NewTimer("sustain drop", e.params.SustainDropLeniency),
	}
}

func fretMask(n *game.GuitarNote) uint8 {
	return 1 << n.Fret
}

func (e *Engine) startSustains(index int, note *game.GuitarNote) {
	started := []*sustain{}
	if note.IsDisjoint {
		for _, n := range note.AllNotes() {
			if n.IsSustain() {
				started = append(started, e.newSustain(index, note, n, fretMask(n), 1))
			}
		}
	} else if note.IsSustain() {
		started = append(started, e.newSustain(index, note, note, note.Mask, len(note.AllNotes())))
	}
	for _, s := range started {
		e.sustains = append(e.sustains, s)
		e.States[index].SustainActive = true
		e.Events.LogEvent(eventlog.SustainEvent{Time: e.CurrentTime, Index: int32(index), Kind: eventlog.SustainStart})
	}
}

// SustainPoints is the score of ticks of sustain at multiplier held on weight
// frets.
func (e *Engine) SustainPoints(ticks uint32, multiplier, weight int) int64 {
	return int64(ticks) * int64(multiplier) * int64(weight) * int64(e.params.SustainPointsPerBeat) / int64(e.Sync.Resolution)
}

func (e *Engine) pointsAt(s *sustain, tick uint32) int64 {
	if tick > s.endTick {
		tick = s.endTick
	}
	if tick <= s.baseTick {
		return s.base
	}
	return s.base + e.SustainPoints(tick-s.baseTick, e.stats.ScoreMultiplier, s.weight)
}

// RebaseSustains locks in the points of every sustain at the multiplier in
// effect, so a multiplier change only affects ticks after tick.
func (e *Engine) RebaseSustains(tick uint32) {
	for _, s := range e.sustains {
		if tick <= s.baseTick {
			continue
		}
		s.base = e.pointsAt(s, tick)
		s.baseTick = min(tick, s.endTick)
	}
}

func (e *Engine) isSustainHeld(s *sustain) bool {
	held := e.held & game.FretsMask
	if s.mask == game.OpenMask {
		return s.extended || held == 0
	}
	if s.extended || s.disjoint {
		return held&s.mask == s.mask
	}
	return FretsMatch(held, s.mask, s.note.IsChord())
}

func (e *Engine) updateSustains() {
	kept := e.sustains[:0]
	for _, s := range e.sustains {
		switch {
		case e.CurrentTime >= s.endTime:
			e.finishSustain(s, s.endTick, eventlog.SustainEnd)
			continue
		case e.isSustainHeld(s):
			e.DisableTimer(&s.drop)
		case !s.drop.IsActive():
			e.StartTimer(&s.drop)
		case e.ExpireTimer(&s.drop):
			e.finishSustain(s, e.CurrentTick, eventlog.SustainDrop)
			continue
		}
		kept = append(kept, s)
	}
	e.sustains = kept
	// a disjoint chord is still active while any of its frets is
	for _, s := range kept {
		e.States[s.index].SustainActive = true
	}
}

func (e *Engine) finishSustain(s *sustain, tick uint32, kind eventlog.SustainKind) {
	points := e.pointsAt(s, tick)
	e.stats.SustainScore += points
	e.CommitScore(points, eventlog.SustainScore)
	e.States[s.index].SustainActive = false
	e.Events.LogEvent(eventlog.SustainEvent{Time: e.CurrentTime, Index: int32(s.index), Kind: kind, Points: points})
}

func (e *Engine) endAllSustains() {
	for _, s := range e.sustains {
		e.finishSustain(s, e.CurrentTick, eventlog.SustainDrop)
	}
	e.sustains = e.sustains[:0]
}

func (e *Engine) updatePending() {
	var pending int64
	for _, s := range e.sustains {
		pending += e.pointsAt(s, e.CurrentTick)
	}
	e.stats.PendingScore = pending
}

func (e *Engine) computeBaseScore() int64 {
	p := e.params.Base
	var score int64
	for i, note := range e.Notes {
		all := note.AllNotes()
		multiplier := p.Multiplier(i + 1)
		score += int64(p.PointsPerNote * len(all) * multiplier)
		if note.IsDisjoint {
			for _, n := range all {
				score += e.SustainPoints(n.TickLength, multiplier, 1)
			}
		} else {
			score += e.SustainPoints(note.TickLength, multiplier, len(all))
		}
	}
	return score
}
