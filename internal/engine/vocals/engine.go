package vocals

import (
	"math"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
)

// Engine scores vocals. Every chart note is a phrase; the ticks of its sung
// notes that were matched in pitch decide whether the phrase is hit when it
// ends.
type Engine struct {
	*engine.Base[*game.VocalNote]

	params Params
	stats  Stats

	pitch  float64
	voiced bool

	// Ticks before accruedTick have been judged
	accruedTick uint32
	ticksHit    uint32

	// Singable ticks and end time of each phrase
	totals []uint32
	ends   []float64
}

func New(sync *synctrack.SyncTrack, track *game.InstrumentDifficulty[*game.VocalNote], params Params, opts ...engine.Option) *Engine {
	e := &Engine{params: params}
	e.Base = engine.NewBase(sync, track, params.Base, &e.stats.BaseStats, e, opts...)

	e.totals = make([]uint32, len(track.Notes))
	e.ends = make([]float64, len(track.Notes))
	scoring := 0
	for i, phrase := range track.Notes {
		e.totals[i] = singableTicks(phrase)
		e.ends[i] = sync.TickToTime(phrase.TickEnd())
		if e.totals[i] > 0 {
			scoring++
		}
	}
	e.stats.TotalNotes = scoring
	e.SetBaseScore(e.computeBaseScore())
	return e
}

func (e *Engine) Stats() engine.Stats { return &e.stats }

func (e *Engine) VocalStats() *Stats { return &e.stats }

// TODO: percussion notes need a dedicated hit path; until then they are
// neither sung nor counted towards the phrase.
func singable(n *game.VocalNote) bool {
	return !n.IsPercussion
}

// overlap is the number of ticks [from, to) shares with the note, clipped to
// the phrase.
func overlap(phrase, n *game.VocalNote, from, to uint32) uint32 {
	from = max(from, n.Tick, phrase.Tick)
	to = min(to, n.TickEnd(), phrase.TickEnd())
	if to <= from {
		return 0
	}
	return to - from
}

func singableTicks(phrase *game.VocalNote) uint32 {
	var total uint32
	for _, n := range phrase.Children {
		if singable(n) {
			total += overlap(phrase, n, 0, math.MaxUint32)
		}
	}
	return total
}

// PitchMatches compares pitches ignoring the octave.
func PitchMatches(sung, target, window float64) bool {
	d := math.Mod(math.Abs(sung-target), 12)
	return math.Min(d, 12-d) <= window
}

func (e *Engine) MutateStateWithInput(in input.GameInput) {
	e.advance()
	switch in.Action {
	case input.VoxPitch:
		e.pitch = float64(in.Axis)
		e.voiced = in.Button
	case input.StarPower:
		if in.Button {
			e.ActivateStarPower()
		}
	default:
		e.Logger.Printf("vocals ignore input %v", in.Action)
	}
}

func (e *Engine) UpdateHitLogic(time float64) {
	e.advance()
}

// advance judges the ticks sung since the last step with the pitch that was
// held over them, and ends every phrase whose end has been reached.
func (e *Engine) advance() {
	e.UpdateStarPower()
	for !e.IsLastNoteDone() && e.CurrentTime >= e.ends[e.NoteIndex] {
		e.accrue(e.Notes[e.NoteIndex].TickEnd())
		e.endPhrase(e.NoteIndex)
		e.NoteIndex++
		e.ticksHit = 0
	}
	e.accrue(e.CurrentTick)
}

func (e *Engine) accrue(to uint32) {
	from := e.accruedTick
	if to <= from {
		return
	}
	e.accruedTick = to
	if e.IsLastNoteDone() || !e.voiced {
		return
	}
	phrase := e.Notes[e.NoteIndex]
	for _, n := range phrase.Children {
		if singable(n) && PitchMatches(e.pitch, float64(n.Pitch), e.params.PitchWindow) {
			e.ticksHit += overlap(phrase, n, from, to)
		}
	}
}

func (e *Engine) endPhrase(i int) {
	total := e.totals[i]
	if total == 0 {
		return
	}
	e.stats.TicksHit += uint64(e.ticksHit)
	e.stats.TotalTicks += uint64(total)

	if float64(e.ticksHit)/float64(total) >= e.params.PhraseHitPercent {
		e.ScoreHit(1)
		e.ResolveNote(i, 1, 1)
		return
	}
	e.ScoreMiss()
	e.ResolveNote(i, 0, 1)
}

func (e *Engine) GenerateQueuedUpdates(nextTime float64) {
	if !e.IsLastNoteDone() {
		e.QueueUpdateTime(e.ends[e.NoteIndex])
	}
}

func (e *Engine) computeBaseScore() int64 {
	p := e.params.Base
	var score int64
	combo := 0
	for _, total := range e.totals {
		if total == 0 {
			continue
		}
		combo++
		score += int64(p.PointsPerNote * p.Multiplier(combo))
	}
	return score
}
