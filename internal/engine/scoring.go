package engine

import (
	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
)

// Multiplier is the combo multiplier at combo, without star power.
func (p BaseParams) Multiplier(combo int) int {
	per := p.ComboPerMultiplier
	if per <= 0 {
		per = 1
	}
	m := combo/per + 1
	if m > p.MaxMultiplier {
		m = p.MaxMultiplier
	}
	if m < 1 {
		m = 1
	}
	return m
}

func (b *Base[N]) multiplier() int {
	m := b.Params.Multiplier(b.Stats.Combo)
	if b.starPower.active {
		m *= 2
	}
	return m
}

// UpdateMultiplier recomputes the score multiplier. Sustains are rebased at
// the old multiplier before it changes.
func (b *Base[N]) UpdateMultiplier() {
	m := b.multiplier()
	if m == b.Stats.ScoreMultiplier {
		return
	}
	if r, ok := b.rules.(SustainRebaser); ok {
		r.RebaseSustains(b.CurrentTick)
	}
	b.Stats.ScoreMultiplier = m
}

func (b *Base[N]) lockedScore() int64 {
	return b.Stats.CommittedScore + b.Stats.SoloBonuses
}

// ScoreHit adds one step of combo and the points of count notes.
func (b *Base[N]) ScoreHit(count int) {
	b.Stats.Combo++
	if b.Stats.Combo > b.Stats.MaxCombo {
		b.Stats.MaxCombo = b.Stats.Combo
	}
	b.Stats.NotesHit++
	b.UpdateMultiplier()

	points := int64(b.Params.PointsPerNote * count * b.Stats.ScoreMultiplier)
	b.Stats.CommittedScore += points
	b.Stats.NoteScore += points
	b.Events.LogEvent(eventlog.ScoreEvent{
		Time:       b.CurrentTime,
		Kind:       eventlog.NoteScore,
		Delta:      points,
		Total:      b.lockedScore(),
		Multiplier: int32(b.Stats.ScoreMultiplier),
	})
}

func (b *Base[N]) ScoreMiss() {
	b.Stats.NotesMissed++
	b.ResetCombo()
}

func (b *Base[N]) ResetCombo() {
	b.Stats.Combo = 0
	b.UpdateMultiplier()
}

// CommitScore locks in points earned outside of note hits, such as finished
// sustains.
func (b *Base[N]) CommitScore(points int64, kind eventlog.ScoreKind) {
	if points == 0 {
		return
	}
	b.Stats.CommittedScore += points
	b.Events.LogEvent(eventlog.ScoreEvent{
		Time:       b.CurrentTime,
		Kind:       kind,
		Delta:      points,
		Total:      b.lockedScore(),
		Multiplier: int32(b.Stats.ScoreMultiplier),
	})
}

func (b *Base[N]) noteCount(index int) int {
	return 1 + len(b.Notes[index].ChildNotes())
}

// mark moves note index out of pending. Resolving a note twice is logged and
// ignored.
func (b *Base[N]) mark(index int, hit bool) bool {
	if index < 0 || index >= len(b.States) {
		b.Logger.Printf("note %d does not exist", index)
		return false
	}
	state := &b.States[index]
	if !state.Pending() {
		b.Logger.Printf("note %d already resolved (hit=%v missed=%v), ignoring hit=%v", index, state.WasHit, state.WasMissed, hit)
		return false
	}
	if hit {
		state.WasHit = true
	} else {
		state.WasMissed = true
	}
	return true
}

func (b *Base[N]) finishNote(index int, hit bool, hits, total int) {
	note := b.Notes[index].Base()
	result := eventlog.Hit
	if !hit {
		result = eventlog.Missed
	}
	b.Events.LogEvent(eventlog.NoteEvent{
		Time:   b.CurrentTime,
		Index:  int32(index),
		Tick:   note.Tick,
		Result: result,
		Combo:  int32(b.Stats.Combo),
	})

	if note.Is(game.FlagStarPowerStart) {
		b.starPower.stripped = false
	}
	if !hit && note.Is(game.FlagStarPower) {
		b.stripStarPower()
	}
	if hit && note.Is(game.FlagStarPowerEnd) && !b.starPower.stripped {
		b.Stats.StarPowerPhrasesHit++
		b.AwardStarPower(b.starPowerPhraseAward())
	}

	b.soloNote(note, hits, total)
}

// HitNote scores note index as hit, with all of its chord notes.
func (b *Base[N]) HitNote(index int) bool {
	if !b.mark(index, true) {
		return false
	}
	b.ScoreHit(b.noteCount(index))
	b.finishNote(index, true, 1, 1)
	return true
}

func (b *Base[N]) MissNote(index int) bool {
	if !b.mark(index, false) {
		return false
	}
	b.ScoreMiss()
	b.finishNote(index, false, 0, 1)
	return true
}

// ResolveNote finishes a note whose parts were scored one at a time, as drum
// pads are. The note counts as hit when every part was.
func (b *Base[N]) ResolveNote(index int, hits, total int) bool {
	hit := hits == total
	if !b.mark(index, hit) {
		return false
	}
	b.finishNote(index, hit, hits, total)
	return true
}

type solo struct {
	active bool
	hits   int
	total  int
}

func (b *Base[N]) soloNote(note *game.Note, hits, total int) {
	if note.Is(game.FlagSoloStart) {
		if b.solo.active {
			b.endSolo()
		}
		b.solo = solo{active: true}
	}
	if b.solo.active {
		b.solo.hits += hits
		b.solo.total += total
	}
	if note.Is(game.FlagSoloEnd) && b.solo.active {
		b.endSolo()
	}
}

func (b *Base[N]) endSolo() {
	s := b.solo
	b.solo = solo{}
	if s.total == 0 {
		return
	}
	if float64(s.hits)/float64(s.total) < b.Params.SoloBonusThreshold {
		return
	}
	bonus := int64(s.hits * b.Params.SoloBonusPerNote)
	b.Stats.SoloBonuses += bonus
	b.Events.LogEvent(eventlog.ScoreEvent{
		Time:       b.CurrentTime,
		Kind:       eventlog.SoloBonus,
		Delta:      bonus,
		Total:      b.lockedScore(),
		Multiplier: int32(b.Stats.ScoreMultiplier),
	})
}

func (b *Base[N]) IsSoloActive() bool { return b.solo.active }

// SetBaseScore stores the precomputed base score used for stars.
func (b *Base[N]) SetBaseScore(score int64) { b.baseScore = score }

func (b *Base[N]) BaseScore() int64 { return b.baseScore }

func (b *Base[N]) updateStars() {
	if b.baseScore <= 0 {
		b.Stats.Stars = 0
		return
	}
	fraction := float64(b.Stats.TotalScore()) / float64(b.baseScore)
	thresholds := b.Params.StarMultiplierThresholds
	stars := float64(len(thresholds))
	prev := 0.0
	for i, t := range thresholds {
		if fraction < t {
			stars = float64(i) + (fraction-prev)/(t-prev)
			break
		}
		prev = t
	}
	b.Stats.Stars = stars
}
