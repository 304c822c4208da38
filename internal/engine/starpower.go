package engine

import (
	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
)

// Star power is measured in measure ticks, so a bar lasts the same number of
// measures whatever the tempo or time signature.
const (
	StarPowerBarMeasures        = 8
	StarPowerPhraseMeasures     = 2
	StarPowerActivationMeasures = 4
)

// starPower amounts are only rebased when their rate of change changes, so the
// amount at any tick is a pure function of the base and the elapsed measure
// ticks.
type starPower struct {
	active   bool
	gaining  bool
	stripped bool

	baseAmount      uint32
	baseMeasureTick uint32

	endTick        uint32
	endTime        float64
	activationTime float64
}

func (b *Base[N]) fullBar() uint32 {
	return StarPowerBarMeasures * b.Sync.MeasureResolution
}

func (b *Base[N]) starPowerPhraseAward() uint32 {
	return StarPowerPhraseMeasures * b.Sync.MeasureResolution
}

func (b *Base[N]) starPowerAmountAt(measureTick uint32) uint32 {
	sp := &b.starPower
	var elapsed int64
	if measureTick > sp.baseMeasureTick {
		elapsed = int64(measureTick - sp.baseMeasureTick)
	}
	amount := int64(sp.baseAmount)
	if sp.gaining {
		amount += elapsed / 4
	}
	if sp.active {
		amount -= elapsed
	}
	if amount < 0 {
		return 0
	}
	if full := int64(b.fullBar()); amount > full {
		return uint32(full)
	}
	return uint32(amount)
}

func (b *Base[N]) starPowerAmount() uint32 {
	return b.starPowerAmountAt(b.Sync.QuarterTickToMeasureTick(b.CurrentTick))
}

func (b *Base[N]) rebaseStarPower() {
	mt := b.Sync.QuarterTickToMeasureTick(b.CurrentTick)
	b.starPower.baseAmount = b.starPowerAmountAt(mt)
	b.starPower.baseMeasureTick = mt
}

// computeStarPowerEnd finds the first tick at which active star power has
// drained to zero.
func (b *Base[N]) computeStarPowerEnd() {
	sp := &b.starPower
	elapsed := int64(sp.baseAmount)
	if sp.gaining {
		// whammy gives back a quarter of every measure tick drained
		elapsed = (elapsed*4 + 2) / 3
		for elapsed > 0 && (elapsed-1)-(elapsed-1)/4 >= int64(sp.baseAmount) {
			elapsed--
		}
		for elapsed-elapsed/4 < int64(sp.baseAmount) {
			elapsed++
		}
	}
	sp.endTick = b.Sync.MeasureTickToQuarterTick(sp.baseMeasureTick + uint32(elapsed))
	sp.endTime = b.Sync.TickToTime(sp.endTick)
}

func (b *Base[N]) logStarPower(kind eventlog.StarPowerKind) {
	b.Events.LogEvent(eventlog.StarPowerEvent{
		Time:   b.CurrentTime,
		Kind:   kind,
		Amount: b.starPower.baseAmount,
	})
}

func (b *Base[N]) AwardStarPower(amount uint32) {
	b.rebaseStarPower()
	total := uint64(b.starPower.baseAmount) + uint64(amount)
	if full := uint64(b.fullBar()); total > full {
		total = full
	}
	b.starPower.baseAmount = uint32(total)
	if b.starPower.active {
		b.computeStarPowerEnd()
	}
	b.logStarPower(eventlog.StarPowerAward)
}

func (b *Base[N]) CanActivateStarPower() bool {
	return !b.starPower.active && b.starPowerAmount() >= StarPowerActivationMeasures*b.Sync.MeasureResolution
}

// ActivateStarPower starts star power if there is enough of it.
func (b *Base[N]) ActivateStarPower() bool {
	if !b.CanActivateStarPower() {
		return false
	}
	b.rebaseStarPower()
	b.starPower.active = true
	b.starPower.activationTime = b.CurrentTime
	b.computeStarPowerEnd()
	b.Stats.StarPowerActivationCount++
	b.logStarPower(eventlog.StarPowerActivate)
	b.UpdateMultiplier()
	return true
}

func (b *Base[N]) IsStarPowerActive() bool { return b.starPower.active }

// UpdateStarPower ends star power once it has drained. Rules call it first
// thing in every hit logic update.
func (b *Base[N]) UpdateStarPower() {
	if !b.starPower.active || b.CurrentTime < b.starPower.endTime {
		return
	}
	b.rebaseStarPower()
	b.starPower.active = false
	b.starPower.baseAmount = 0
	b.Stats.TimeInStarPower += b.CurrentTime - b.starPower.activationTime
	b.logStarPower(eventlog.StarPowerDeactivate)
	b.UpdateMultiplier()
}

// SetStarPowerGain turns whammy gain on or off.
func (b *Base[N]) SetStarPowerGain(gaining bool) {
	if b.starPower.gaining == gaining {
		return
	}
	b.rebaseStarPower()
	b.starPower.gaining = gaining
	if b.starPower.active {
		b.computeStarPowerEnd()
	}
	if gaining {
		b.logStarPower(eventlog.StarPowerWhammy)
	}
}

func (b *Base[N]) IsStarPowerStripped() bool { return b.starPower.stripped }

func (b *Base[N]) stripStarPower() {
	if b.starPower.stripped {
		return
	}
	b.starPower.stripped = true
	b.logStarPower(eventlog.StarPowerStrip)
}

// StripUpcomingStarPower takes the phrase of the next note away, unless that
// note starts its phrase.
func (b *Base[N]) StripUpcomingStarPower() {
	if b.NoteIndex >= len(b.Notes) {
		return
	}
	n := b.Notes[b.NoteIndex].Base()
	if n.Is(game.FlagStarPower) && !n.Is(game.FlagStarPowerStart) {
		b.stripStarPower()
	}
}

func (b *Base[N]) queueStarPowerEnd() {
	if b.starPower.active {
		b.QueueUpdateTime(b.starPower.endTime)
	}
}
