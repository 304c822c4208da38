package engine

import (
	"log"
	"math"

	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
	"golang.org/x/exp/slices"
)

// Base is the update scheduler shared by every game mode. It owns the clock,
// the input queue and the queue of future update times, and calls into Rules
// at every stop.
type Base[N game.ChartNote] struct {
	Sync    *synctrack.SyncTrack
	Notes   []N
	States  game.NoteStates
	Windows []Window
	Params  BaseParams
	Stats   *BaseStats

	Logger *log.Logger
	Events *eventlog.Logger

	CurrentTime float64
	CurrentTick uint32
	// First note that is not yet hit or missed
	NoteIndex int

	rules      Rules
	inputs     []input.GameInput
	inputIndex int
	queued     []float64
	tempoHint  int
	stepped    bool

	starPower  starPower
	solo       solo
	countdowns []WaitCountdown
	baseScore  int64
}

func NewBase[N game.ChartNote](sync *synctrack.SyncTrack, track *game.InstrumentDifficulty[N], params BaseParams, stats *BaseStats, rules Rules, opts ...Option) *Base[N] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if params.ComboPerMultiplier <= 0 {
		params.ComboPerMultiplier = 1
	}
	if params.MaxMultiplier <= 0 {
		params.MaxMultiplier = 1
	}

	b := &Base[N]{
		Sync:        sync,
		Notes:       track.Notes,
		States:      track.NewStates(),
		Params:      params,
		Stats:       stats,
		Logger:      o.logger,
		Events:      o.events,
		CurrentTime: math.Inf(-1),
		rules:       rules,
	}
	b.Windows = b.buildWindows()
	b.countdowns = buildCountdowns(track.Notes)

	stats.ScoreMultiplier = 1
	stats.TotalNotes = len(track.Notes)
	stats.TotalStarPowerPhrases = track.StarPowerPhrases
	return b
}

func (b *Base[N]) buildWindows() []Window {
	windows := make([]Window, len(b.Notes))
	for i, n := range b.Notes {
		t := n.Base().Time
		gap := math.Inf(1)
		if i > 0 {
			gap = t - b.Notes[i-1].Base().Time
		}
		if i+1 < len(b.Notes) {
			gap = math.Min(gap, b.Notes[i+1].Base().Time-t)
		}
		size := b.Params.HitWindow.Size(gap) / b.Params.speed()
		windows[i] = Window{
			Front: t + b.Params.HitWindow.FrontEnd(size),
			Back:  t + b.Params.HitWindow.BackEnd(size),
		}
	}
	return windows
}

// NewTimer returns a timer running at the song speed.
func (b *Base[N]) NewTimer(name string, duration float64) EngineTimer {
	t := NewTimer(name, duration)
	t.SetSpeed(b.Params.speed())
	return t
}

func (b *Base[N]) StartTimer(t *EngineTimer) {
	t.Start(b.CurrentTime)
	b.Events.LogEvent(eventlog.TimerEvent{Time: b.CurrentTime, Name: t.Name, Action: eventlog.TimerStart, EndTime: t.EndTime()})
}

func (b *Base[N]) DisableTimer(t *EngineTimer) {
	if !t.IsActive() {
		return
	}
	t.Disable()
	b.Events.LogEvent(eventlog.TimerEvent{Time: b.CurrentTime, Name: t.Name, Action: eventlog.TimerDisable, EndTime: t.EndTime()})
}

// ExpireTimer disables t if it has run out, and reports whether it did.
func (b *Base[N]) ExpireTimer(t *EngineTimer) bool {
	if !t.IsExpired(b.CurrentTime) {
		return false
	}
	t.Disable()
	b.Events.LogEvent(eventlog.TimerEvent{Time: b.CurrentTime, Name: t.Name, Action: eventlog.TimerExpire, EndTime: t.EndTime()})
	return true
}

// QueueTimer queues the end of t if it is running.
func (b *Base[N]) QueueTimer(t *EngineTimer) {
	if t.IsActive() {
		b.QueueUpdateTime(t.EndTime())
	}
}

func (b *Base[N]) QueueInput(in input.GameInput) {
	if n := len(b.inputs); n > 0 && in.Time < b.inputs[n-1].Time {
		b.Logger.Printf("input %v at %v queued after input at %v", in.Action, in.Time, b.inputs[n-1].Time)
	}
	b.inputs = append(b.inputs, in)
}

// QueueUpdateTime makes the next Update past time stop at it. Times at or
// before the current time are ignored.
func (b *Base[N]) QueueUpdateTime(time float64) {
	if time <= b.CurrentTime || math.IsNaN(time) || math.IsInf(time, 0) {
		return
	}
	i, found := slices.BinarySearch(b.queued, time)
	if found {
		return
	}
	b.queued = slices.Insert(b.queued, i, time)
}

func (b *Base[N]) Update(time float64) {
	if time < b.CurrentTime {
		b.Logger.Printf("update to %v is before the current time %v, ignored", time, b.CurrentTime)
		return
	}

	for b.inputIndex < len(b.inputs) && b.inputs[b.inputIndex].Time <= time {
		in := b.inputs[b.inputIndex]
		b.inputIndex++

		at := in.Time
		if at < b.CurrentTime {
			b.Logger.Printf("input %v at %v arrived after %v, processed late", in.Action, in.Time, b.CurrentTime)
			at = b.CurrentTime
		}
		b.runQueuedUpdates(at)
		b.step(at, &in)
	}
	b.runQueuedUpdates(time)
	b.step(time, nil)
	b.updateStats()
}

// runQueuedUpdates steps through every queued time strictly before until.
func (b *Base[N]) runQueuedUpdates(until float64) {
	for {
		b.queueStarPowerEnd()
		b.rules.GenerateQueuedUpdates(until)
		if len(b.queued) == 0 || b.queued[0] >= until {
			return
		}
		b.step(b.queued[0], nil)
	}
}

func (b *Base[N]) step(time float64, in *input.GameInput) {
	if nil == in && b.stepped && time == b.CurrentTime {
		return
	}
	b.stepped = true
	b.CurrentTime = time
	b.CurrentTick = b.Sync.TimeToTickHint(time, &b.tempoHint)

	n := 0
	for n < len(b.queued) && b.queued[n] <= time {
		n++
	}
	b.queued = b.queued[n:]

	if nil != in {
		b.Events.LogEvent(eventlog.InputEvent{
			Time:    in.Time,
			Action:  in.Action,
			Button:  in.Button,
			Integer: in.Integer,
			Axis:    in.Axis,
		})
		b.rules.MutateStateWithInput(*in)
	}
	b.rules.UpdateHitLogic(time)
}

func (b *Base[N]) updateStats() {
	amount := b.starPowerAmount()
	b.Stats.StarPowerTickAmount = amount
	b.Stats.StarPowerBarAmount = float64(amount) / float64(b.fullBar())
	b.Stats.IsStarPowerActive = b.starPower.active
	b.updateStars()
}

// Window returns the hit window of note index.
func (b *Base[N]) Window(index int) Window {
	return b.Windows[index]
}

// IsLastNoteDone reports whether every note has been hit or missed.
func (b *Base[N]) IsLastNoteDone() bool {
	return b.NoteIndex >= len(b.Notes)
}
