package engine

import (
	"bytes"
	"log"
	"testing"

	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stop struct {
	time  float64
	input bool
}

// recordingRules queues a fixed set of times and records every stop.
type recordingRules struct {
	base   *Base[*game.GuitarNote]
	times  []float64
	stops  []stop
	inputs []input.GameInput
}

func (r *recordingRules) MutateStateWithInput(in input.GameInput) {
	r.inputs = append(r.inputs, in)
	r.stops = append(r.stops, stop{r.base.CurrentTime, true})
}

func (r *recordingRules) UpdateHitLogic(time float64) {
	r.stops = append(r.stops, stop{time, false})
}

func (r *recordingRules) GenerateQueuedUpdates(nextTime float64) {
	for _, t := range r.times {
		if t > r.base.CurrentTime && t < nextTime {
			r.base.QueueUpdateTime(t)
		}
	}
}

func newRecording(t *testing.T, times []float64, opts ...Option) *recordingRules {
	sync, err := synctrack.New(480, nil, nil)
	require.NoError(t, err)
	track, err := game.NewInstrumentDifficulty[*game.GuitarNote](game.FiveFretGuitar, game.Expert, nil, nil, sync)
	require.NoError(t, err)

	r := &recordingRules{times: times}
	r.base = NewBase(sync, track, DefaultBaseParams(), &BaseStats{}, r, opts...)
	return r
}

// interesting drops stops that only happened because a frame ended there.
func interesting(stops []stop, keep map[float64]bool) []stop {
	out := []stop{}
	for _, s := range stops {
		if s.input || keep[s.time] {
			out = append(out, s)
		}
	}
	return out
}

func TestUpdateStopsAtQueuedTimes(t *testing.T) {
	times := []float64{0.25, 0.5, 1.0, 1.75}
	inputs := []input.GameInput{
		{Time: 0.1, Action: input.GreenFret, Button: true},
		{Time: 0.5, Action: input.StrumDown, Button: true},
		{Time: 1.2, Action: input.GreenFret},
	}

	keep := map[float64]bool{}
	for _, q := range times {
		keep[q] = true
	}
	for _, in := range inputs {
		keep[in.Time] = true
	}

	whole := newRecording(t, times)
	for _, in := range inputs {
		whole.base.QueueInput(in)
	}
	whole.base.Update(2)
	expected := interesting(whole.stops, keep)
	require.Len(t, expected, 9)

	for _, step := range []float64{0.5, 0.1, 0.033, 0.3} {
		r := newRecording(t, times)
		next := 0
		for ft := -1.0; ft < 2; ft += step {
			for next < len(inputs) && inputs[next].Time <= ft {
				r.base.QueueInput(inputs[next])
				next++
			}
			r.base.Update(ft)
		}
		for ; next < len(inputs); next++ {
			r.base.QueueInput(inputs[next])
		}
		r.base.Update(2)

		assert.Equal(t, expected, interesting(r.stops, keep), "step %v", step)
		assert.Equal(t, inputs, r.inputs)
	}
}

func TestUpdateQueuedAndInputAtSameTime(t *testing.T) {
	r := newRecording(t, []float64{0.5})
	r.base.QueueInput(input.GameInput{Time: 0.5, Action: input.StrumUp, Button: true})
	r.base.Update(1)

	// the queued stop at 0.5 is folded into the input step
	assert.Equal(t, []stop{{0.5, true}, {0.5, false}, {1, false}}, r.stops)
}

func TestUpdateBackwardsIgnored(t *testing.T) {
	var buf bytes.Buffer
	r := newRecording(t, nil, WithLogger(log.New(&buf, "", 0)))

	r.base.Update(1)
	r.base.Update(0.5)
	assert.Equal(t, 1.0, r.base.CurrentTime)
	assert.Len(t, r.stops, 1)
	assert.Contains(t, buf.String(), "before the current time")

	// repeating the same time is not a new stop
	r.base.Update(1)
	assert.Len(t, r.stops, 1)
}

func TestLateInputClamped(t *testing.T) {
	var buf bytes.Buffer
	r := newRecording(t, nil, WithLogger(log.New(&buf, "", 0)))

	r.base.Update(1)
	r.base.QueueInput(input.GameInput{Time: 0.5, Action: input.StrumUp, Button: true})
	r.base.Update(1.5)
	assert.Equal(t, []stop{{1, false}, {1, true}, {1, false}, {1.5, false}}, r.stops)
	assert.Contains(t, buf.String(), "processed late")
}

func TestQueueUpdateTime(t *testing.T) {
	r := newRecording(t, nil)
	b := r.base
	b.Update(1)

	for _, q := range []float64{3, 2, 3, 1, 0.5, 2.5} {
		b.QueueUpdateTime(q)
	}
	assert.Equal(t, []float64{2, 2.5, 3}, b.queued)
}

func TestMultiplier(t *testing.T) {
	p := DefaultBaseParams()
	for combo, expected := range map[int]int{0: 1, 9: 1, 10: 2, 29: 3, 30: 4, 500: 4} {
		assert.Equal(t, expected, p.Multiplier(combo), "combo %d", combo)
	}
}

func TestCompareFields(t *testing.T) {
	a := (&BaseStats{CommittedScore: 100, Combo: 2, Stars: 1.5}).Fields()
	b := (&BaseStats{CommittedScore: 100, Combo: 3, Stars: 1.5 + FloatEpsilon/2}).Fields()

	diffs := CompareFields(a, b)
	require.Len(t, diffs, 1)
	assert.Equal(t, Difference{Field: "Combo", Expected: 2, Actual: 3}, diffs[0])
	assert.Empty(t, CompareFields(a, a))
}
