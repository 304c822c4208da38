package vocals

import (
	"testing"

	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phrase(tick, length uint32, notes ...*game.VocalNote) *game.VocalNote {
	return &game.VocalNote{
		Note:     game.Note{Tick: tick, TickLength: length},
		IsPhrase: true,
		Children: notes,
	}
}

func sung(tick, length uint32, pitch float32) *game.VocalNote {
	return &game.VocalNote{Note: game.Note{Tick: tick, TickLength: length}, Pitch: pitch}
}

func percussion(tick uint32) *game.VocalNote {
	return &game.VocalNote{Note: game.Note{Tick: tick}, IsPercussion: true}
}

func newTrack(t *testing.T, phrases ...*game.VocalNote) (*synctrack.SyncTrack, *game.InstrumentDifficulty[*game.VocalNote]) {
	sync, err := synctrack.New(480, nil, nil)
	require.NoError(t, err)
	track, err := game.NewInstrumentDifficulty(game.Vocals, game.Expert, phrases, nil, sync)
	require.NoError(t, err)
	return sync, track
}

func voice(time float64, pitch float32) input.GameInput {
	return input.GameInput{Time: time, Action: input.VoxPitch, Axis: pitch, Button: true}
}

func silence(time float64) input.GameInput {
	return input.GameInput{Time: time, Action: input.VoxPitch}
}

func run(e *Engine, inputs []input.GameInput, fps, end float64) *Stats {
	for _, in := range inputs {
		e.QueueInput(in)
	}
	if fps > 0 {
		for t := -2.0; t < end; t += 1 / fps {
			e.Update(t)
		}
	}
	e.Update(end)
	return e.VocalStats()
}

func TestPhrasesAcrossFrameRates(t *testing.T) {
	sync, track := newTrack(t,
		phrase(0, 1920, sung(0, 960, 60), sung(960, 960, 64), percussion(1900)),
		phrase(2880, 960, sung(2880, 960, 60)),
	)
	inputs := []input.GameInput{
		voice(0, 60),
		// an octave up still matches
		voice(1, 76),
		silence(2),
		voice(3, 66),
		silence(4),
	}

	for _, fps := range []float64{0, 240, 60, 30} {
		e := New(sync, track, DefaultParams())
		stats := run(e, inputs, fps, 5)

		assert.Equal(t, 2, stats.TotalNotes, "fps %v", fps)
		assert.Equal(t, 1, stats.NotesHit, "fps %v", fps)
		assert.Equal(t, 1, stats.NotesMissed, "fps %v", fps)
		assert.Equal(t, uint64(1920), stats.TicksHit, "fps %v", fps)
		assert.Equal(t, uint64(2880), stats.TotalTicks, "fps %v", fps)
		assert.Equal(t, int64(800), stats.NoteScore, "fps %v", fps)
		assert.Equal(t, 0, stats.Combo, "fps %v", fps)
	}
}

func TestPhraseHitPercent(t *testing.T) {
	sync, track := newTrack(t, phrase(0, 960, sung(0, 960, 60)))

	tests := map[string]struct {
		stop float64
		hit  bool
	}{
		"whole phrase":   {1, true},
		"most of it":     {0.85, true},
		"too little":     {0.7, false},
		"nothing at all": {0, false},
	}
	for name, test := range tests {
		e := New(sync, track, DefaultParams())
		stats := run(e, []input.GameInput{voice(0, 60), silence(test.stop)}, 60, 2)
		assert.Equal(t, test.hit, e.States[0].WasHit, name)
		assert.Equal(t, !test.hit, e.States[0].WasMissed, name)
		assert.Equal(t, uint64(960), stats.TotalTicks, name)
	}
}

func TestPercussionOnlyPhraseIsSkipped(t *testing.T) {
	sync, track := newTrack(t,
		phrase(0, 960, percussion(0), percussion(480)),
		phrase(960, 960, sung(960, 960, 50)),
	)

	e := New(sync, track, DefaultParams())
	stats := run(e, []input.GameInput{voice(1, 50)}, 0, 3)

	assert.Equal(t, 1, stats.TotalNotes)
	assert.Equal(t, 1, stats.NotesHit)
	assert.Equal(t, 0, stats.NotesMissed)
	assert.True(t, e.States[0].Pending())
	assert.Equal(t, e.BaseScore(), stats.TotalScore())
}

func TestPitchMatches(t *testing.T) {
	tests := []struct {
		sung, target float64
		match        bool
	}{
		{60, 60, true},
		{60.9, 60, true},
		{61.5, 60, false},
		{72, 60, true},
		{47.5, 60, true},
		{54, 60, false},
		{71.2, 60, true},
	}
	for _, test := range tests {
		if got := PitchMatches(test.sung, test.target, 1); got != test.match {
			t.Log("sung    ", test.sung)
			t.Log("target  ", test.target)
			t.Log("expected", test.match)
			t.Fail()
		}
	}
}
