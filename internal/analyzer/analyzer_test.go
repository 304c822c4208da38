package analyzer

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"git.lost.host/meutraa/yargcore/internal/engine/guitar"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/parser"
	"git.lost.host/meutraa/yargcore/internal/replay"
	"git.lost.host/meutraa/yargcore/internal/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t testing.TB) (*game.Chart, *replay.Replay) {
	chart, err := parser.ParseData([]byte(testdata.ChartJSON))
	require.NoError(t, err)
	rp := testdata.Replay()
	require.NoError(t, Record(chart, rp))
	return chart, rp
}

func TestNewEngine(t *testing.T) {
	chart, err := parser.ParseData([]byte(testdata.ChartJSON))
	require.NoError(t, err)

	tests := map[string]struct {
		player replay.PlayerInfo
		err    error
	}{
		"guitar":      {replay.PlayerInfo{Instrument: game.FiveFretGuitar, Difficulty: game.Expert}, nil},
		"bass":        {replay.PlayerInfo{Instrument: game.FiveFretBass, Difficulty: game.Hard}, nil},
		"drums":       {replay.PlayerInfo{Instrument: game.FourLaneDrums, Difficulty: game.Expert}, nil},
		"vocals":      {replay.PlayerInfo{Instrument: game.Vocals, Difficulty: game.Expert}, nil},
		"no track":    {replay.PlayerInfo{Instrument: game.FiveFretRhythm, Difficulty: game.Expert}, ErrMissingTrack},
		"unknown":     {replay.PlayerInfo{Instrument: game.Instrument(99)}, ErrUnknownInstrument},
		"wrong level": {replay.PlayerInfo{Instrument: game.FourLaneDrums, Difficulty: game.Easy}, ErrMissingTrack},
	}
	for name, test := range tests {
		e, err := NewEngine(chart, &replay.Frame{Player: test.player})
		if nil != test.err {
			assert.True(t, errors.Is(err, test.err), name)
			assert.Nil(t, e, name)
			continue
		}
		assert.NoError(t, err, name)
		assert.NotNil(t, e, name)
	}
}

func TestNewEngineUsesRecordedParameters(t *testing.T) {
	chart, err := parser.ParseData([]byte(testdata.ChartJSON))
	require.NoError(t, err)

	params := guitar.DefaultParams(false)
	params.Base.PointsPerNote = 10
	frame := &replay.Frame{
		Player:     replay.PlayerInfo{Instrument: game.FiveFretGuitar, Difficulty: game.Expert},
		Parameters: replay.EngineParameters{Guitar: &params},
	}
	e, err := NewEngine(chart, frame)
	require.NoError(t, err)

	defaults, err := NewEngine(chart, &replay.Frame{Player: frame.Player})
	require.NoError(t, err)
	assert.Less(t, e.BaseScore(), defaults.BaseScore())
}

func TestGenerateFrameTimes(t *testing.T) {
	assert.Equal(t, []float64{5}, GenerateFrameTimes(-2, 5, 0, nil))

	rng := rand.New(rand.NewSource(7))
	times := GenerateFrameTimes(-2, 5, 61, rng)
	assert.Equal(t, -2.0, times[0])
	assert.Equal(t, 5.0, times[len(times)-1])
	for i := 1; i < len(times); i++ {
		require.Greater(t, times[i], times[i-1])
		if i < len(times)-1 {
			// jitter stays around the grid instead of piling up
			grid := -2 + float64(i)/61
			require.InDelta(t, grid, times[i], FrameJitter/61+1e-12)
		}
	}
	assert.InDelta(t, 7*61, len(times), 2)

	again := GenerateFrameTimes(-2, 5, 61, rand.New(rand.NewSource(7)))
	assert.Equal(t, times, again)
}

func TestRecordedReplayVerifies(t *testing.T) {
	chart, rp := fixture(t)
	assert.Equal(t, chart.Hash, rp.ChartHash)
	assert.Greater(t, rp.BandScore, int64(0))

	result, err := AnalyzeReplay(chart, rp, 0, nil)
	require.NoError(t, err)
	assert.True(t, result.Passed)
	assert.Equal(t, rp.BandScore, result.ComputedBandScore)

	var sum int64
	for _, f := range result.Frames {
		assert.Empty(t, f.Differences, f.Player.Name)
		sum += f.Stats.Common().TotalScore()
	}
	assert.Equal(t, rp.BandScore, sum)
}

func TestJitteredFramesVerify(t *testing.T) {
	chart, rp := fixture(t)
	for _, fps := range []float64{15, 31, 59, 143, 241} {
		result, err := AnalyzeReplay(chart, rp, fps, rand.New(rand.NewSource(int64(fps))))
		require.NoError(t, err)
		for _, f := range result.Frames {
			assert.Empty(t, f.Differences, "%v at %v fps", f.Player.Name, fps)
		}
		assert.True(t, result.Passed, "fps %v", fps)
	}
}

func TestTamperedReplayFails(t *testing.T) {
	chart, rp := fixture(t)
	rp.Frames[1].Stats[0].Value++

	result, err := AnalyzeReplay(chart, rp, 0, nil)
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Empty(t, result.Frames[0].Differences)
	require.Len(t, result.Frames[1].Differences, 1)
	assert.Equal(t, rp.Frames[1].Stats[0].Name, result.Frames[1].Differences[0].Field)

	chart, rp = fixture(t)
	rp.BandScore++
	result, err = AnalyzeReplay(chart, rp, 0, nil)
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func TestAnalyzeReplayUnknownInstrument(t *testing.T) {
	chart, rp := fixture(t)
	rp.Frames[2].Player.Instrument = game.Instrument(42)
	_, err := AnalyzeReplay(chart, rp, 0, nil)
	assert.True(t, errors.Is(err, ErrUnknownInstrument))
}

func TestSimulateFPS(t *testing.T) {
	chart, rp := fixture(t)

	result, err := SimulateFPS(context.Background(), chart, rp, SimulateOptions{Runs: 12, Workers: 3, Seed: 5})
	require.NoError(t, err)
	require.Len(t, result.Runs, 12)
	for i, r := range result.Runs {
		assert.Equal(t, float64(21+2*i), r.FPS)
		assert.Empty(t, r.Divergences, "fps %v", r.FPS)
		assert.True(t, r.Passed, "fps %v", r.FPS)
	}
	assert.True(t, result.Passed)
	assert.True(t, result.Reference.Passed)
}

func TestSimulateFPSCancelled(t *testing.T) {
	chart, rp := fixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SimulateFPS(ctx, chart, rp, SimulateOptions{Runs: 4, Workers: 2})
	assert.True(t, errors.Is(err, context.Canceled))
}

var analyzed *Result

func BenchmarkAnalyzeReplay(b *testing.B) {
	chart, rp := fixture(b)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		r, err := AnalyzeReplay(chart, rp, 240, rng)
		if nil != err {
			b.Fatal(err)
		}
		analyzed = r
	}
}
