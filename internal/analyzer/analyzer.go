package analyzer

import (
	"math/rand"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/replay"
)

const (
	// Frames start this long before the chart
	LeadIn = 2.0
	// and run this long past its end or the last input
	LeadOut = 2.0

	// Frame lengths vary by up to this fraction either way
	FrameJitter = 0.25
)

// GenerateFrameTimes returns increasing frame times from start to end on a
// grid of 1/fps, every time after the first moved by rng up to FrameJitter of
// a frame either way. The last time is always end.
func GenerateFrameTimes(start, end, fps float64, rng *rand.Rand) []float64 {
	times := []float64{}
	if fps > 0 {
		for i := 0; ; i++ {
			t := start + float64(i)/fps
			if nil != rng && i > 0 {
				t += (rng.Float64()*2 - 1) * FrameJitter / fps
			}
			if t >= end {
				break
			}
			times = append(times, t)
		}
	}
	return append(times, end)
}

// EndTime is when a run over chart and rp stops.
func EndTime(chart *game.Chart, rp *replay.Replay) float64 {
	return max(chart.EndTime(), rp.EndTime()) + LeadOut
}

// RunFrame plays one frame's inputs through a fresh engine. With fps 0 every
// input is queued and the engine is updated once, to end.
func RunFrame(chart *game.Chart, frame *replay.Frame, end, fps float64, rng *rand.Rand, opts ...engine.Option) (engine.Engine, error) {
	e, err := NewEngine(chart, frame, opts...)
	if nil != err {
		return nil, err
	}
	for _, in := range frame.Inputs {
		e.QueueInput(in)
	}
	for _, t := range GenerateFrameTimes(-LeadIn, end, fps, rng) {
		e.Update(t)
	}
	return e, nil
}

type FrameResult struct {
	Player      replay.PlayerInfo
	Stats       engine.Stats
	Differences []engine.Difference
}

type Result struct {
	Passed bool
	// Recorded and recomputed band scores
	BandScore         int64
	ComputedBandScore int64
	Frames            []FrameResult
}

// AnalyzeReplay reruns every frame of rp at fps and compares the stats with
// the recorded ones. Frames without recorded stats are only counted towards
// the band score.
func AnalyzeReplay(chart *game.Chart, rp *replay.Replay, fps float64, rng *rand.Rand, opts ...engine.Option) (*Result, error) {
	r, err := analyze(chart, rp, fps, rng, false, opts...)
	if nil != err {
		return nil, err
	}
	return r.result, nil
}

type run struct {
	result *Result
	logs   [][]eventlog.Event
}

// analyze reruns every frame. With logged set the event log of each frame is
// kept, ending with a marker at the end time so that runs which stop early
// diverge.
func analyze(chart *game.Chart, rp *replay.Replay, fps float64, rng *rand.Rand, logged bool, opts ...engine.Option) (*run, error) {
	end := EndTime(chart, rp)
	r := &run{result: &Result{Passed: true, BandScore: rp.BandScore}}
	for i := range rp.Frames {
		frame := &rp.Frames[i]
		frameOpts := append([]engine.Option{}, opts...)
		var events *eventlog.Logger
		if logged {
			events = eventlog.New()
			frameOpts = append(frameOpts, engine.WithEventLogger(events))
		}
		e, err := RunFrame(chart, frame, end, fps, rng, frameOpts...)
		if nil != err {
			return nil, err
		}
		if logged {
			events.LogEvent(eventlog.ConsistentEvent{Time: end, Label: "end"})
			r.logs = append(r.logs, events.Events())
		}

		stats := e.Stats()
		fr := FrameResult{Player: frame.Player, Stats: stats, Differences: []engine.Difference{}}
		if len(frame.Stats) > 0 {
			fr.Differences = engine.CompareFields(frame.Stats, stats.Fields())
		}
		if len(fr.Differences) > 0 {
			r.result.Passed = false
		}
		r.result.ComputedBandScore += stats.Common().TotalScore()
		r.result.Frames = append(r.result.Frames, fr)
	}
	if r.result.ComputedBandScore != r.result.BandScore {
		r.result.Passed = false
	}
	return r, nil
}

// Record fills in the stats of every frame and the band score of rp from a
// single update run, as the engine that recorded the replay would have.
func Record(chart *game.Chart, rp *replay.Replay, opts ...engine.Option) error {
	end := EndTime(chart, rp)
	var band int64
	for i := range rp.Frames {
		e, err := RunFrame(chart, &rp.Frames[i], end, 0, nil, opts...)
		if nil != err {
			return err
		}
		stats := e.Stats()
		rp.Frames[i].Stats = stats.Fields()
		band += stats.Common().TotalScore()
	}
	rp.BandScore = band
	rp.ChartHash = chart.Hash
	return nil
}
