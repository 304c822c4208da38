package analyzer

import (
	"context"
	"math/rand"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/eventlog"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/replay"
	"golang.org/x/sync/errgroup"
)

type SimulateOptions struct {
	Runs    int
	Workers int
	Seed    int64
	// Frame rate of the first run; run i plays at BaseFPS + 2i
	BaseFPS int
}

func DefaultSimulateOptions() SimulateOptions {
	return SimulateOptions{Runs: 100, Workers: 4, Seed: 1, BaseFPS: 21}
}

// Divergence is the first event at which a frame's log differs from the log
// of the single update run.
type Divergence struct {
	Frame    int
	Index    int
	Expected string
	Actual   string
}

type RunResult struct {
	FPS         float64
	Seed        int64
	Passed      bool
	Result      *Result
	Divergences []Divergence
}

type SimulateResult struct {
	Passed bool
	// The single update run every other run is compared with
	Reference *Result
	Runs      []RunResult
}

// SimulateFPS reruns rp at many jittered frame rates on a bounded pool of
// workers. A run passes when it agrees with the recording and its event logs
// match the single update run event for event.
func SimulateFPS(ctx context.Context, chart *game.Chart, rp *replay.Replay, o SimulateOptions, opts ...engine.Option) (*SimulateResult, error) {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.BaseFPS <= 0 {
		o.BaseFPS = DefaultSimulateOptions().BaseFPS
	}

	reference, err := analyze(chart, rp, 0, nil, true, opts...)
	if nil != err {
		return nil, err
	}

	runs := make([]RunResult, o.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := range runs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); nil != err {
				return err
			}
			fps := float64(o.BaseFPS + 2*i)
			seed := o.Seed + int64(i)
			r, err := analyze(chart, rp, fps, rand.New(rand.NewSource(seed)), true, opts...)
			if nil != err {
				return err
			}

			rr := RunResult{FPS: fps, Seed: seed, Result: r.result, Passed: r.result.Passed, Divergences: []Divergence{}}
			for f := range r.logs {
				expected, actual := reference.logs[f], r.logs[f]
				idx := eventlog.FirstDivergence(expected, actual)
				if idx < 0 {
					continue
				}
				d := Divergence{Frame: f, Index: idx}
				if idx < len(expected) {
					d.Expected = eventlog.Format(expected[idx])
				}
				if idx < len(actual) {
					d.Actual = eventlog.Format(actual[idx])
				}
				rr.Divergences = append(rr.Divergences, d)
				rr.Passed = false
			}
			runs[i] = rr
			return nil
		})
	}
	if err := g.Wait(); nil != err {
		return nil, err
	}

	result := &SimulateResult{Passed: reference.result.Passed, Reference: reference.result, Runs: runs}
	for _, r := range runs {
		if !r.Passed {
			result.Passed = false
		}
	}
	return result, nil
}
