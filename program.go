package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/yargcore/internal/analyzer"
	"git.lost.host/meutraa/yargcore/internal/config"
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/parser"
	"git.lost.host/meutraa/yargcore/internal/replay"
	"git.lost.host/meutraa/yargcore/internal/score"
	"git.lost.host/meutraa/yargcore/internal/theme"
	"github.com/pkg/errors"
)

type Program struct {
	Parser parser.Parser
	// nil when no history is kept
	Scorer score.Scorer
	Theme  theme.Theme
	Out    io.Writer

	opts []engine.Option
}

func analyzerOptions() analyzer.SimulateOptions {
	return analyzer.SimulateOptions{
		Runs:    *config.Runs,
		Workers: *config.Workers,
		Seed:    *config.Seed,
		BaseFPS: *config.BaseFPS,
	}
}

// Init sets up the default implementations. The history database is opened
// when --db is given, or at its default path when history is required.
func (p *Program) Init(history bool) error {
	// Ensure our Default implementations are used as interfaces
	p.Parser = &parser.DefaultParser{}
	p.Theme = theme.NewDefaultTheme(os.Stdout)
	p.Out = os.Stdout

	if *config.Trace {
		p.opts = append(p.opts, engine.WithLogger(log.New(os.Stderr, "engine: ", log.Lmsgprefix)))
	}

	path := *config.Database
	if path == "" && history {
		path = score.DefaultPath
	}
	if path != "" {
		s := &score.DefaultScorer{}
		if err := s.Init(path); nil != err {
			return err
		}
		p.Scorer = s
	}
	return nil
}

func (p *Program) Deinit() {
	if nil != p.Scorer {
		p.Scorer.Deinit()
	}
}

// load reads the chart of directory and the replay at path, warning when the
// replay was recorded against a different chart.
func (p *Program) load(path, directory string) (*game.Chart, *replay.Replay, error) {
	chart, err := p.Parser.Parse(directory)
	if nil != err {
		return nil, nil, err
	}
	rp, err := replay.Load(path)
	if nil != err {
		return nil, nil, err
	}
	if rp.ChartHash != "" && chart.Hash != "" && rp.ChartHash != chart.Hash {
		log.Printf("replay %v was recorded against chart %v, not %v\n", path, rp.ChartHash, chart.Hash)
	}
	return chart, rp, nil
}

func (p *Program) printResult(result *analyzer.Result) {
	for _, f := range result.Frames {
		fmt.Fprintf(p.Out, "%v  %v\n", p.Theme.RenderPlayer(f.Player), f.Stats.Common().TotalScore())
		for _, d := range f.Differences {
			fmt.Fprintln(p.Out, p.Theme.RenderDifference(d))
		}
	}
	if result.BandScore != result.ComputedBandScore {
		fmt.Fprintln(p.Out, p.Theme.RenderDifference(engine.Difference{
			Field:    "BandScore",
			Expected: float64(result.BandScore),
			Actual:   float64(result.ComputedBandScore),
		}))
	}
}

func (p *Program) Verify(path, directory string, fps float64) error {
	chart, rp, err := p.load(path, directory)
	if nil != err {
		return err
	}
	result, err := analyzer.AnalyzeReplay(chart, rp, fps, nil, p.opts...)
	if nil != err {
		return err
	}

	fmt.Fprintln(p.Out, p.Theme.RenderBanner(result.Passed))
	p.printResult(result)

	if nil != p.Scorer {
		for i, f := range result.Frames {
			run := &score.Run{
				Player:     f.Player.Name,
				Instrument: f.Player.Instrument,
				Difficulty: f.Player.Difficulty,
				FPS:        fps,
				Passed:     len(f.Differences) == 0 && result.Passed,
				Score:      f.Stats.Common().TotalScore(),
				BandScore:  result.ComputedBandScore,
				Inputs:     rp.Frames[i].Inputs,
			}
			id, err := p.Scorer.Save(chart.Hash, run)
			if nil != err {
				return err
			}
			log.Println("saved run", id)
		}
	}

	if !result.Passed {
		return errFailed
	}
	return nil
}

func (p *Program) Record(path, directory, output string) error {
	chart, rp, err := p.load(path, directory)
	if nil != err {
		return err
	}
	if err := analyzer.Record(chart, rp, p.opts...); nil != err {
		return err
	}
	if err := replay.Save(output, rp); nil != err {
		return err
	}
	fmt.Fprintf(p.Out, "recorded %v frames, band score %v\n", len(rp.Frames), rp.BandScore)
	return nil
}

func (p *Program) Simulate(path, directory string, o analyzer.SimulateOptions) error {
	chart, rp, err := p.load(path, directory)
	if nil != err {
		return err
	}
	result, err := analyzer.SimulateFPS(context.Background(), chart, rp, o, p.opts...)
	if nil != err {
		return err
	}

	fmt.Fprintln(p.Out, p.Theme.RenderBanner(result.Passed))
	p.printResult(result.Reference)
	failed := 0
	for _, r := range result.Runs {
		if r.Passed {
			continue
		}
		failed++
		fmt.Fprintf(p.Out, "%v fps (seed %v)\n", r.FPS, r.Seed)
		for _, f := range r.Result.Frames {
			for _, d := range f.Differences {
				fmt.Fprintln(p.Out, p.Theme.RenderDifference(d))
			}
		}
		for _, d := range r.Divergences {
			fmt.Fprintln(p.Out, p.Theme.RenderDivergence(d))
		}
	}
	fmt.Fprintf(p.Out, "%v of %v runs diverged\n", failed, len(result.Runs))

	if !result.Passed {
		return errFailed
	}
	return nil
}

// DumpInputs prints every input of a replay, or of a raw input dump when path
// ends in .bin. With raw set the inputs of one frame are also written there.
func (p *Program) DumpInputs(path, raw string, frame int) error {
	if strings.EqualFold(filepath.Ext(path), ".bin") {
		f, err := os.Open(path)
		if nil != err {
			return errors.Wrapf(err, "unable to open %v", path)
		}
		defer f.Close()
		inputs, err := input.ReadInputs(f)
		if nil != err {
			return err
		}
		for _, in := range inputs {
			fmt.Fprintln(p.Out, in)
		}
		return nil
	}

	rp, err := replay.Load(path)
	if nil != err {
		return err
	}
	for i, f := range rp.Frames {
		fmt.Fprintf(p.Out, "frame %v: %v, %v inputs\n", i, p.Theme.RenderPlayer(f.Player), len(f.Inputs))
		for _, in := range f.Inputs {
			fmt.Fprintln(p.Out, in)
		}
	}

	if raw == "" {
		return nil
	}
	if frame < 0 || frame >= len(rp.Frames) {
		return errors.Errorf("replay has no frame %v", frame)
	}
	f, err := os.Create(raw)
	if nil != err {
		return errors.Wrapf(err, "unable to create %v", raw)
	}
	defer f.Close()
	return input.WriteInputs(f, rp.Frames[frame].Inputs)
}

func (p *Program) History(directory string) error {
	chart, err := p.Parser.Parse(directory)
	if nil != err {
		return err
	}
	if nil == p.Scorer {
		return errors.New("no history database")
	}
	runs, err := p.Scorer.Load(chart.Hash)
	if nil != err {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(p.Out, "%v  %v  %-12v %v %v  %8v  %5.1f fps  %v  %v\n",
			r.Created.Format("2006-01-02 15:04:05"), r.ID, r.Player, r.Instrument, r.Difficulty,
			r.Score, r.FPS, p.Theme.RenderBanner(r.Passed), len(r.Inputs))
	}
	fmt.Fprintf(p.Out, "%v runs of %v\n", len(runs), chart.Name)
	return nil
}
