package replay

import (
	"encoding/json"
	"io"
	"os"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/engine/drums"
	"git.lost.host/meutraa/yargcore/internal/engine/guitar"
	"git.lost.host/meutraa/yargcore/internal/engine/vocals"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"github.com/pkg/errors"
)

type PlayerInfo struct {
	Name       string
	Instrument game.Instrument
	Difficulty game.Difficulty
}

// EngineParameters holds the parameters the recording engine ran with. Only
// the one matching the player's instrument is set.
type EngineParameters struct {
	Guitar *guitar.Params `json:",omitempty"`
	Drums  *drums.Params  `json:",omitempty"`
	Vocals *vocals.Params `json:",omitempty"`
}

// Frame is one player's part of a replay: who played, how the engine was set
// up, what it scored and every input it was given.
type Frame struct {
	Player     PlayerInfo
	Parameters EngineParameters
	Stats      []engine.StatField
	Inputs     []input.GameInput
}

type Replay struct {
	SongName  string
	ChartHash string `json:",omitempty"`
	// Sum of the total scores of every frame, as recorded
	BandScore int64
	Frames    []Frame
}

func Read(r io.Reader) (*Replay, error) {
	replay := &Replay{}
	if err := json.NewDecoder(r).Decode(replay); nil != err {
		return nil, errors.Wrap(err, "unable to decode replay")
	}
	return replay, nil
}

func Write(w io.Writer, replay *Replay) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return errors.Wrap(enc.Encode(replay), "unable to encode replay")
}

func Load(path string) (*Replay, error) {
	f, err := os.Open(path)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to open replay %v", path)
	}
	defer f.Close()
	replay, err := Read(f)
	return replay, errors.Wrapf(err, "unable to load replay %v", path)
}

func Save(path string, replay *Replay) error {
	f, err := os.Create(path)
	if nil != err {
		return errors.Wrapf(err, "unable to create replay %v", path)
	}
	if err := Write(f, replay); nil != err {
		f.Close()
		return errors.Wrapf(err, "unable to save replay %v", path)
	}
	return errors.Wrapf(f.Close(), "unable to close replay %v", path)
}

// EndTime is the time of the last input of any frame.
func (r *Replay) EndTime() float64 {
	end := 0.0
	for _, f := range r.Frames {
		if n := len(f.Inputs); n > 0 {
			end = max(end, f.Inputs[n-1].Time)
		}
	}
	return end
}
