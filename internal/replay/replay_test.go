package replay

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/engine/guitar"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Replay {
	params := guitar.DefaultParams(false)
	return &Replay{
		SongName:  "sample",
		BandScore: 75,
		Frames: []Frame{{
			Player:     PlayerInfo{Name: "p1", Instrument: game.FiveFretGuitar, Difficulty: game.Expert},
			Parameters: EngineParameters{Guitar: &params},
			Stats:      []engine.StatField{{Name: "TotalScore", Value: 75}},
			Inputs: []input.GameInput{
				{Time: -0.01, Action: input.GreenFret, Button: true},
				{Time: 0, Action: input.StrumDown, Button: true},
				{Time: 1, Action: input.GreenFret},
			},
		}},
	}
}

func TestReadWrite(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Write(buf, sample()))
	assert.Contains(t, buf.String(), `"Instrument": "guitar"`)
	assert.Contains(t, buf.String(), `"Action": "strum_down"`)
	assert.NotContains(t, buf.String(), `"Drums"`)

	out, err := Read(buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), out)
	assert.Equal(t, 1.0, out.EndTime())
}

func TestReadRejects(t *testing.T) {
	for _, doc := range []string{
		`{"Frames": [{"Player": {"Instrument": "banjo"}}]}`,
		`{"Frames": [{"Inputs": [{"Action": "kazoo"}]}]}`,
		`{"BandScore": "lots"}`,
	} {
		_, err := Read(strings.NewReader(doc))
		assert.Error(t, err, doc)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, Save(path, sample()))
	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, sample(), out)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
