package game

import (
	"git.lost.host/meutraa/yargcore/internal/synctrack"
)

// Chart is the output of the external chart parser: a sync track and the note
// tracks of every instrument and difficulty it charted.
type Chart struct {
	Name string
	// Hash of the document the chart was read from, empty for built charts
	Hash string
	Sync *synctrack.SyncTrack

	Guitar []*InstrumentDifficulty[*GuitarNote]
	Drums  []*InstrumentDifficulty[*DrumNote]
	Vocals []*InstrumentDifficulty[*VocalNote]
}

func find[N ChartNote](tracks []*InstrumentDifficulty[N], instrument Instrument, difficulty Difficulty) *InstrumentDifficulty[N] {
	for _, t := range tracks {
		if t.Instrument == instrument && t.Difficulty == difficulty {
			return t
		}
	}
	return nil
}

func (c *Chart) GuitarTrack(instrument Instrument, difficulty Difficulty) *InstrumentDifficulty[*GuitarNote] {
	return find(c.Guitar, instrument, difficulty)
}

func (c *Chart) DrumsTrack(instrument Instrument, difficulty Difficulty) *InstrumentDifficulty[*DrumNote] {
	return find(c.Drums, instrument, difficulty)
}

func (c *Chart) VocalsTrack(instrument Instrument, difficulty Difficulty) *InstrumentDifficulty[*VocalNote] {
	return find(c.Vocals, instrument, difficulty)
}

// EndTime is the latest time any note of any track ends.
func (c *Chart) EndTime() float64 {
	end := 0.0
	for _, t := range c.Guitar {
		end = max(end, t.EndTime())
	}
	for _, t := range c.Drums {
		end = max(end, t.EndTime())
	}
	for _, t := range c.Vocals {
		end = max(end, t.EndTime())
	}
	return end
}
