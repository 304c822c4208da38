package game

import (
	"errors"
	"fmt"
	"strings"

	"git.lost.host/meutraa/yargcore/internal/synctrack"
)

type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

var difficultyNames = map[Difficulty]string{
	Easy:   "easy",
	Medium: "medium",
	Hard:   "hard",
	Expert: "expert",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return fmt.Sprintf("difficulty(%d)", uint8(d))
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	for k, v := range difficultyNames {
		if strings.EqualFold(v, string(text)) {
			*d = k
			return nil
		}
	}
	return fmt.Errorf("unknown difficulty %q", text)
}

type GameMode uint8

const (
	FiveFret GameMode = iota
	FourLane
	Vocal
)

type Instrument uint8

const (
	FiveFretGuitar Instrument = iota
	FiveFretBass
	FiveFretRhythm
	FiveFretCoop
	FourLaneDrums
	Vocals
)

var instrumentNames = map[Instrument]string{
	FiveFretGuitar: "guitar",
	FiveFretBass:   "bass",
	FiveFretRhythm: "rhythm",
	FiveFretCoop:   "coop",
	FourLaneDrums:  "drums",
	Vocals:         "vocals",
}

func (i Instrument) String() string {
	if name, ok := instrumentNames[i]; ok {
		return name
	}
	return fmt.Sprintf("instrument(%d)", uint8(i))
}

func (i Instrument) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *Instrument) UnmarshalText(text []byte) error {
	for k, v := range instrumentNames {
		if strings.EqualFold(v, string(text)) {
			*i = k
			return nil
		}
	}
	return fmt.Errorf("unknown instrument %q", text)
}

// GameMode reports which engine plays the instrument. Unknown instruments
// report false.
func (i Instrument) GameMode() (GameMode, bool) {
	switch i {
	case FiveFretGuitar, FiveFretBass, FiveFretRhythm, FiveFretCoop:
		return FiveFret, true
	case FourLaneDrums:
		return FourLane, true
	case Vocals:
		return Vocal, true
	}
	return 0, false
}

var ErrNotesUnsorted = errors.New("notes are not strictly increasing by tick")

// ChartNote is implemented by pointers to each kind of note.
type ChartNote interface {
	Base() *Note
	ChildNotes() []*Note
}

// InstrumentDifficulty is the ordered note track of one instrument at one
// difficulty. It is shared by every engine run over it and never mutated after
// NewInstrumentDifficulty returns.
type InstrumentDifficulty[N ChartNote] struct {
	Instrument Instrument
	Difficulty Difficulty
	Notes      []N
	Phrases    []Phrase

	// Star power phrases holding at least one note
	StarPowerPhrases int
}

// NewInstrumentDifficulty fills note times from the sync track, and flags notes
// covered by star power, solo and lane phrases.
func NewInstrumentDifficulty[N ChartNote](instrument Instrument, difficulty Difficulty, notes []N, phrases []Phrase, sync *synctrack.SyncTrack) (*InstrumentDifficulty[N], error) {
	for i := 1; i < len(notes); i++ {
		if notes[i].Base().Tick <= notes[i-1].Base().Tick {
			return nil, fmt.Errorf("%v %v note %d at tick %d: %w", instrument, difficulty, i, notes[i].Base().Tick, ErrNotesUnsorted)
		}
	}

	hint := 0
	for _, n := range notes {
		all := append([]*Note{n.Base()}, n.ChildNotes()...)
		for _, b := range all {
			b.Time = sync.TickToTimeHint(b.Tick, &hint)
			end := b.Tick + b.TickLength
			b.TimeLength = sync.TickToTime(end) - b.Time
		}
	}

	track := &InstrumentDifficulty[N]{
		Instrument: instrument,
		Difficulty: difficulty,
		Notes:      notes,
		Phrases:    phrases,
	}

	for _, p := range phrases {
		var flags, start, end NoteFlags
		switch p.Type {
		case StarPowerPhrase:
			flags, start, end = FlagStarPower, FlagStarPowerStart, FlagStarPowerEnd
		case SoloPhrase:
			start, end = FlagSoloStart, FlagSoloEnd
		case TremoloLanePhrase, TrillLanePhrase:
			flags = FlagLane
		default:
			continue
		}

		first, last := -1, -1
		for i, n := range notes {
			if p.Contains(n.Base().Tick) {
				if first < 0 {
					first = i
				}
				last = i
				setFlags(n, flags)
			}
		}
		if first < 0 {
			continue
		}
		setFlags(notes[first], start)
		setFlags(notes[last], end)
		if p.Type == StarPowerPhrase {
			track.StarPowerPhrases++
		}
	}

	return track, nil
}

func setFlags[N ChartNote](n N, flags NoteFlags) {
	n.Base().Flags |= flags
	for _, c := range n.ChildNotes() {
		c.Flags |= flags
	}
}

// EndTime is the time the last note, or its longest sustain, ends.
func (t *InstrumentDifficulty[N]) EndTime() float64 {
	end := 0.0
	for _, n := range t.Notes {
		end = max(end, n.Base().TimeEnd())
		for _, c := range n.ChildNotes() {
			end = max(end, c.TimeEnd())
		}
	}
	return end
}

// NewStates returns a fresh per-run state arena for the track.
func (t *InstrumentDifficulty[N]) NewStates() NoteStates {
	return make(NoteStates, len(t.Notes))
}
