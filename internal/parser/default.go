package parser

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"

	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/synctrack"
	"github.com/pkg/errors"
)

type DefaultParser struct{}

// The chart document as written by the external chart parser. Ticks are
// quarter ticks at Resolution.
type document struct {
	Name           string
	Resolution     uint32
	Tempos         []synctrack.Tempo
	TimeSignatures []synctrack.TimeSignature
	Tracks         []trackDocument
}

type trackDocument struct {
	Instrument game.Instrument
	Difficulty game.Difficulty
	Phrases    []game.Phrase
	Notes      []noteDocument
}

// noteDocument is a guitar note or chord, a drum hit, or a vocal phrase
// holding its sung notes, depending on the track.
type noteDocument struct {
	Tick uint32
	// Length of every fret, unless Lengths gives one per fret
	Length  uint32 `json:",omitempty"`
	Lengths []uint32 `json:",omitempty"`

	Frets []game.Fret    `json:",omitempty"`
	Type  game.NoteType `json:",omitempty"`

	Pads []game.Pad `json:",omitempty"`

	Pitch      float32        `json:",omitempty"`
	Percussion bool           `json:",omitempty"`
	Notes      []noteDocument `json:",omitempty"`
}

func (p *DefaultParser) Parse(directory string) (*game.Chart, error) {
	file := filepath.Join(directory, ChartFile)
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to read chart %v", file)
	}
	chart, err := ParseData(data)
	return chart, errors.Wrapf(err, "unable to parse chart %v", file)
}

// Hash identifies a chart document by its contents.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:])
}

func ParseData(data []byte) (*game.Chart, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); nil != err {
		return nil, errors.Wrap(err, "unable to decode chart")
	}

	sync, err := synctrack.New(doc.Resolution, doc.Tempos, doc.TimeSignatures)
	if nil != err {
		return nil, errors.Wrap(err, "invalid sync track")
	}
	chart := &game.Chart{Name: doc.Name, Hash: Hash(data), Sync: sync}

	for _, track := range doc.Tracks {
		mode, ok := track.Instrument.GameMode()
		if !ok {
			return nil, errors.Errorf("track has unknown instrument %v", track.Instrument)
		}
		switch mode {
		case game.FiveFret:
			t, err := game.NewInstrumentDifficulty(track.Instrument, track.Difficulty, guitarNotes(track.Notes), track.Phrases, sync)
			if nil != err {
				return nil, errors.Wrapf(err, "invalid %v %v track", track.Instrument, track.Difficulty)
			}
			chart.Guitar = append(chart.Guitar, t)
		case game.FourLane:
			t, err := game.NewInstrumentDifficulty(track.Instrument, track.Difficulty, drumNotes(track.Notes), track.Phrases, sync)
			if nil != err {
				return nil, errors.Wrapf(err, "invalid %v %v track", track.Instrument, track.Difficulty)
			}
			chart.Drums = append(chart.Drums, t)
		case game.Vocal:
			t, err := game.NewInstrumentDifficulty(track.Instrument, track.Difficulty, vocalPhrases(track.Notes), track.Phrases, sync)
			if nil != err {
				return nil, errors.Wrapf(err, "invalid %v %v track", track.Instrument, track.Difficulty)
			}
			chart.Vocals = append(chart.Vocals, t)
		}
	}
	return chart, nil
}

func (n noteDocument) length(i int) uint32 {
	if i < len(n.Lengths) {
		return n.Lengths[i]
	}
	return n.Length
}

func guitarNotes(docs []noteDocument) []*game.GuitarNote {
	notes := make([]*game.GuitarNote, 0, len(docs))
	for _, d := range docs {
		frets := d.Frets
		if len(frets) == 0 {
			frets = []game.Fret{game.Open}
		}
		var note *game.GuitarNote
		for i, f := range frets {
			n := &game.GuitarNote{
				Note: game.Note{Tick: d.Tick, TickLength: d.length(i)},
				Fret: f,
				Mask: 1 << f,
				Type: d.Type,
			}
			if nil == note {
				note = n
				continue
			}
			note.Mask |= n.Mask
			note.Children = append(note.Children, n)
			if n.TickLength != note.TickLength {
				note.IsDisjoint = true
			}
		}
		notes = append(notes, note)
	}

	// A sustain is extended when the next note starts before it ends
	for i, n := range notes {
		if i+1 == len(notes) {
			break
		}
		next := notes[i+1].Tick
		for _, c := range n.AllNotes() {
			if c.TickLength > 0 && c.TickEnd() > next {
				n.IsExtendedSustain = true
			}
		}
		for _, c := range n.Children {
			c.IsExtendedSustain = n.IsExtendedSustain
		}
	}
	return notes
}

func drumNotes(docs []noteDocument) []*game.DrumNote {
	notes := make([]*game.DrumNote, 0, len(docs))
	for _, d := range docs {
		var note *game.DrumNote
		for _, pad := range d.Pads {
			n := &game.DrumNote{Note: game.Note{Tick: d.Tick}, Pad: pad}
			if nil == note {
				note = n
				continue
			}
			note.Children = append(note.Children, n)
		}
		if nil != note {
			notes = append(notes, note)
		}
	}
	return notes
}

func vocalPhrases(docs []noteDocument) []*game.VocalNote {
	phrases := make([]*game.VocalNote, 0, len(docs))
	for _, d := range docs {
		phrase := &game.VocalNote{
			Note:     game.Note{Tick: d.Tick, TickLength: d.Length},
			IsPhrase: true,
		}
		for _, n := range d.Notes {
			phrase.Children = append(phrase.Children, &game.VocalNote{
				Note:         game.Note{Tick: n.Tick, TickLength: n.Length},
				Pitch:        n.Pitch,
				IsPercussion: n.Percussion,
			})
		}
		phrases = append(phrases, phrase)
	}
	return phrases
}
