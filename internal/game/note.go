package game

type NoteFlags uint8

const (
	FlagStarPower NoteFlags = 1 << iota
	FlagStarPowerStart
	FlagStarPowerEnd
	FlagSoloStart
	FlagSoloEnd
	// The note lies inside a tremolo or trill lane
	FlagLane
)

// Note is the timing shared by every kind of chart note. Notes are immutable
// once the InstrumentDifficulty holding them is built; hit state for a run lives
// in NoteStates.
type Note struct {
	Tick       uint32
	TickLength uint32
	Time       float64 // The time the note should be hit, in seconds
	TimeLength float64
	Flags      NoteFlags
}

func (n *Note) Base() *Note { return n }

func (n *Note) TickEnd() uint32  { return n.Tick + n.TickLength }
func (n *Note) TimeEnd() float64 { return n.Time + n.TimeLength }

func (n *Note) IsSustain() bool { return n.TickLength > 0 }

func (n *Note) Is(flag NoteFlags) bool { return n.Flags&flag != 0 }

type Fret uint8

const (
	Open Fret = iota
	Green
	Red
	Yellow
	Blue
	Orange
)

const (
	OpenMask uint8 = 1 << Open
	// FretsMask covers every coloured fret
	FretsMask uint8 = 1<<Green | 1<<Red | 1<<Yellow | 1<<Blue | 1<<Orange
)

type NoteType uint8

const (
	Strum NoteType = iota
	Hopo
	Tap
)

// GuitarNote is a single fret or a chord. A chord is its first fret with the
// remaining frets in Children; Mask covers all of them.
type GuitarNote struct {
	Note
	Fret Fret
	Mask uint8
	Type NoteType

	// Another note starts before this sustain ends
	IsExtendedSustain bool
	// Chord frets sustain for different lengths
	IsDisjoint bool

	Children []*GuitarNote
}

func (n *GuitarNote) ChildNotes() []*Note {
	notes := make([]*Note, len(n.Children))
	for i, c := range n.Children {
		notes[i] = &c.Note
	}
	return notes
}

// AllNotes returns the note followed by its chord children.
func (n *GuitarNote) AllNotes() []*GuitarNote {
	return append([]*GuitarNote{n}, n.Children...)
}

func (n *GuitarNote) IsChord() bool { return len(n.Children) > 0 }

type Pad uint8

const (
	Kick Pad = iota
	RedDrum
	YellowDrum
	BlueDrum
	GreenDrum
	YellowCymbal
	BlueCymbal
	GreenCymbal
)

func (p Pad) String() string {
	switch p {
	case Kick:
		return "Kick"
	case RedDrum:
		return "Red"
	case YellowDrum:
		return "Yellow"
	case BlueDrum:
		return "Blue"
	case GreenDrum:
		return "Green"
	case YellowCymbal:
		return "YellowCymbal"
	case BlueCymbal:
		return "BlueCymbal"
	case GreenCymbal:
		return "GreenCymbal"
	}
	return "Unknown"
}

type DrumNote struct {
	Note
	Pad      Pad
	Children []*DrumNote
}

func (n *DrumNote) ChildNotes() []*Note {
	notes := make([]*Note, len(n.Children))
	for i, c := range n.Children {
		notes[i] = &c.Note
	}
	return notes
}

func (n *DrumNote) AllNotes() []*DrumNote {
	return append([]*DrumNote{n}, n.Children...)
}

// VocalNote is either a phrase, whose Children are the sung notes, or one of
// those notes. Pitch is a MIDI note number.
type VocalNote struct {
	Note
	Pitch        float32
	IsPercussion bool
	IsPhrase     bool
	Children     []*VocalNote
}

func (n *VocalNote) ChildNotes() []*Note {
	notes := make([]*Note, len(n.Children))
	for i, c := range n.Children {
		notes[i] = &c.Note
	}
	return notes
}
