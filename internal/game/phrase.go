package game

type PhraseType uint8

const (
	StarPowerPhrase PhraseType = iota
	SoloPhrase
	TremoloLanePhrase
	TrillLanePhrase
	VersusPlayer1Phrase
	VersusPlayer2Phrase
)

type Phrase struct {
	Type       PhraseType
	Tick       uint32
	TickLength uint32
}

func (p Phrase) TickEnd() uint32 { return p.Tick + p.TickLength }

// Contains reports whether tick is inside the half open range of the phrase.
// A zero length phrase still holds its own tick.
func (p Phrase) Contains(tick uint32) bool {
	if p.TickLength == 0 {
		return tick == p.Tick
	}
	return tick >= p.Tick && tick < p.TickEnd()
}
