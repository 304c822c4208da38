package game

// NoteState is the outcome of one note during one engine run. A note is pending
// until exactly one of WasHit and WasMissed is set.
type NoteState struct {
	WasHit        bool
	WasMissed     bool
	SustainActive bool
}

func (s NoteState) Pending() bool { return !s.WasHit && !s.WasMissed }

// NoteStates is indexed by note index in its InstrumentDifficulty.
type NoteStates []NoteState

// Reset clears every note back to pending so the track can be played again.
func (s NoteStates) Reset() {
	for i := range s {
		s[i] = NoteState{}
	}
}
