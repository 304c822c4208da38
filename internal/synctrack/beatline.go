package synctrack

type BeatlineType uint8

const (
	Measure BeatlineType = iota
	Strong
	Weak
)

func (t BeatlineType) String() string {
	switch t {
	case Measure:
		return "Measure"
	case Strong:
		return "Strong"
	case Weak:
		return "Weak"
	}
	return "Unknown"
}

type Beatline struct {
	Tick uint32
	Time float64
	Type BeatlineType
}

// isCompound reports whether beats of the signature group in threes, as in 6/8.
func isCompound(ts TimeSignature) bool {
	return ts.Denominator >= 8 && ts.Numerator > 3 && ts.Numerator%3 == 0
}

func beatType(ts TimeSignature, beat uint32) BeatlineType {
	switch {
	case beat == 0:
		return Measure
	case isCompound(ts):
		if beat%3 == 0 {
			return Strong
		}
		return Weak
	case beat%2 == 0:
		return Strong
	}
	return Weak
}

// GenerateBeatlines rebuilds Beatlines from the tempo and signature maps, up to
// and including endTick. Each signature starts a new measure.
func (s *SyncTrack) GenerateBeatlines(endTick uint32) {
	beatlines := []Beatline{}
	hint := 0
	for i, ts := range s.TimeSignatures {
		if ts.Tick > endTick {
			break
		}
		limit := uint64(endTick) + 1
		if i+1 < len(s.TimeSignatures) && uint64(s.TimeSignatures[i+1].Tick) < limit {
			limit = uint64(s.TimeSignatures[i+1].Tick)
		}

		perBeat := uint64(s.TicksPerBeat(ts))
		if perBeat == 0 {
			perBeat = 1
		}
		var beat uint32
		for tick := uint64(ts.Tick); tick < limit; tick += perBeat {
			beatlines = append(beatlines, Beatline{
				Tick: uint32(tick),
				Time: s.TickToTimeHint(uint32(tick), &hint),
				Type: beatType(ts, beat),
			})
			beat++
			if beat == ts.Numerator {
				beat = 0
			}
		}
	}
	s.Beatlines = beatlines
}

// GenerateBeatlinesToTime is GenerateBeatlines bounded by a time in seconds.
func (s *SyncTrack) GenerateBeatlinesToTime(endTime float64) {
	s.GenerateBeatlines(s.TimeToTick(endTime))
}
