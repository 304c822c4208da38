package synctrack

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Every measure spans MeasureResolutionFactor * Resolution measure ticks,
// whatever its time signature.
const MeasureResolutionFactor = 64

const (
	DefaultBeatsPerMinute = 120.0
	DefaultNumerator      = 4
	DefaultDenominator    = 4
)

var (
	ErrUnsorted = errors.New("synctrack: changes are not strictly increasing by tick")
	ErrInvalid  = errors.New("synctrack: invalid change")
)

type Tempo struct {
	Tick           uint32
	Time           float64
	BeatsPerMinute float64
}

type TimeSignature struct {
	Tick        uint32
	Time        float64
	Numerator   uint32
	Denominator uint32

	// Position of this signature in measure tick space
	MeasureTick uint32
	// Number of measures that started before this signature
	MeasureCount uint32
	// The last measure was cut short by the next signature
	Interrupted bool

	// span is the number of quarter ticks until the next signature, 0 for the last
	span uint32
}

// SyncTrack is the tempo and time signature map of a chart. It is immutable
// once built; Beatlines is the only list that is rebuilt on request.
type SyncTrack struct {
	Resolution        uint32
	MeasureResolution uint32

	Tempos         []Tempo
	TimeSignatures []TimeSignature
	Beatlines      []Beatline
}

// New validates and completes the tempo and time signature lists. Only Tick and
// BeatsPerMinute of tempos, and Tick, Numerator and Denominator of signatures
// are read; everything else is derived. A missing change at tick 0 is filled
// with 120 BPM and 4/4.
func New(resolution uint32, tempos []Tempo, signatures []TimeSignature) (*SyncTrack, error) {
	if resolution == 0 {
		return nil, fmt.Errorf("resolution must be positive: %w", ErrInvalid)
	}

	s := &SyncTrack{
		Resolution:        resolution,
		MeasureResolution: resolution * MeasureResolutionFactor,
	}

	if len(tempos) == 0 || tempos[0].Tick != 0 {
		s.Tempos = append(s.Tempos, Tempo{BeatsPerMinute: DefaultBeatsPerMinute})
	}
	for i, t := range tempos {
		if t.BeatsPerMinute <= 0 || math.IsNaN(t.BeatsPerMinute) || math.IsInf(t.BeatsPerMinute, 0) {
			return nil, fmt.Errorf("tempo %d at tick %d has %v BPM: %w", i, t.Tick, t.BeatsPerMinute, ErrInvalid)
		}
		if n := len(s.Tempos); n > 0 && t.Tick <= s.Tempos[n-1].Tick {
			return nil, fmt.Errorf("tempo %d at tick %d: %w", i, t.Tick, ErrUnsorted)
		}
		s.Tempos = append(s.Tempos, Tempo{Tick: t.Tick, BeatsPerMinute: t.BeatsPerMinute})
	}
	for i := 1; i < len(s.Tempos); i++ {
		prev := s.Tempos[i-1]
		s.Tempos[i].Time = prev.Time + ticksToSeconds(s.Tempos[i].Tick-prev.Tick, prev.BeatsPerMinute, resolution)
	}

	if len(signatures) == 0 || signatures[0].Tick != 0 {
		s.TimeSignatures = append(s.TimeSignatures, TimeSignature{Numerator: DefaultNumerator, Denominator: DefaultDenominator})
	}
	for i, ts := range signatures {
		if ts.Numerator == 0 || ts.Denominator == 0 {
			return nil, fmt.Errorf("time signature %d at tick %d is %d/%d: %w", i, ts.Tick, ts.Numerator, ts.Denominator, ErrInvalid)
		}
		if n := len(s.TimeSignatures); n > 0 && ts.Tick <= s.TimeSignatures[n-1].Tick {
			return nil, fmt.Errorf("time signature %d at tick %d: %w", i, ts.Tick, ErrUnsorted)
		}
		s.TimeSignatures = append(s.TimeSignatures, TimeSignature{Tick: ts.Tick, Numerator: ts.Numerator, Denominator: ts.Denominator})
	}
	for i := range s.TimeSignatures {
		ts := &s.TimeSignatures[i]
		if s.TicksPerMeasure(*ts) == 0 {
			return nil, fmt.Errorf("time signature %d/%d at tick %d is shorter than a tick: %w", ts.Numerator, ts.Denominator, ts.Tick, ErrInvalid)
		}
		if s.TicksPerMeasure(*ts) > s.MeasureResolution {
			return nil, fmt.Errorf("time signature %d/%d at tick %d is longer than the measure resolution: %w", ts.Numerator, ts.Denominator, ts.Tick, ErrInvalid)
		}
		ts.Time = s.TickToTime(ts.Tick)
		if i+1 == len(s.TimeSignatures) {
			break
		}

		next := &s.TimeSignatures[i+1]
		ts.span = next.Tick - ts.Tick
		perMeasure := s.TicksPerMeasure(*ts)
		measures := ts.span / perMeasure
		if ts.span%perMeasure != 0 {
			ts.Interrupted = true
			measures++
		}
		next.MeasureTick = ts.MeasureTick + measures*s.MeasureResolution
		next.MeasureCount = ts.MeasureCount + measures
	}

	return s, nil
}

func ticksToSeconds(ticks uint32, bpm float64, resolution uint32) float64 {
	return float64(ticks) * 60.0 / (bpm * float64(resolution))
}

// TicksPerBeat is the length of one beat of the signature in quarter ticks.
func (s *SyncTrack) TicksPerBeat(ts TimeSignature) uint32 {
	return uint32(uint64(s.Resolution) * 4 / uint64(ts.Denominator))
}

// TicksPerMeasure is the nominal length of a full measure in quarter ticks.
func (s *SyncTrack) TicksPerMeasure(ts TimeSignature) uint32 {
	return uint32(uint64(s.Resolution) * 4 * uint64(ts.Numerator) / uint64(ts.Denominator))
}

func (s *SyncTrack) tempoIndexForTick(tick uint32, hint *int) int {
	if hint != nil {
		if i := *hint; i >= 0 && i < len(s.Tempos) && s.Tempos[i].Tick <= tick {
			for i+1 < len(s.Tempos) && s.Tempos[i+1].Tick <= tick {
				i++
			}
			*hint = i
			return i
		}
	}
	i, found := slices.BinarySearchFunc(s.Tempos, tick, func(t Tempo, tick uint32) int {
		return compare(t.Tick, tick)
	})
	if !found {
		i--
	}
	if hint != nil {
		*hint = i
	}
	return i
}

func (s *SyncTrack) tempoIndexForTime(time float64, hint *int) int {
	if hint != nil {
		if i := *hint; i >= 0 && i < len(s.Tempos) && s.Tempos[i].Time <= time {
			for i+1 < len(s.Tempos) && s.Tempos[i+1].Time <= time {
				i++
			}
			*hint = i
			return i
		}
	}
	i, found := slices.BinarySearchFunc(s.Tempos, time, func(t Tempo, time float64) int {
		return compare(t.Time, time)
	})
	if !found {
		i--
	}
	if i < 0 {
		i = 0
	}
	if hint != nil {
		*hint = i
	}
	return i
}

// TickToTime converts a quarter tick to seconds. It never rounds.
func (s *SyncTrack) TickToTime(tick uint32) float64 {
	return s.TickToTimeHint(tick, nil)
}

// TickToTimeHint is TickToTime starting the tempo search at *hint, and storing
// the tempo used back into it. Callers walking forward in time keep one hint.
func (s *SyncTrack) TickToTimeHint(tick uint32, hint *int) float64 {
	t := s.Tempos[s.tempoIndexForTick(tick, hint)]
	return t.Time + ticksToSeconds(tick-t.Tick, t.BeatsPerMinute, s.Resolution)
}

// TimeToTick converts seconds to the nearest quarter tick. Times before the
// chart start map to tick 0.
func (s *SyncTrack) TimeToTick(time float64) uint32 {
	return s.TimeToTickHint(time, nil)
}

func (s *SyncTrack) TimeToTickHint(time float64, hint *int) uint32 {
	t := s.Tempos[s.tempoIndexForTime(time, hint)]
	ticks := float64(t.Tick) + (time-t.Time)*t.BeatsPerMinute*float64(s.Resolution)/60.0
	if ticks <= 0 {
		return 0
	}
	if ticks >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(ticks))
}

// TempoAt returns the tempo in effect at tick.
func (s *SyncTrack) TempoAt(tick uint32) Tempo {
	return s.Tempos[s.tempoIndexForTick(tick, nil)]
}

// TimeSignatureAt returns the signature in effect at tick.
func (s *SyncTrack) TimeSignatureAt(tick uint32) TimeSignature {
	return s.TimeSignatures[s.signatureIndexForTick(tick)]
}

func compare[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
