package synctrack

import (
	"golang.org/x/exp/slices"
)

func (s *SyncTrack) signatureIndexForTick(tick uint32) int {
	i, found := slices.BinarySearchFunc(s.TimeSignatures, tick, func(ts TimeSignature, tick uint32) int {
		return compare(ts.Tick, tick)
	})
	if !found {
		i--
	}
	return i
}

func (s *SyncTrack) signatureIndexForMeasureTick(measureTick uint32) int {
	i, found := slices.BinarySearchFunc(s.TimeSignatures, measureTick, func(ts TimeSignature, mt uint32) int {
		return compare(ts.MeasureTick, mt)
	})
	if !found {
		i--
	}
	return i
}

// measureLength returns the quarter tick length of measure index m of the
// signature, together with the number of complete measures it holds.
func (s *SyncTrack) measureLength(ts TimeSignature, m uint32) (length uint32, full uint32) {
	perMeasure := s.TicksPerMeasure(ts)
	if !ts.Interrupted {
		return perMeasure, m + 1
	}
	full = ts.span / perMeasure
	if m < full {
		return perMeasure, full
	}
	return ts.span - full*perMeasure, full
}

// QuarterTickToMeasureTick maps a resolution based tick into measure tick
// space, where every measure is MeasureResolution ticks long. Inside the cut
// short measure of an interrupted signature the actual length is stretched over
// the full measure.
func (s *SyncTrack) QuarterTickToMeasureTick(tick uint32) uint32 {
	ts := s.TimeSignatures[s.signatureIndexForTick(tick)]
	perMeasure := s.TicksPerMeasure(ts)

	offset := tick - ts.Tick
	measure := offset / perMeasure
	within := offset % perMeasure
	length := perMeasure
	if ts.Interrupted {
		var full uint32
		length, full = s.measureLength(ts, measure)
		if measure >= full {
			measure = full
			within = offset - full*perMeasure
		}
	}

	scaled := uint64(within) * uint64(s.MeasureResolution) / uint64(length)
	return ts.MeasureTick + measure*s.MeasureResolution + uint32(scaled)
}

// MeasureTickToQuarterTick is the inverse of QuarterTickToMeasureTick. The
// composition MeasureTickToQuarterTick(QuarterTickToMeasureTick(t)) is exact;
// the other direction may be off by up to MeasureQuantization.
func (s *SyncTrack) MeasureTickToQuarterTick(measureTick uint32) uint32 {
	ts := s.TimeSignatures[s.signatureIndexForMeasureTick(measureTick)]
	perMeasure := s.TicksPerMeasure(ts)

	offset := measureTick - ts.MeasureTick
	measure := offset / s.MeasureResolution
	within := offset % s.MeasureResolution
	length, _ := s.measureLength(ts, measure)

	scaled := (uint64(within)*uint64(length) + uint64(s.MeasureResolution) - 1) / uint64(s.MeasureResolution)
	return ts.Tick + measure*perMeasure + uint32(scaled)
}

// MeasureQuantization is the largest error a measure tick can pick up when it
// is converted to a quarter tick and back, at the given quarter tick.
func (s *SyncTrack) MeasureQuantization(tick uint32) uint32 {
	ts := s.TimeSignatures[s.signatureIndexForTick(tick)]
	perMeasure := s.TicksPerMeasure(ts)
	length, _ := s.measureLength(ts, (tick-ts.Tick)/perMeasure)
	return (s.MeasureResolution + length - 1) / length
}
