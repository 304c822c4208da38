package engine

import "math"

// HitWindowSettings size the window around each note in which it can be hit.
// FrontToBackRatio 1 centres the window on the note; lower values shorten the
// early side.
type HitWindowSettings struct {
	MaxWindow        float64
	MinWindow        float64
	IsDynamic        bool
	FrontToBackRatio float64
}

func DefaultHitWindow() HitWindowSettings {
	return HitWindowSettings{
		MaxWindow:        0.14,
		MinWindow:        0.14,
		FrontToBackRatio: 1,
	}
}

// Size returns the full window size for a note whose closest neighbour is gap
// seconds away, before song speed scaling.
func (h HitWindowSettings) Size(gap float64) float64 {
	if !h.IsDynamic {
		return h.MaxWindow
	}
	return math.Min(math.Max(gap, h.MinWindow), h.MaxWindow)
}

func (h HitWindowSettings) FrontEnd(size float64) float64 {
	return -(size / 2) * h.FrontToBackRatio
}

func (h HitWindowSettings) BackEnd(size float64) float64 {
	return (size / 2) * (2 - h.FrontToBackRatio)
}

// Window is the absolute half open time range [Front, Back) of one note.
type Window struct {
	Front float64
	Back  float64
}

func (w Window) Contains(time float64) bool {
	return time >= w.Front && time < w.Back
}

// BaseParams are shared by every game mode.
type BaseParams struct {
	HitWindow HitWindowSettings

	MaxMultiplier      int
	ComboPerMultiplier int
	PointsPerNote      int

	// Fractions of the base score needed for each star
	StarMultiplierThresholds []float64

	SongSpeed float64

	SoloBonusPerNote int
	// Fraction of solo notes that must be hit for the bonus
	SoloBonusThreshold float64
}

func DefaultBaseParams() BaseParams {
	return BaseParams{
		HitWindow:          DefaultHitWindow(),
		MaxMultiplier:      4,
		ComboPerMultiplier: 10,
		PointsPerNote:      50,
		StarMultiplierThresholds: []float64{
			0.21, 0.46, 0.77, 1.85, 3.08, 4.52,
		},
		SongSpeed:          1,
		SoloBonusPerNote:   100,
		SoloBonusThreshold: 0.6,
	}
}

func (p BaseParams) speed() float64 {
	if p.SongSpeed <= 0 {
		return 1
	}
	return p.SongSpeed
}
