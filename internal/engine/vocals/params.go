package vocals

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Params struct {
	Base engine.BaseParams

	// Semitones either side of a note's pitch that still count as on pitch
	PitchWindow float64
	// Fraction of a phrase's singable ticks needed to hit it
	PhraseHitPercent float64
}

func DefaultParams() Params {
	base := engine.DefaultBaseParams()
	base.ComboPerMultiplier = 1
	base.PointsPerNote = 400
	return Params{
		Base:             base,
		PitchWindow:      1.0,
		PhraseHitPercent: 0.8,
	}
}
