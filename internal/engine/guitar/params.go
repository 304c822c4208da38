package guitar

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Params struct {
	Base engine.BaseParams

	// How long a strum waits for frets to match, in seconds
	StrumLeniency float64
	// How long after a hopo is fretted a strum is absorbed
	HopoLeniency float64
	// How long one whammy movement keeps star power gaining
	WhammyBuffer float64
	// How long a released sustain can be picked back up
	SustainDropLeniency float64

	InfiniteFrontEnd bool
	AntiGhosting     bool

	SustainPointsPerBeat int
}

func DefaultParams(bass bool) Params {
	base := engine.DefaultBaseParams()
	if bass {
		base.MaxMultiplier = 6
	}
	return Params{
		Base:                 base,
		StrumLeniency:        0.05,
		HopoLeniency:         0.08,
		WhammyBuffer:         0.25,
		SustainDropLeniency:  0.08,
		AntiGhosting:         true,
		SustainPointsPerBeat: 25,
	}
}
