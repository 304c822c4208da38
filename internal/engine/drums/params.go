package drums

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Params struct {
	Base engine.BaseParams

	// Cymbals and drums of the same colour are different pads. Without it a
	// yellow cymbal hit also plays a yellow drum note and the reverse.
	ProDrums bool
}

func DefaultParams() Params {
	return Params{
		Base:     engine.DefaultBaseParams(),
		ProDrums: true,
	}
}
