package vocals

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Stats struct {
	engine.BaseStats

	// Ticks sung on pitch, over every phrase so far
	TicksHit   uint64
	TotalTicks uint64
}

func (s *Stats) Fields() []engine.StatField {
	return append(s.BaseStats.Fields(),
		engine.StatField{Name: "TicksHit", Value: float64(s.TicksHit)},
		engine.StatField{Name: "TotalTicks", Value: float64(s.TotalTicks)},
	)
}
