package drums

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Stats struct {
	engine.BaseStats

	Overhits int
}

func (s *Stats) Fields() []engine.StatField {
	return append(s.BaseStats.Fields(),
		engine.StatField{Name: "Overhits", Value: float64(s.Overhits)},
	)
}
