package guitar

import (
	"git.lost.host/meutraa/yargcore/internal/engine"
)

type Stats struct {
	engine.BaseStats

	Overstrums    int
	HoposStrummed int
	GhostInputs   int
	SustainScore  int64
}

func (s *Stats) Fields() []engine.StatField {
	return append(s.BaseStats.Fields(),
		engine.StatField{Name: "Overstrums", Value: float64(s.Overstrums)},
		engine.StatField{Name: "HoposStrummed", Value: float64(s.HoposStrummed)},
		engine.StatField{Name: "GhostInputs", Value: float64(s.GhostInputs)},
		engine.StatField{Name: "SustainScore", Value: float64(s.SustainScore)},
	)
}
