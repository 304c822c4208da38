package engine

import (
	"math"
)

// StatField is one named statistic, flattened for comparison. Float fields are
// compared with FloatEpsilon, everything else exactly.
type StatField struct {
	Name    string
	Value   float64
	IsFloat bool
}

const FloatEpsilon = 1e-6

func (f StatField) Equal(o StatField) bool {
	if f.IsFloat || o.IsFloat {
		return math.Abs(f.Value-o.Value) <= FloatEpsilon
	}
	return f.Value == o.Value
}

// Stats is implemented by the stats of each game mode.
type Stats interface {
	Common() *BaseStats
	Fields() []StatField
}

type BaseStats struct {
	// Points locked in by hit notes and finished sustains
	CommittedScore int64
	// Points of sustains still being held
	PendingScore int64
	// Points from hit notes alone
	NoteScore int64
	// Points from solo bonuses
	SoloBonuses int64

	Combo           int
	MaxCombo        int
	ScoreMultiplier int

	NotesHit    int
	NotesMissed int
	TotalNotes  int

	// Star power amount in measure ticks
	StarPowerTickAmount      uint32
	StarPowerBarAmount       float64
	StarPowerPhrasesHit      int
	TotalStarPowerPhrases    int
	StarPowerActivationCount int
	IsStarPowerActive        bool
	TimeInStarPower          float64

	Stars float64
}

func (s *BaseStats) TotalScore() int64 {
	return s.CommittedScore + s.PendingScore + s.SoloBonuses
}

func (s *BaseStats) Common() *BaseStats { return s }

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (s *BaseStats) Fields() []StatField {
	return []StatField{
		{Name: "TotalScore", Value: float64(s.TotalScore())},
		{Name: "CommittedScore", Value: float64(s.CommittedScore)},
		{Name: "PendingScore", Value: float64(s.PendingScore)},
		{Name: "NoteScore", Value: float64(s.NoteScore)},
		{Name: "SoloBonuses", Value: float64(s.SoloBonuses)},
		{Name: "Combo", Value: float64(s.Combo)},
		{Name: "MaxCombo", Value: float64(s.MaxCombo)},
		{Name: "ScoreMultiplier", Value: float64(s.ScoreMultiplier)},
		{Name: "NotesHit", Value: float64(s.NotesHit)},
		{Name: "NotesMissed", Value: float64(s.NotesMissed)},
		{Name: "TotalNotes", Value: float64(s.TotalNotes)},
		{Name: "StarPowerTickAmount", Value: float64(s.StarPowerTickAmount)},
		{Name: "StarPowerBarAmount", Value: s.StarPowerBarAmount, IsFloat: true},
		{Name: "StarPowerPhrasesHit", Value: float64(s.StarPowerPhrasesHit)},
		{Name: "TotalStarPowerPhrases", Value: float64(s.TotalStarPowerPhrases)},
		{Name: "StarPowerActivationCount", Value: float64(s.StarPowerActivationCount)},
		{Name: "IsStarPowerActive", Value: boolValue(s.IsStarPowerActive)},
		{Name: "TimeInStarPower", Value: s.TimeInStarPower, IsFloat: true},
		{Name: "Stars", Value: s.Stars, IsFloat: true},
	}
}

// Difference is a field whose value differs between two stats.
type Difference struct {
	Field    string
	Expected float64
	Actual   float64
}

// CompareFields returns every field of actual that differs from expected. A
// field present on only one side is reported with NaN on the missing side.
func CompareFields(expected, actual []StatField) []Difference {
	diffs := []Difference{}
	seen := map[string]bool{}
	byName := map[string]StatField{}
	for _, f := range actual {
		byName[f.Name] = f
	}
	for _, e := range expected {
		seen[e.Name] = true
		a, ok := byName[e.Name]
		if !ok {
			diffs = append(diffs, Difference{Field: e.Name, Expected: e.Value, Actual: math.NaN()})
			continue
		}
		if !e.Equal(a) {
			diffs = append(diffs, Difference{Field: e.Name, Expected: e.Value, Actual: a.Value})
		}
	}
	for _, a := range actual {
		if !seen[a.Name] {
			diffs = append(diffs, Difference{Field: a.Name, Expected: math.NaN(), Actual: a.Value})
		}
	}
	return diffs
}
