package score

import (
	"time"

	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"github.com/google/uuid"
)

// Scorer keeps the history of verified replays, keyed by chart hash.
type Scorer interface {
	Init(path string) error
	Deinit()

	// Save one player's verification, returning its id
	Save(sum string, run *Run) (uuid.UUID, error)

	// Load every verification of the chart, oldest first
	Load(sum string) ([]Run, error)
}

type Run struct {
	ID         uuid.UUID
	Sum        string
	Player     string
	Instrument game.Instrument
	Difficulty game.Difficulty
	// Frame rate of the run, 0 for a single update
	FPS       float64
	Passed    bool
	Score     int64
	BandScore int64
	Created   time.Time
	Inputs    []input.GameInput
}
