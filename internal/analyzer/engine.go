package analyzer

import (
	"errors"
	"fmt"

	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/engine/drums"
	"git.lost.host/meutraa/yargcore/internal/engine/guitar"
	"git.lost.host/meutraa/yargcore/internal/engine/vocals"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/replay"
)

var (
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrMissingTrack      = errors.New("chart has no track for the player")
)

// NewEngine builds a fresh engine for a replay frame, with the parameters the
// frame was recorded with or the defaults of its instrument.
func NewEngine(chart *game.Chart, frame *replay.Frame, opts ...engine.Option) (engine.Engine, error) {
	player := frame.Player
	mode, ok := player.Instrument.GameMode()
	if !ok {
		return nil, fmt.Errorf("player %q plays %v: %w", player.Name, player.Instrument, ErrUnknownInstrument)
	}
	missing := fmt.Errorf("player %q plays %v %v: %w", player.Name, player.Instrument, player.Difficulty, ErrMissingTrack)

	switch mode {
	case game.FiveFret:
		track := chart.GuitarTrack(player.Instrument, player.Difficulty)
		if nil == track {
			return nil, missing
		}
		params := guitar.DefaultParams(player.Instrument == game.FiveFretBass)
		if nil != frame.Parameters.Guitar {
			params = *frame.Parameters.Guitar
		}
		return guitar.New(chart.Sync, track, params, opts...), nil
	case game.FourLane:
		track := chart.DrumsTrack(player.Instrument, player.Difficulty)
		if nil == track {
			return nil, missing
		}
		params := drums.DefaultParams()
		if nil != frame.Parameters.Drums {
			params = *frame.Parameters.Drums
		}
		return drums.New(chart.Sync, track, params, opts...), nil
	case game.Vocal:
		track := chart.VocalsTrack(player.Instrument, player.Difficulty)
		if nil == track {
			return nil, missing
		}
		params := vocals.DefaultParams()
		if nil != frame.Parameters.Vocals {
			params = *frame.Parameters.Vocals
		}
		return vocals.New(chart.Sync, track, params, opts...), nil
	}
	return nil, fmt.Errorf("player %q plays %v: %w", player.Name, player.Instrument, ErrUnknownInstrument)
}
