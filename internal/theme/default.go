package theme

import (
	"fmt"
	"math"
	"os"

	"git.lost.host/meutraa/yargcore/internal/analyzer"
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/replay"
	"golang.org/x/term"
)

type Color struct {
	R, G, B uint8
}

// DefaultTheme writes plain text unless Colored is set.
type DefaultTheme struct {
	Colored bool
}

// NewDefaultTheme colours output only when f is a terminal.
func NewDefaultTheme(f *os.File) *DefaultTheme {
	return &DefaultTheme{Colored: term.IsTerminal(int(f.Fd()))}
}

const (
	passedSym = "✔"
	failedSym = "✘"
)

var (
	passedColor   = Color{0, 236, 128}
	failedColor   = Color{236, 30, 0}
	expectedColor = Color{173, 236, 236}
	actualColor   = Color{236, 195, 0}
	playerColor   = Color{106, 106, 106}
)

func (t *DefaultTheme) paint(c Color, s string) string {
	if !t.Colored {
		return s
	}
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func (t *DefaultTheme) RenderBanner(passed bool) string {
	if passed {
		return t.paint(passedColor, passedSym+" PASSED")
	}
	return t.paint(failedColor, failedSym+" FAILED")
}

func (t *DefaultTheme) RenderPlayer(player replay.PlayerInfo) string {
	return t.paint(playerColor, fmt.Sprintf("%v (%v %v)", player.Name, player.Instrument, player.Difficulty))
}

// value prints a missing side of a difference as a dash.
func value(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%g", v)
}

func (t *DefaultTheme) RenderDifference(d engine.Difference) string {
	return fmt.Sprintf("  %-24v expected %v, got %v",
		d.Field,
		t.paint(expectedColor, value(d.Expected)),
		t.paint(actualColor, value(d.Actual)),
	)
}

func (t *DefaultTheme) RenderDivergence(d analyzer.Divergence) string {
	return fmt.Sprintf("  frame %v event %v\n    expected %v\n    got      %v",
		d.Frame, d.Index,
		t.paint(expectedColor, d.Expected),
		t.paint(actualColor, d.Actual),
	)
}
