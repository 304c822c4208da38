package theme

import (
	"math"
	"strings"
	"testing"

	"git.lost.host/meutraa/yargcore/internal/analyzer"
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/replay"
	"github.com/stretchr/testify/assert"
)

var differenceTests = map[engine.Difference]string{
	{Field: "NotesHit", Expected: 3, Actual: 2}:          "  NotesHit                 expected 3, got 2",
	{Field: "Overhits", Expected: math.NaN(), Actual: 1}: "  Overhits                 expected -, got 1",
	{Field: "TimeInStarPower", Expected: 8, Actual: 7.5}: "  TimeInStarPower          expected 8, got 7.5",
}

func TestRenderDifference(t *testing.T) {
	th := &DefaultTheme{}
	for d, expected := range differenceTests {
		if out := th.RenderDifference(d); out != expected {
			t.Log("in      ", d)
			t.Log("out     ", out)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}

func TestRenderBanner(t *testing.T) {
	plain := &DefaultTheme{}
	assert.Equal(t, "✔ PASSED", plain.RenderBanner(true))
	assert.Equal(t, "✘ FAILED", plain.RenderBanner(false))

	colored := &DefaultTheme{Colored: true}
	out := colored.RenderBanner(false)
	assert.True(t, strings.HasPrefix(out, "\033[38;2;236;30;0m"))
	assert.True(t, strings.HasSuffix(out, "\033[0m"))
	assert.Contains(t, out, "FAILED")
}

func TestRenderPlayerAndDivergence(t *testing.T) {
	th := &DefaultTheme{}
	assert.Equal(t, "drummer (drums expert)", th.RenderPlayer(replay.PlayerInfo{
		Name: "drummer", Instrument: game.FourLaneDrums, Difficulty: game.Expert,
	}))

	out := th.RenderDivergence(analyzer.Divergence{Frame: 1, Index: 4, Expected: "a", Actual: "b"})
	assert.Equal(t, "  frame 1 event 4\n    expected a\n    got      b", out)
}
