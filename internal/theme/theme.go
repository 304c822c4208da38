package theme

import (
	"git.lost.host/meutraa/yargcore/internal/analyzer"
	"git.lost.host/meutraa/yargcore/internal/engine"
	"git.lost.host/meutraa/yargcore/internal/replay"
)

type Theme interface {
	RenderBanner(passed bool) string
	RenderPlayer(player replay.PlayerInfo) string
	RenderDifference(d engine.Difference) string
	RenderDivergence(d analyzer.Divergence) string
}
