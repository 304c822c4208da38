package parser

import "git.lost.host/meutraa/yargcore/internal/game"

// ChartFile is the document a chart directory holds.
const ChartFile = "chart.json"

type Parser interface {
	// Parse reads the chart of a chart directory.
	Parse(directory string) (*game.Chart, error)
}
