package testdata

import (
	"git.lost.host/meutraa/yargcore/internal/game"
	"git.lost.host/meutraa/yargcore/internal/input"
	"git.lost.host/meutraa/yargcore/internal/replay"
)

// ChartJSON is a short chart document at 120 BPM and resolution 480, so 960
// ticks are one second.
const ChartJSON = `{
	"Name": "fixture",
	"Resolution": 480,
	"Tempos": [{"Tick": 0, "BeatsPerMinute": 120}],
	"TimeSignatures": [{"Tick": 0, "Numerator": 4, "Denominator": 4}],
	"Tracks": [
		{
			"Instrument": "guitar",
			"Difficulty": "expert",
			"Phrases": [
				{"Type": 0, "Tick": 0, "TickLength": 1300},
				{"Type": 1, "Tick": 1440, "TickLength": 600}
			],
			"Notes": [
				{"Tick": 0, "Length": 480, "Frets": [1]},
				{"Tick": 960, "Frets": [2]},
				{"Tick": 1200, "Frets": [3], "Type": 1},
				{"Tick": 1440, "Frets": [1, 2]},
				{"Tick": 1920, "Length": 960, "Frets": [3]},
				{"Tick": 3360, "Frets": [0]}
			]
		},
		{
			"Instrument": "bass",
			"Difficulty": "hard",
			"Notes": [
				{"Tick": 0, "Frets": [1]},
				{"Tick": 960, "Frets": [1]}
			]
		},
		{
			"Instrument": "drums",
			"Difficulty": "expert",
			"Notes": [
				{"Tick": 0, "Pads": [0, 1]},
				{"Tick": 480, "Pads": [5]},
				{"Tick": 960, "Pads": [2]},
				{"Tick": 1440, "Pads": [0, 4]}
			]
		},
		{
			"Instrument": "vocals",
			"Difficulty": "expert",
			"Notes": [
				{"Tick": 0, "Length": 1920, "Notes": [
					{"Tick": 0, "Length": 960, "Pitch": 60},
					{"Tick": 960, "Length": 960, "Pitch": 64},
					{"Tick": 1900, "Percussion": true}
				]},
				{"Tick": 2880, "Length": 960, "Notes": [
					{"Tick": 2880, "Length": 960, "Pitch": 62}
				]}
			]
		}
	]
}`

func press(time float64, action input.Action) input.GameInput {
	return input.GameInput{Time: time, Action: action, Button: true}
}

func release(time float64, action input.Action) input.GameInput {
	return input.GameInput{Time: time, Action: action}
}

func sing(time float64, pitch float32) input.GameInput {
	return input.GameInput{Time: time, Action: input.VoxPitch, Axis: pitch, Button: true}
}

// Replay plays ChartJSON with one player per engine. It carries no recorded
// stats or band score.
func Replay() *replay.Replay {
	return &replay.Replay{
		SongName: "fixture",
		Frames: []replay.Frame{
			{
				Player: replay.PlayerInfo{Name: "guitarist", Instrument: game.FiveFretGuitar, Difficulty: game.Expert},
				Inputs: []input.GameInput{
					press(-0.01, input.GreenFret),
					press(0, input.StrumDown),
					release(0.6, input.GreenFret),
					press(0.95, input.RedFret),
					press(1, input.StrumUp),
					press(1.25, input.YellowFret),
					release(1.4, input.YellowFret),
					press(1.45, input.GreenFret),
					press(1.5, input.StrumDown),
					release(1.9, input.GreenFret),
					release(1.9, input.RedFret),
					press(1.95, input.YellowFret),
					press(2, input.StrumDown),
					press(2.2, input.Whammy),
					press(2.4, input.Whammy),
					press(2.5, input.StarPower),
					release(3.1, input.YellowFret),
					press(3.5, input.StrumDown),
					press(4, input.StrumDown),
				},
			},
			{
				Player: replay.PlayerInfo{Name: "drummer", Instrument: game.FourLaneDrums, Difficulty: game.Expert},
				Inputs: []input.GameInput{
					press(0, input.Kick),
					press(0.01, input.RedPad),
					press(0.5, input.YellowCymbal),
					press(1, input.YellowPad),
					press(1.2, input.RedPad),
					press(1.5, input.Kick),
					press(1.51, input.GreenPad),
				},
			},
			{
				Player: replay.PlayerInfo{Name: "singer", Instrument: game.Vocals, Difficulty: game.Expert},
				Inputs: []input.GameInput{
					sing(0, 60),
					sing(1, 76),
					release(2, input.VoxPitch),
					sing(3, 62),
					release(3.5, input.VoxPitch),
				},
			},
		},
	}
}
