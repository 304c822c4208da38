package input

import "fmt"

type Action uint8

const (
	GreenFret Action = iota
	RedFret
	YellowFret
	BlueFret
	OrangeFret
	StrumUp
	StrumDown
	Whammy
	StarPower

	Kick
	RedPad
	YellowPad
	BluePad
	GreenPad
	YellowCymbal
	BlueCymbal
	GreenCymbal

	// Axis carries the sung pitch as a MIDI note number, Button whether the
	// singer is voiced
	VoxPitch

	actionCount
)

var actionNames = [...]string{
	GreenFret:    "green",
	RedFret:      "red",
	YellowFret:   "yellow",
	BlueFret:     "blue",
	OrangeFret:   "orange",
	StrumUp:      "strum_up",
	StrumDown:    "strum_down",
	Whammy:       "whammy",
	StarPower:    "star_power",
	Kick:         "kick",
	RedPad:       "red_pad",
	YellowPad:    "yellow_pad",
	BluePad:      "blue_pad",
	GreenPad:     "green_pad",
	YellowCymbal: "yellow_cymbal",
	BlueCymbal:   "blue_cymbal",
	GreenCymbal:  "green_cymbal",
	VoxPitch:     "vox_pitch",
}

func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", uint8(a))
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	for i, name := range actionNames {
		if name == string(text) {
			*a = Action(i)
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", text)
}

// IsFret reports whether the action is one of the five guitar frets.
func (a Action) IsFret() bool { return a <= OrangeFret }

func (a Action) IsStrum() bool { return a == StrumUp || a == StrumDown }

// GameInput is one timestamped player action. Which of Integer, Axis and Button
// carries the value depends on the action.
type GameInput struct {
	Time    float64
	Action  Action
	Integer int32   `json:",omitempty"`
	Axis    float32 `json:",omitempty"`
	Button  bool
}

func (i GameInput) String() string {
	return fmt.Sprintf("%12.6f %-14v button=%-5v int=%d axis=%g", i.Time, i.Action, i.Button, i.Integer, i.Axis)
}
