package eventlog

import (
	"fmt"

	"git.lost.host/meutraa/yargcore/internal/input"
)

// EventType is the stable tag written before every event in a log file. Never
// renumber these.
type EventType uint8

const (
	NoteType       EventType = 1
	TimerType      EventType = 2
	ScoreType      EventType = 3
	StarPowerType  EventType = 4
	InputType      EventType = 5
	ConsistentType EventType = 6
	SustainType    EventType = 7
)

func (t EventType) String() string {
	switch t {
	case NoteType:
		return "Note"
	case TimerType:
		return "Timer"
	case ScoreType:
		return "Score"
	case StarPowerType:
		return "StarPower"
	case InputType:
		return "Input"
	case ConsistentType:
		return "Consistent"
	case SustainType:
		return "Sustain"
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event is one entry of an engine trace. Every event is a comparable value so
// two traces can be diffed with ==.
type Event interface {
	Type() EventType
	EventTime() float64
	encode(e *encoder)
}

type NoteResult uint8

const (
	Hit NoteResult = iota
	Missed
)

type NoteEvent struct {
	Time   float64
	Index  int32
	Tick   uint32
	Result NoteResult
	Combo  int32
}

type TimerAction uint8

const (
	TimerStart TimerAction = iota
	TimerExpire
	TimerDisable
)

type TimerEvent struct {
	Time    float64
	Name    string
	Action  TimerAction
	EndTime float64
}

type ScoreKind uint8

const (
	NoteScore ScoreKind = iota
	SustainScore
	SoloBonus
	Commit
)

type ScoreEvent struct {
	Time       float64
	Kind       ScoreKind
	Delta      int64
	Total      int64
	Multiplier int32
}

type StarPowerKind uint8

const (
	StarPowerAward StarPowerKind = iota
	StarPowerActivate
	StarPowerDeactivate
	StarPowerStrip
	StarPowerWhammy
)

// StarPowerEvent amounts are in measure ticks.
type StarPowerEvent struct {
	Time   float64
	Kind   StarPowerKind
	Amount uint32
}

type InputEvent struct {
	Time    float64
	Action  input.Action
	Button  bool
	Integer int32
	Axis    float32
}

// ConsistentEvent marks a point where two runs are expected to agree, such as
// the end of an Update call at a shared frame time.
type ConsistentEvent struct {
	Time  float64
	Label string
}

type SustainKind uint8

const (
	SustainStart SustainKind = iota
	SustainEnd
	SustainDrop
)

type SustainEvent struct {
	Time   float64
	Index  int32
	Kind   SustainKind
	Points int64
}

func (NoteEvent) Type() EventType       { return NoteType }
func (TimerEvent) Type() EventType      { return TimerType }
func (ScoreEvent) Type() EventType      { return ScoreType }
func (StarPowerEvent) Type() EventType  { return StarPowerType }
func (InputEvent) Type() EventType      { return InputType }
func (ConsistentEvent) Type() EventType { return ConsistentType }
func (SustainEvent) Type() EventType    { return SustainType }

func (e NoteEvent) EventTime() float64       { return e.Time }
func (e TimerEvent) EventTime() float64      { return e.Time }
func (e ScoreEvent) EventTime() float64      { return e.Time }
func (e StarPowerEvent) EventTime() float64  { return e.Time }
func (e InputEvent) EventTime() float64      { return e.Time }
func (e ConsistentEvent) EventTime() float64 { return e.Time }
func (e SustainEvent) EventTime() float64    { return e.Time }

// Format renders an event for diff output.
func Format(e Event) string {
	return fmt.Sprintf("%v %+v", e.Type(), e)
}
