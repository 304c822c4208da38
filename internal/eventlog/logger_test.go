package eventlog

import (
	"bytes"
	"errors"
	"testing"

	"git.lost.host/meutraa/yargcore/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	return []Event{
		InputEvent{Time: -0.01, Action: input.GreenFret, Button: true},
		TimerEvent{Time: 0, Name: "strum leniency", Action: TimerStart, EndTime: 0.05},
		NoteEvent{Time: 0, Index: 0, Tick: 0, Result: Hit, Combo: 1},
		ScoreEvent{Time: 0, Kind: NoteScore, Delta: 50, Total: 50, Multiplier: 1},
		SustainEvent{Time: 0, Index: 0, Kind: SustainStart},
		StarPowerEvent{Time: 0.5, Kind: StarPowerAward, Amount: 61440},
		SustainEvent{Time: 1, Index: 0, Kind: SustainEnd, Points: 25},
		ConsistentEvent{Time: 1, Label: "frame"},
	}
}

func TestLoggerRoundTrip(t *testing.T) {
	l := New()
	for _, e := range sampleEvents() {
		l.LogEvent(e)
	}

	var buf bytes.Buffer
	n, err := l.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	read := New()
	m, err := read.ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, sampleEvents(), read.Events())
	assert.Equal(t, -1, FirstDivergence(l.Events(), read.Events()))
}

func TestReadFromRejects(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("NOPE\x01\x00\x00\x00\x00\x00")
	_, err := New().ReadFrom(&buf)
	assert.True(t, errors.Is(err, ErrFormat))

	l := New()
	l.LogEvent(ConsistentEvent{Time: 1, Label: "end"})
	buf.Reset()
	_, err = l.WriteTo(&buf)
	require.NoError(t, err)
	data := buf.Bytes()
	data[10] = 99 // first event tag
	_, err = New().ReadFrom(bytes.NewReader(data))
	assert.True(t, errors.Is(err, ErrFormat))

	_, err = New().ReadFrom(bytes.NewReader(data[:8]))
	assert.Error(t, err)
}

var divergenceTests = map[string]struct {
	a, b     []Event
	expected int
}{
	"identical": {sampleEvents(), sampleEvents(), -1},
	"empty":     {nil, nil, -1},
	"prefix":    {sampleEvents()[:3], sampleEvents(), 3},
	"changed": {
		sampleEvents(),
		append(append([]Event{}, sampleEvents()[:2]...), NoteEvent{Time: 0, Result: Missed}),
		2,
	},
}

func TestFirstDivergence(t *testing.T) {
	for name, test := range divergenceTests {
		if got := FirstDivergence(test.a, test.b); got != test.expected {
			t.Log("case    ", name)
			t.Log("got     ", got)
			t.Log("expected", test.expected)
			t.Fail()
		}
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.LogEvent(NoteEvent{})
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Events())
}
