package eventlog

import (
	"encoding/binary"
	"fmt"
	"io"
)

var magic = [4]byte{'E', 'V', 'L', 'G'}

const version uint16 = 1

type encoder struct {
	w   io.Writer
	n   int64
	err error
}

func (e *encoder) put(v any) {
	if nil != e.err {
		return
	}
	if e.err = binary.Write(e.w, binary.LittleEndian, v); nil == e.err {
		e.n += int64(binary.Size(v))
	}
}

func (e *encoder) putString(s string) {
	if len(s) > 0xffff {
		s = s[:0xffff]
	}
	e.put(uint16(len(s)))
	if nil != e.err {
		return
	}
	n, err := io.WriteString(e.w, s)
	e.n += int64(n)
	e.err = err
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) get(v any) {
	if nil != d.err {
		return
	}
	d.err = binary.Read(d.r, binary.LittleEndian, v)
}

func (d *decoder) getString() string {
	var n uint16
	d.get(&n)
	if nil != d.err {
		return ""
	}
	buf := make([]byte, n)
	_, d.err = io.ReadFull(d.r, buf)
	return string(buf)
}

func (e NoteEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.put(e.Index)
	enc.put(e.Tick)
	enc.put(e.Result)
	enc.put(e.Combo)
}

func (e TimerEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.putString(e.Name)
	enc.put(e.Action)
	enc.put(e.EndTime)
}

func (e ScoreEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.put(e.Kind)
	enc.put(e.Delta)
	enc.put(e.Total)
	enc.put(e.Multiplier)
}

func (e StarPowerEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.put(e.Kind)
	enc.put(e.Amount)
}

func (e InputEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.put(e.Action)
	enc.put(e.Button)
	enc.put(e.Integer)
	enc.put(e.Axis)
}

func (e ConsistentEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.putString(e.Label)
}

func (e SustainEvent) encode(enc *encoder) {
	enc.put(e.Time)
	enc.put(e.Index)
	enc.put(e.Kind)
	enc.put(e.Points)
}

var decoders = map[EventType]func(d *decoder) Event{
	NoteType: func(d *decoder) Event {
		var e NoteEvent
		d.get(&e.Time)
		d.get(&e.Index)
		d.get(&e.Tick)
		d.get(&e.Result)
		d.get(&e.Combo)
		return e
	},
	TimerType: func(d *decoder) Event {
		var e TimerEvent
		d.get(&e.Time)
		e.Name = d.getString()
		d.get(&e.Action)
		d.get(&e.EndTime)
		return e
	},
	ScoreType: func(d *decoder) Event {
		var e ScoreEvent
		d.get(&e.Time)
		d.get(&e.Kind)
		d.get(&e.Delta)
		d.get(&e.Total)
		d.get(&e.Multiplier)
		return e
	},
	StarPowerType: func(d *decoder) Event {
		var e StarPowerEvent
		d.get(&e.Time)
		d.get(&e.Kind)
		d.get(&e.Amount)
		return e
	},
	InputType: func(d *decoder) Event {
		var e InputEvent
		d.get(&e.Time)
		d.get(&e.Action)
		d.get(&e.Button)
		d.get(&e.Integer)
		d.get(&e.Axis)
		return e
	},
	ConsistentType: func(d *decoder) Event {
		var e ConsistentEvent
		d.get(&e.Time)
		e.Label = d.getString()
		return e
	},
	SustainType: func(d *decoder) Event {
		var e SustainEvent
		d.get(&e.Time)
		d.get(&e.Index)
		d.get(&e.Kind)
		d.get(&e.Points)
		return e
	},
}

// WriteTo writes the log as a header followed by tagged events.
func (l *Logger) WriteTo(w io.Writer) (int64, error) {
	enc := &encoder{w: w}
	enc.put(magic)
	enc.put(version)
	enc.put(uint32(len(l.events)))
	for _, e := range l.events {
		enc.put(e.Type())
		e.encode(enc)
	}
	return enc.n, enc.err
}

// ReadFrom replaces the events of the log with those read from r.
func (l *Logger) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	dec := &decoder{r: cr}

	var m [4]byte
	var v uint16
	var count uint32
	dec.get(&m)
	dec.get(&v)
	dec.get(&count)
	if nil != dec.err {
		return cr.n, fmt.Errorf("unable to read event log header: %w", dec.err)
	}
	if m != magic {
		return cr.n, fmt.Errorf("not an event log: %w", ErrFormat)
	}
	if v != version {
		return cr.n, fmt.Errorf("event log version %d: %w", v, ErrFormat)
	}

	events := make([]Event, 0, count)
	for i := uint32(0); i < count; i++ {
		var tag EventType
		dec.get(&tag)
		if nil != dec.err {
			return cr.n, fmt.Errorf("unable to read event %d: %w", i, dec.err)
		}
		decode, ok := decoders[tag]
		if !ok {
			return cr.n, fmt.Errorf("event %d has unknown type %d: %w", i, tag, ErrFormat)
		}
		e := decode(dec)
		if nil != dec.err {
			return cr.n, fmt.Errorf("unable to read %v event %d: %w", tag, i, dec.err)
		}
		events = append(events, e)
	}
	l.events = events
	return cr.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
