package eventlog

import "errors"

var ErrFormat = errors.New("malformed event log")

// Logger records engine events in order. A nil *Logger drops every event, so
// engines can log unconditionally.
type Logger struct {
	events []Event
}

func New() *Logger {
	return &Logger{}
}

func (l *Logger) LogEvent(e Event) {
	if nil == l {
		return
	}
	l.events = append(l.events, e)
}

func (l *Logger) Events() []Event {
	if nil == l {
		return nil
	}
	return l.events
}

func (l *Logger) Len() int {
	if nil == l {
		return 0
	}
	return len(l.events)
}

func (l *Logger) Clear() {
	if nil == l {
		return
	}
	l.events = l.events[:0]
}

// FirstDivergence returns the index of the first event that differs between a
// and b, or -1 when they are identical. A log that is a prefix of the other
// diverges where it ends.
func FirstDivergence(a, b []Event) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
