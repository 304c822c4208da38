package engine

// EngineTimer is a logical countdown in engine time. Starting a running timer
// restarts it from the new start time.
type EngineTimer struct {
	Name      string
	Duration  float64
	Speed     float64
	StartTime float64

	active bool
}

func NewTimer(name string, duration float64) EngineTimer {
	return EngineTimer{Name: name, Duration: duration, Speed: 1}
}

func (t *EngineTimer) EndTime() float64 {
	speed := t.Speed
	if speed <= 0 {
		speed = 1
	}
	return t.StartTime + t.Duration/speed
}

func (t *EngineTimer) Start(now float64) {
	t.StartTime = now
	t.active = true
}

func (t *EngineTimer) Disable() {
	t.active = false
}

func (t *EngineTimer) IsActive() bool { return t.active }

// IsActiveAt reports whether the timer is running and has not reached its end.
func (t *EngineTimer) IsActiveAt(now float64) bool {
	return t.active && now < t.EndTime()
}

// IsExpired reports whether the timer is running and now is at or past its end.
func (t *EngineTimer) IsExpired(now float64) bool {
	return t.active && now >= t.EndTime()
}

// SetSpeed changes the rate the timer runs at. A running timer keeps its start.
func (t *EngineTimer) SetSpeed(speed float64) {
	t.Speed = speed
}
