package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	assert := assert.New(t)

	timer := NewTimer("strum", 0.1)
	assert.False(timer.IsActive())
	assert.False(timer.IsExpired(10))

	timer.Start(1)
	assert.True(timer.IsActiveAt(1.05))
	assert.False(timer.IsExpired(1.05))
	assert.True(timer.IsExpired(1.1))
	assert.False(timer.IsActiveAt(1.1))

	// restarting does not stack
	timer.Start(1.08)
	assert.InDelta(1.08+0.1, timer.EndTime(), 1e-9)

	timer.SetSpeed(2)
	assert.InDelta(1.08+0.05, timer.EndTime(), 1e-9)

	timer.Disable()
	assert.False(timer.IsActive())
	assert.False(timer.IsExpired(5))
}
