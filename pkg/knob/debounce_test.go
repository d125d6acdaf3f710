package knob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGateSuppressesWithinWindow(t *testing.T) {
	t0 := time.Now()
	g := newGate(DefaultDebounce, t0.Add(-time.Second))

	t1 := t0.Add(10 * time.Millisecond)
	t2 := t0.Add(100 * time.Millisecond)

	assert.True(t, g.Accept(t0))
	assert.False(t, g.Accept(t1), "notification within the window must be suppressed")
	assert.True(t, g.Accept(t2), "notification at the window boundary must pass")
}

func TestGateAdvancesOnlyOnAcceptance(t *testing.T) {
	t0 := time.Now()
	g := newGate(DefaultDebounce, t0.Add(-time.Second))

	assert.True(t, g.Accept(t0))
	assert.Equal(t, t0, g.last)

	t1 := t0.Add(10 * time.Millisecond)
	assert.False(t, g.Accept(t1))
	assert.Equal(t, t0, g.last, "suppression must not advance the timestamp")

	t2 := t0.Add(100 * time.Millisecond)
	assert.True(t, g.Accept(t2))
	assert.Equal(t, t2, g.last)
}

func TestGateStartsAtConstructionTime(t *testing.T) {
	t0 := time.Now()
	g := newGate(DefaultDebounce, t0)

	// edges right after startup fall into the initial window
	assert.False(t, g.Accept(t0.Add(50*time.Millisecond)))
	assert.True(t, g.Accept(t0.Add(150*time.Millisecond)))
}

func TestGateZeroWindowAcceptsEverything(t *testing.T) {
	t0 := time.Now()
	g := newGate(0, t0)

	assert.True(t, g.Accept(t0))
	assert.True(t, g.Accept(t0))
	assert.True(t, g.Accept(t0.Add(time.Nanosecond)))
}
