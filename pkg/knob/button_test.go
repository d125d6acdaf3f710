package knob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonObserveUnchangedLevel(t *testing.T) {
	var s buttonState

	for i := 0; i < 5; i++ {
		_, ok := s.Observe(false)
		assert.False(t, ok, "repeated released level must not emit")
	}
}

func TestButtonObservePress(t *testing.T) {
	var s buttonState

	ev, ok := s.Observe(true)
	assert.True(t, ok)
	assert.Equal(t, ButtonPressed, ev)

	// still held down
	_, ok = s.Observe(true)
	assert.False(t, ok)
}

func TestButtonObserveRelease(t *testing.T) {
	var s buttonState

	_, _ = s.Observe(true)

	ev, ok := s.Observe(false)
	assert.True(t, ok)
	assert.Equal(t, ButtonReleased, ev)
}

func TestButtonObserveFlipSequence(t *testing.T) {
	var s buttonState

	want := []Event{ButtonPressed, ButtonReleased, ButtonPressed, ButtonReleased}
	var got []Event

	for _, level := range []bool{false, true, true, false, true, false, false} {
		if ev, ok := s.Observe(level); ok {
			got = append(got, ev)
		}
	}

	assert.Equal(t, want, got)
}
