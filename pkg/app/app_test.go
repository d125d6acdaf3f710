package app

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/womat/debug"

	"knobd/pkg/app/config"
	"knobd/pkg/port"
	"knobd/pkg/raspberry"
)

func TestMain(m *testing.M) {
	// flag 0 silences all log levels
	debug.SetDebug(os.Stderr, 0)
	os.Exit(m.Run())
}

// newEmuApp wires the app against the emulated gpio driver, with the
// debounce gate disabled so that every injected edge is accepted.
func newEmuApp(t *testing.T) *App {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Gpio.Driver = "emu"
	cfg.Debounce = 0
	cfg.MQTT.Connection = ""

	a, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, a.init())

	go a.mqtt.Service()
	go a.service()

	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestButtonPressThroughApp(t *testing.T) {
	a := newEmuApp(t)

	a.button.EmuEdge(port.RisingEdge)

	require.Eventually(t, func() bool {
		return a.snapshot().Presses == 1
	}, time.Second, time.Millisecond)
	assert.True(t, a.snapshot().ButtonPressed)
	assert.Equal(t, "button pressed", a.snapshot().Event)

	a.button.EmuEdge(port.FallingEdge)

	require.Eventually(t, func() bool {
		return !a.snapshot().ButtonPressed
	}, time.Second, time.Millisecond)
	assert.Equal(t, "button released", a.snapshot().Event)
}

func TestClockwiseTurnThroughApp(t *testing.T) {
	a := newEmuApp(t)

	// one full clockwise detent cycle, phase B leading
	seq := []struct {
		line raspberry.Line
		edge port.EventType
	}{
		{a.phaseB, port.RisingEdge},
		{a.phaseA, port.RisingEdge},
		{a.phaseB, port.FallingEdge},
		{a.phaseA, port.FallingEdge},
	}

	for i, s := range seq {
		s.line.EmuEdge(s.edge)

		want := uint64(i + 1)
		require.Eventuallyf(t, func() bool {
			return a.snapshot().Clockwise == want
		}, time.Second, time.Millisecond, "step %d not decoded", i)
	}

	f := a.snapshot()
	assert.Equal(t, int64(4), f.Position)
	assert.Equal(t, uint64(0), f.CounterClockwise)
	assert.Equal(t, "turned clockwise", f.Event)
}

func TestCounterClockwiseTurnThroughApp(t *testing.T) {
	a := newEmuApp(t)

	// phase A leading turns the other way
	seq := []struct {
		line raspberry.Line
		edge port.EventType
	}{
		{a.phaseA, port.RisingEdge},
		{a.phaseB, port.RisingEdge},
		{a.phaseA, port.FallingEdge},
		{a.phaseB, port.FallingEdge},
	}

	for i, s := range seq {
		s.line.EmuEdge(s.edge)

		want := uint64(i + 1)
		require.Eventuallyf(t, func() bool {
			return a.snapshot().CounterClockwise == want
		}, time.Second, time.Millisecond, "step %d not decoded", i)
	}

	assert.Equal(t, int64(-4), a.snapshot().Position)
}
