package knob

import "time"

// DefaultDebounce is the minimum time between two accepted phase pin
// notifications.
const DefaultDebounce = 100 * time.Millisecond

// gate suppresses notifications arriving within the debounce window of the
// last accepted one.
type gate struct {
	window time.Duration
	// last is the timestamp of the last accepted notification.
	// It is never advanced on suppression.
	last time.Time
}

func newGate(window time.Duration, now time.Time) *gate {
	return &gate{window: window, last: now}
}

// Accept reports whether a notification observed at now passes the gate.
func (g *gate) Accept(now time.Time) bool {
	if now.Sub(g.last) < g.window {
		return false
	}
	g.last = now
	return true
}
