package knob

import (
	"fmt"
	"time"

	"github.com/womat/debug"
)

// LevelReader reports the current logical level of a single input pin,
// true meaning asserted.
type LevelReader interface {
	Level() (bool, error)
}

// Dispatcher serializes the edge notifications of the three knob pins into a
// single processing goroutine and resolves them into knob events.
//
// Decoder, debounce gate and button state are owned exclusively by the
// processing goroutine, so none of them needs locking.
type Dispatcher struct {
	button LevelReader
	phaseA LevelReader
	phaseB LevelReader

	dec  decoder
	gate *gate
	btn  buttonState

	notifications *queue[Pin]
	events        *queue[Event]

	// done is closed when the processing goroutine has drained the
	// notification queue.
	done chan struct{}
}

// NewDispatcher samples the initial pin levels and starts the processing
// goroutine. The debounce window applies to phase pin notifications only.
func NewDispatcher(button, phaseA, phaseB LevelReader, window time.Duration) (*Dispatcher, error) {
	d, err := newDispatcher(button, phaseA, phaseB, window)
	if err != nil {
		return nil, err
	}

	go d.run()
	return d, nil
}

// newDispatcher wires the dispatcher without starting the processing
// goroutine.
func newDispatcher(button, phaseA, phaseB LevelReader, window time.Duration) (*Dispatcher, error) {
	a, err := phaseA.Level()
	if err != nil {
		return nil, fmt.Errorf("can't sample phase A: %w", err)
	}
	b, err := phaseB.Level()
	if err != nil {
		return nil, fmt.Errorf("can't sample phase B: %w", err)
	}

	d := &Dispatcher{
		button:        button,
		phaseA:        phaseA,
		phaseB:        phaseB,
		gate:          newGate(window, time.Now()),
		notifications: newQueue[Pin](),
		events:        newQueue[Event](),
		done:          make(chan struct{}),
	}
	d.dec.prev = pair(a, b)

	return d, nil
}

// Notify hands the identity of a pin whose level changed to the processing
// goroutine. It is safe to call from a line event handler; no decode logic
// runs in the caller's context and the hand-off queue is unbounded, so the
// caller is never blocked behind processing.
func (d *Dispatcher) Notify(pin Pin) {
	d.notifications.Push(pin)
}

// Events returns the channel the resolved knob events are delivered on.
// Receiving blocks while no event is pending.
func (d *Dispatcher) Events() <-chan Event {
	return d.events.C()
}

// Close stops processing. Notifications already posted are still processed
// and their events delivered before the event channel is closed.
// Notify must not be called after Close.
func (d *Dispatcher) Close() error {
	d.notifications.Close()
	<-d.done
	d.events.Close()
	return nil
}

// run processes the serialized notification stream, one at a time.
func (d *Dispatcher) run() {
	defer close(d.done)

	for pin := range d.notifications.C() {
		d.process(pin, time.Now())
	}
}

// process executes the per notification workflow: debounce check, decoder or
// button update, event emission. The current pin levels are read here rather
// than taken from the notification, they may have changed again since the
// edge fired.
func (d *Dispatcher) process(pin Pin, now time.Time) {
	debug.TraceLog.Printf("received %v notification", pin)

	switch pin {
	case PhaseA, PhaseB:
		// read first, so a driver error leaves the gate untouched
		a, err := d.phaseA.Level()
		if err != nil {
			debug.ErrorLog.Printf("can't read phase A: %v", err)
			return
		}
		b, err := d.phaseB.Level()
		if err != nil {
			debug.ErrorLog.Printf("can't read phase B: %v", err)
			return
		}

		accepted := d.gate.Accept(now)

		// the decoder state is updated on suppressed notifications too,
		// only the resulting direction is discarded
		dir := d.dec.Decode(a, b)

		if !accepted {
			debug.TraceLog.Printf("discarding %v notification due to rapid timing", pin)
			return
		}

		switch dir {
		case Clockwise:
			d.events.Push(TurnedClockwise)
		case CounterClockwise:
			d.events.Push(TurnedCounterClockwise)
		}

	case Button:
		// button notifications are never gated
		pressed, err := d.button.Level()
		if err != nil {
			debug.ErrorLog.Printf("can't read button: %v", err)
			return
		}

		if ev, ok := d.btn.Observe(pressed); ok {
			d.events.Push(ev)
		}
	}
}
