// Package knob turns raw edge transitions on the three pins of a push-button
// rotary encoder into debounced, ordered knob events.
//
// Edge handlers post pin notifications with Dispatcher.Notify. A single
// processing goroutine serializes the notifications, applies the debounce
// gate, feeds the quadrature decoder and the button edge detector, and pushes
// the resolved events onto an unbounded channel drained by the consumer.
package knob

// Pin identifies which physical input produced an edge notification.
type Pin int

const (
	// Button is the push button pin of the encoder shaft.
	Button Pin = iota
	// PhaseA is the first quadrature phase pin.
	PhaseA
	// PhaseB is the second quadrature phase pin.
	PhaseB
)

func (p Pin) String() string {
	switch p {
	case Button:
		return "button"
	case PhaseA:
		return "phase A"
	case PhaseB:
		return "phase B"
	}
	return "invalid pin"
}

// Event is a fully resolved knob event.
type Event int

const (
	// TurnedClockwise is one accepted clockwise detent step.
	TurnedClockwise Event = iota
	// TurnedCounterClockwise is one accepted counterclockwise detent step.
	TurnedCounterClockwise
	// ButtonPressed is the transition of the button to asserted.
	ButtonPressed
	// ButtonReleased is the transition of the button to released.
	ButtonReleased
)

func (e Event) String() string {
	switch e {
	case TurnedClockwise:
		return "turned clockwise"
	case TurnedCounterClockwise:
		return "turned counterclockwise"
	case ButtonPressed:
		return "button pressed"
	case ButtonReleased:
		return "button released"
	}
	return "invalid event"
}
