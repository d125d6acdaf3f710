package knob

// Direction is the rotation result of a single decode step.
type Direction int

const (
	// None indicates no movement, or a double step caused by a missed edge.
	None Direction = iota
	Clockwise
	CounterClockwise
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return "none"
}

// decoder is the quadrature state machine. It remembers the previously
// sampled (phase A, phase B) level pair and maps the transition to the
// current pair through the gray code table to a rotation direction.
type decoder struct {
	// prev is the previous phase pair, phase A in bit 1, phase B in bit 0.
	prev uint8
}

// transitions maps prev<<2|cur phase pairs to a direction.
// A clockwise turn walks the pair through 00 -> 01 -> 11 -> 10 -> 00,
// a counterclockwise turn through the reverse. Transitions where both bits
// change at once are double steps and resolve to None.
var transitions = [16]Direction{
	0b0001: Clockwise,
	0b0111: Clockwise,
	0b1110: Clockwise,
	0b1000: Clockwise,
	0b0100: CounterClockwise,
	0b1101: CounterClockwise,
	0b1011: CounterClockwise,
	0b0010: CounterClockwise,
}

// Decode consumes the current phase levels and returns the rotation direction
// of the transition from the previously sampled pair.
//
// The stored pair is updated on every call. Decode must be invoked for every
// phase pin notification, debounced or not, otherwise the state machine
// desynchronizes and misreports the next real rotation.
func (d *decoder) Decode(a, b bool) Direction {
	cur := pair(a, b)
	dir := transitions[d.prev<<2|cur]
	d.prev = cur
	return dir
}

func pair(a, b bool) uint8 {
	var p uint8
	if a {
		p |= 0b10
	}
	if b {
		p |= 0b01
	}
	return p
}
