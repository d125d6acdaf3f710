package raspberry

import (
	"github.com/warthog618/gpiod"

	"knobd/pkg/port"
)

// chardevGPIO accesses a single gpio chip over the character device.
type chardevGPIO struct {
	chip   *gpiod.Chip
	pullup bool
}

func openChardev(chip string, pullup bool) (*chardevGPIO, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	c, err := gpiod.NewChip(chip)
	if err != nil {
		return nil, err
	}

	return &chardevGPIO{chip: c, pullup: pullup}, nil
}

// Watch requests the line as input with both edge detection and forwards the
// edge events to the handler. Pull-up lines are requested active low, so the
// logical level seen by callers is the asserted state.
func (c *chardevGPIO) Watch(offset int, handler Handler) (Line, error) {
	eh := func(evt gpiod.LineEvent) {
		var t port.EventType

		switch evt.Type {
		case gpiod.LineEventRisingEdge:
			t = port.RisingEdge
		case gpiod.LineEventFallingEdge:
			t = port.FallingEdge
		default:
			return
		}

		handler(port.Event{Timestamp: evt.Timestamp, Type: t})
	}

	opts := []gpiod.LineReqOption{
		gpiod.AsInput,
		gpiod.WithBothEdges,
		gpiod.WithEventHandler(eh),
	}
	if c.pullup {
		opts = append(opts, gpiod.WithPullUp, gpiod.AsActiveLow)
	} else {
		opts = append(opts, gpiod.WithPullDown)
	}

	l, err := c.chip.RequestLine(offset, opts...)
	if err != nil {
		return nil, err
	}

	return &chardevLine{line: l}, nil
}

func (c *chardevGPIO) Close() error {
	return c.chip.Close()
}

// chardevLine is a single line requested over the character device.
type chardevLine struct {
	line *gpiod.Line
}

func (l *chardevLine) Level() (bool, error) {
	v, err := l.line.Value()
	return v != 0, err
}

// EmuEdge emulates an edge on the line.
// Not supported by the character device driver.
func (l *chardevLine) EmuEdge(port.EventType) {
}

func (l *chardevLine) Close() error {
	return l.line.Close()
}
