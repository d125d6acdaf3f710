//go:build linux

package raspberry

import (
	"time"

	"github.com/warthog618/gpio"

	"knobd/pkg/port"
)

// memmapGPIO accesses the gpio registers mapped from /dev/gpiomem.
type memmapGPIO struct {
	pullup  bool
	started time.Time
}

func openMemmap(pullup bool) (*memmapGPIO, error) {
	if err := gpio.Open(); err != nil {
		return nil, err
	}

	return &memmapGPIO{pullup: pullup, started: time.Now()}, nil
}

// Watch requests the pin as input and calls the handler on both edges.
// The pin number provided is the BCM GPIO number.
func (m *memmapGPIO) Watch(offset int, handler Handler) (Line, error) {
	pin := gpio.NewPin(offset)
	pin.Input()

	if m.pullup {
		pin.PullUp()
	} else {
		pin.PullDown()
	}

	l := &memmapLine{pin: pin, activeLow: m.pullup, started: m.started}

	err := pin.Watch(gpio.EdgeBoth, func(p *gpio.Pin) {
		t := port.FallingEdge
		if level, _ := l.Level(); level {
			t = port.RisingEdge
		}

		handler(port.Event{Timestamp: time.Since(l.started), Type: t})
	})
	if err != nil {
		return nil, err
	}

	return l, nil
}

// Close unmaps the GPIO memory. Watched pins must be closed first.
func (m *memmapGPIO) Close() error {
	return gpio.Close()
}

// memmapLine is a single watched pin of the memory mapped driver.
type memmapLine struct {
	pin *gpio.Pin
	// activeLow maps the electrical level to the asserted state for
	// pull-up wiring.
	activeLow bool
	started   time.Time
}

func (l *memmapLine) Level() (bool, error) {
	level := bool(l.pin.Read())
	if l.activeLow {
		level = !level
	}
	return level, nil
}

// EmuEdge emulates an edge on the line.
// Not supported by the memory mapped driver.
func (l *memmapLine) EmuEdge(port.EventType) {
}

func (l *memmapLine) Close() error {
	l.pin.Unwatch()
	return nil
}
