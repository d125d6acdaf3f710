// Package raspberry is the watcher for gpio input lines
package raspberry

import (
	"errors"

	"knobd/pkg/port"
)

var (
	ErrInvalidParam = errors.New("invalid parameters")
	ErrLineInUse    = errors.New("line already requested")
)

// Handler is called for every edge detected on a watched line.
// It runs in the driver's event context and must return quickly.
type Handler func(port.Event)

// Line represents a single requested input line.
type Line interface {
	// Level reports the current logical level of the line. Lines wired
	// with a pull-up are requested active low, so true always means
	// asserted.
	Level() (bool, error)
	// EmuEdge injects an edge on emulated lines.
	// Not supported by the hardware drivers.
	EmuEdge(port.EventType)
	// Close releases all resources held by the requested line.
	//
	// Note that this includes waiting for any running event handler to
	// return, so Close must not be called from the event handler context.
	Close() error
}

// GPIO is a driver that controls a set of input lines.
type GPIO interface {
	// Watch requests control of a single input line and registers the
	// edge handler. If granted, control is maintained until the Line is
	// closed. There can only be one watcher on a line at a time.
	Watch(offset int, handler Handler) (Line, error)
	// Close releases the driver. It does not release any lines which may
	// be requested - they must be closed independently.
	Close() error
}

// Open opens the gpio driver selected in the configuration:
//
//	"chardev" (default) accesses the lines over the gpio character device
//	"gpiomem" maps the gpio registers from /dev/gpiomem
//	"emu" emulates lines in process, for running without hardware
func Open(driver, chip string, pullup bool) (GPIO, error) {
	switch driver {
	case "", "chardev":
		c, err := openChardev(chip, pullup)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gpiomem":
		m, err := openMemmap(pullup)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "emu":
		return openEmu(), nil
	}
	return nil, ErrInvalidParam
}
