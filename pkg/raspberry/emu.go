package raspberry

import (
	"sync"
	"time"

	"knobd/pkg/port"
)

// emuGPIO emulates gpio lines in process. Edges are injected with EmuEdge,
// which fires the registered handler just like a hardware edge would.
type emuGPIO struct {
	mu      sync.Mutex
	lines   map[int]*emuLine
	started time.Time
}

func openEmu() *emuGPIO {
	return &emuGPIO{
		lines:   map[int]*emuLine{},
		started: time.Now(),
	}
}

func (e *emuGPIO) Watch(offset int, handler Handler) (Line, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.lines[offset]; ok {
		return nil, ErrLineInUse
	}

	l := &emuLine{handler: handler, started: e.started}
	e.lines[offset] = l
	return l, nil
}

func (e *emuGPIO) Close() error {
	return nil
}

// emuLine is a single emulated line. The level follows the injected edges
// and starts out released.
type emuLine struct {
	mu      sync.Mutex
	level   bool
	handler Handler
	started time.Time
}

func (l *emuLine) Level() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level, nil
}

// EmuEdge sets the line level according to the edge type and fires the
// registered handler.
func (l *emuLine) EmuEdge(t port.EventType) {
	l.mu.Lock()
	l.level = t == port.RisingEdge
	handler := l.handler
	l.mu.Unlock()

	if handler != nil {
		handler(port.Event{Timestamp: time.Since(l.started), Type: t})
	}
}

func (l *emuLine) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
	return nil
}
