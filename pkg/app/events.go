package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/womat/debug"

	"knobd/pkg/knob"
	"knobd/pkg/mqtt"
)

// StateFrame is the snapshot of the knob state as exposed on /state and
// published to the mqtt broker.
type StateFrame struct {
	TimeStamp        time.Time // timestamp of the last received event
	Event            string    // the last received event
	Position         int64     // net detent position since startup
	Clockwise        uint64    // count of clockwise turn events
	CounterClockwise uint64    // count of counterclockwise turn events
	Presses          uint64    // count of button presses
	ButtonPressed    bool      // current button state
}

// knobState guards the snapshot shared between the consumer loop and the
// web handlers.
type knobState struct {
	sync.Mutex
	data StateFrame
}

// service waits in an endless loop for resolved knob events.
// It logs each event, updates the state snapshot and publishes the frame to
// the mqtt broker. The loop ends when the dispatcher is closed.
func (app *App) service() {
	for ev := range app.knob.Load().Events() {
		debug.InfoLog.Printf("received knob event: %v", ev)

		f := app.applyEvent(ev)
		app.sendMQTT(app.config.MQTT.Topic, f)
	}
}

// applyEvent folds one knob event into the state snapshot and returns the
// updated frame.
func (app *App) applyEvent(ev knob.Event) StateFrame {
	app.state.Lock()
	defer app.state.Unlock()

	s := &app.state.data
	s.TimeStamp = time.Now()
	s.Event = ev.String()

	switch ev {
	case knob.TurnedClockwise:
		s.Position++
		s.Clockwise++
	case knob.TurnedCounterClockwise:
		s.Position--
		s.CounterClockwise++
	case knob.ButtonPressed:
		s.Presses++
		s.ButtonPressed = true
	case knob.ButtonReleased:
		s.ButtonPressed = false
	}

	return *s
}

// snapshot returns a copy of the current state frame.
func (app *App) snapshot() StateFrame {
	app.state.Lock()
	defer app.state.Unlock()
	return app.state.data
}

// sendMQTT sends the state frame to the mqtt broker.
func (app *App) sendMQTT(topic string, frame StateFrame) {
	go func(t string, f StateFrame) {
		debug.TraceLog.Printf("prepare mqtt message %v %v", t, f)

		b, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			debug.ErrorLog.Printf("sendMQTT marshal: %v", err)
			return
		}

		app.mqtt.C <- mqtt.Message{
			Qos:      0,
			Retained: true,
			Topic:    t,
			Payload:  b,
		}
	}(topic, frame)
}
