package knob

// buttonState tracks the previously observed logical level of the push
// button. The zero value means released.
type buttonState struct {
	pressed bool
}

// Observe compares the current button level with the stored one and returns
// the resulting event, if any. Repeated observations of the same level
// produce nothing.
func (s *buttonState) Observe(pressed bool) (Event, bool) {
	if pressed == s.pressed {
		return 0, false
	}

	s.pressed = pressed
	if pressed {
		return ButtonPressed, true
	}
	return ButtonReleased, true
}
