package session

// restTimer is the countdown between sets. While stopped it shows the
// default duration.
type restTimer struct {
	seconds        int
	defaultSeconds int
	counting       bool
	task           *task
}

// stop returns the timer to its stopped state and releases its task.
func (r *restTimer) stop() {
	r.task.cancel()
	r.task = nil
	r.counting = false
	r.seconds = r.defaultSeconds
}

// StartRest begins counting down from the current rest value. It does
// nothing if the countdown is already running.
func (s *Session) StartRest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.rest.counting {
		return
	}
	s.rest.counting = true
	s.rest.task = startTask(s.newTicker(s.interval), &s.wg, s.tickRest)
}

// StopRest ends the countdown early and resets it to the default.
func (s *Session) StopRest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.rest.stop()
}

// AdjustRest adds delta seconds to a running countdown, never going below
// zero. It has no effect while stopped.
func (s *Session) AdjustRest(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.rest.counting {
		return
	}
	s.rest.seconds += delta
	if s.rest.seconds < 0 {
		s.rest.seconds = 0
	}
}

// SetDefaultRest changes the rest duration. While stopped the new value is
// shown at once; a running countdown keeps going and the new default applies
// from the next stop.
func (s *Session) SetDefaultRest(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidRestDuration
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.rest.defaultSeconds = seconds
	if !s.rest.counting {
		s.rest.seconds = seconds
	}
	return nil
}

// Resting reports whether the countdown is running.
func (s *Session) Resting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rest.counting
}

func (s *Session) tickRest(t *task) {
	s.mu.Lock()
	if s.rest.task != t {
		s.mu.Unlock()
		return
	}
	if s.rest.seconds <= 1 {
		s.rest.stop()
	} else {
		s.rest.seconds--
	}
	snap := s.timers()
	s.mu.Unlock()
	s.publish(snap)
}
