package session

// elapsedTimer counts whole seconds while the session has exercises and is
// not paused.
type elapsedTimer struct {
	seconds int
	paused  bool
	task    *task
}

func (e *elapsedTimer) running() bool {
	return e.task != nil
}

// ToggleTimer pauses or resumes the elapsed clock. The count is kept.
func (s *Session) ToggleTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.elapsed.paused = !s.elapsed.paused
	s.reconcileElapsed()
}

// ElapsedRunning reports whether the elapsed clock is counting.
func (s *Session) ElapsedRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed.running()
}

// reconcileElapsed starts or stops the elapsed task so that it runs exactly
// when there is at least one exercise and the clock is not paused.
func (s *Session) reconcileElapsed() {
	want := !s.closed && len(s.exercises) > 0 && !s.elapsed.paused
	switch {
	case want && !s.elapsed.running():
		s.elapsed.task = startTask(s.newTicker(s.interval), &s.wg, s.tickElapsed)
	case !want && s.elapsed.running():
		s.elapsed.task.cancel()
		s.elapsed.task = nil
	}
}

func (s *Session) tickElapsed(t *task) {
	s.mu.Lock()
	if s.elapsed.task != t {
		s.mu.Unlock()
		return
	}
	s.elapsed.seconds++
	snap := s.timers()
	s.mu.Unlock()
	s.publish(snap)
}
