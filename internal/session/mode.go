package session

import "alcyxob/liftlog/internal/domain"

// Mode is how the athlete chose to log the next set.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeVideo  Mode = "video"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeManual || m == ModeVideo
}

// Outcome tells the caller what to do after SelectMode.
type Outcome string

const (
	// OutcomeOpenPicker: show the exercise picker; the next ToggleExercise
	// seeds the new exercise (with the pending video after a video pick).
	OutcomeOpenPicker Outcome = "open_picker"
	// OutcomePlacedOnFirst: the video became a new set of the first exercise.
	OutcomePlacedOnFirst Outcome = "placed_on_first"
	// OutcomeCancelled: the video pick was cancelled; nothing changed.
	OutcomeCancelled Outcome = "cancelled"
)

// SelectMode applies the athlete's choice on "add exercise". For the video
// path, video is the already-picked clip (empty if the pick was cancelled).
// With exercises present the clip always lands on the first exercise;
// otherwise it is held until the athlete picks one. Choosing manual drops a
// held clip so the next exercise starts with a blank set.
func (s *Session) SelectMode(mode Mode, video domain.VideoRef) Outcome {
	if mode != ModeVideo {
		s.mu.Lock()
		if !s.closed {
			s.pending = ""
		}
		s.mu.Unlock()
		return OutcomeOpenPicker
	}
	if video == "" {
		return OutcomeCancelled
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return OutcomeCancelled
	}
	if len(s.exercises) > 0 {
		ex := s.exercises[0].Clone()
		ex.Sets = append(ex.Sets, domain.NewVideoSet(video))
		s.replace(0, ex)
		return OutcomePlacedOnFirst
	}
	s.pending = video
	return OutcomeOpenPicker
}
