// Package session implements the live workout state engine: the exercises and
// sets an athlete logs during one workout, the elapsed and rest timers, and the
// choice between manual and video logging.
//
// A Session is safe for concurrent use. Timer goroutines are owned by the
// Session and are released by Close.
package session

import (
	"errors"
	"sync"
	"time"

	"alcyxob/liftlog/internal/domain"
)

const (
	// DefaultRestSeconds is the rest countdown used when none is configured.
	DefaultRestSeconds = 90
	// DefaultTickInterval drives both timers.
	DefaultTickInterval = time.Second
)

var (
	// ErrIncompleteSet is matched by every ValidationFailure.
	ErrIncompleteSet = errors.New("set is missing weight or reps")
	// ErrInvalidRestDuration is returned for a non-positive default rest.
	ErrInvalidRestDuration = errors.New("rest duration must be positive")
)

const incompleteSetMessage = "Please enter weight and reps before completing the set"

// ValidationFailure reports an attempt to complete a set that lacks weight or
// reps. It never changes session state.
type ValidationFailure struct {
	ExerciseIndex int
	SetIndex      int
	Message       string
}

func (v *ValidationFailure) Error() string { return v.Message }

func (v *ValidationFailure) Is(target error) bool { return target == ErrIncompleteSet }

// Notifier shows short user-facing messages.
type Notifier interface {
	Notify(message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

// Timers is a point-in-time view of both clocks.
type Timers struct {
	ElapsedSeconds     int  `json:"elapsedSeconds"`
	ElapsedPaused      bool `json:"elapsedPaused"`
	RestSeconds        int  `json:"restSeconds"`
	DefaultRestSeconds int  `json:"defaultRestSeconds"`
	Resting            bool `json:"resting"`
}

// State is a deep copy of everything a client renders.
type State struct {
	Exercises          []domain.Exercise `json:"exercises"`
	Expanded           map[string]bool   `json:"expanded"`
	Timers             Timers            `json:"timers"`
	PendingVideo       domain.VideoRef   `json:"pendingVideo,omitempty"`
	TotalSetsCompleted int               `json:"totalSetsCompleted"`
	ExerciseCount      int               `json:"exerciseCount"`
	StartedAt          time.Time         `json:"startedAt"`
}

// Option configures a Session.
type Option func(*Session)

// WithDefaultRest sets the initial rest countdown. Non-positive values are ignored.
func WithDefaultRest(seconds int) Option {
	return func(s *Session) {
		if seconds > 0 {
			s.rest.defaultSeconds = seconds
			s.rest.seconds = seconds
		}
	}
}

// WithTickInterval overrides the 1s timer period.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTickerFactory replaces the ticker source, mostly for tests.
func WithTickerFactory(f TickerFactory) Option {
	return func(s *Session) { s.newTicker = f }
}

// WithNotifier routes validation messages to n.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithTimerHook registers fn to receive the timers after every tick.
// fn is called without the session lock held.
func WithTimerHook(fn func(Timers)) Option {
	return func(s *Session) { s.onTick = fn }
}

// Session is one live workout.
type Session struct {
	mu        sync.Mutex
	exercises []domain.Exercise
	expanded  map[string]bool
	pending   domain.VideoRef
	elapsed   elapsedTimer
	rest      restTimer
	closed    bool
	startedAt time.Time

	interval  time.Duration
	newTicker TickerFactory
	notifier  Notifier
	onTick    func(Timers)
	wg        sync.WaitGroup
}

// New returns an empty session with both timers stopped.
func New(opts ...Option) *Session {
	s := &Session{
		expanded:  make(map[string]bool),
		rest:      restTimer{seconds: DefaultRestSeconds, defaultSeconds: DefaultRestSeconds},
		startedAt: time.Now().UTC(),
		interval:  DefaultTickInterval,
		newTicker: NewStdTicker,
		notifier:  nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close stops both timers and waits for their goroutines to exit. Mutations
// after Close are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.elapsed.task.cancel()
	s.elapsed.task = nil
	s.rest.stop()
	s.mu.Unlock()
	s.wg.Wait()
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// ToggleExercise removes the exercise called name if present, otherwise
// appends it seeded with one set. A pending video seeds a video set and is
// consumed.
func (s *Session) ToggleExercise(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	if i := s.indexOf(name); i >= 0 {
		exs := make([]domain.Exercise, 0, len(s.exercises)-1)
		exs = append(exs, s.exercises[:i]...)
		exs = append(exs, s.exercises[i+1:]...)
		s.exercises = exs
		delete(s.expanded, name)
	} else {
		seed := domain.Set{}
		if s.pending != "" {
			seed = domain.NewVideoSet(s.pending)
			s.pending = ""
		}
		exs := make([]domain.Exercise, len(s.exercises), len(s.exercises)+1)
		copy(exs, s.exercises)
		s.exercises = append(exs, domain.Exercise{Name: name, Sets: []domain.Set{seed}})
	}
	s.reconcileElapsed()
}

// The mutators below report whether they were applied. Out-of-range
// addresses, unknown fields and closed sessions are no-ops.

// AddSet appends a blank manual set to the exercise at exerciseIndex.
func (s *Session) AddSet(exerciseIndex int) bool {
	return s.appendSet(exerciseIndex, domain.Set{})
}

// AddVideoSet appends a video set carrying video to the exercise at exerciseIndex.
func (s *Session) AddVideoSet(exerciseIndex int, video domain.VideoRef) bool {
	return s.appendSet(exerciseIndex, domain.NewVideoSet(video))
}

func (s *Session) appendSet(exerciseIndex int, set domain.Set) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.validExercise(exerciseIndex) {
		return false
	}
	ex := s.exercises[exerciseIndex].Clone()
	ex.Sets = append(ex.Sets, set)
	s.replace(exerciseIndex, ex)
	return true
}

// UpdateSetField replaces one text field of one set. Blanking the weight or
// reps of a completed set also un-completes it.
func (s *Session) UpdateSetField(exerciseIndex, setIndex int, field domain.SetField, value string) bool {
	if !field.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSet(exerciseIndex, setIndex, func(set domain.Set) domain.Set {
		return set.With(field, value)
	})
}

// ToggleSetCompletion flips the completed flag of one set. Completing a set
// without weight and reps returns a *ValidationFailure and changes nothing.
func (s *Session) ToggleSetCompletion(exerciseIndex, setIndex int) error {
	_, err := s.ToggleSetCompletionChecked(exerciseIndex, setIndex)
	return err
}

// ToggleSetCompletionChecked is ToggleSetCompletion that also reports whether
// the set was found.
func (s *Session) ToggleSetCompletionChecked(exerciseIndex, setIndex int) (bool, error) {
	s.mu.Lock()
	if s.closed || !s.validSet(exerciseIndex, setIndex) {
		s.mu.Unlock()
		return false, nil
	}
	set := s.exercises[exerciseIndex].Sets[setIndex]
	if !set.Completed && !set.Completable() {
		s.mu.Unlock()
		s.notifier.Notify(incompleteSetMessage)
		return true, &ValidationFailure{ExerciseIndex: exerciseIndex, SetIndex: setIndex, Message: incompleteSetMessage}
	}
	s.updateSet(exerciseIndex, setIndex, func(set domain.Set) domain.Set {
		set.Completed = !set.Completed
		return set
	})
	s.mu.Unlock()
	return true, nil
}

// RemoveSet deletes one set. The exercise stays even if it has no sets left.
func (s *Session) RemoveSet(exerciseIndex, setIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.validSet(exerciseIndex, setIndex) {
		return false
	}
	old := s.exercises[exerciseIndex]
	sets := make([]domain.Set, 0, len(old.Sets)-1)
	sets = append(sets, old.Sets[:setIndex]...)
	sets = append(sets, old.Sets[setIndex+1:]...)
	s.replace(exerciseIndex, domain.Exercise{Name: old.Name, Sets: sets})
	return true
}

// AttachVideo sets the video of one set without turning it into a video set.
func (s *Session) AttachVideo(exerciseIndex, setIndex int, video domain.VideoRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSet(exerciseIndex, setIndex, func(set domain.Set) domain.Set {
		set.Video = video
		return set
	})
}

// ToggleExpanded flips the display flag of the exercise at exerciseIndex.
func (s *Session) ToggleExpanded(exerciseIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.validExercise(exerciseIndex) {
		return false
	}
	name := s.exercises[exerciseIndex].Name
	s.expanded[name] = !s.expanded[name]
	return true
}

// IsExpanded reports the display flag of the exercise at exerciseIndex.
func (s *Session) IsExpanded(exerciseIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validExercise(exerciseIndex) {
		return false
	}
	return s.expanded[s.exercises[exerciseIndex].Name]
}

// TotalSetsCompleted counts completed sets across all exercises.
func (s *Session) TotalSetsCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCompleted()
}

// ExerciseCount returns the number of exercises.
func (s *Session) ExerciseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exercises)
}

// SetCount returns the number of sets of one exercise, or -1 if out of range.
func (s *Session) SetCount(exerciseIndex int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validExercise(exerciseIndex) {
		return -1
	}
	return len(s.exercises[exerciseIndex].Sets)
}

// Exercises returns a deep copy of the exercises.
func (s *Session) Exercises() []domain.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneExercises()
}

// Exercise returns a copy of one exercise.
func (s *Session) Exercise(exerciseIndex int) (domain.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.validExercise(exerciseIndex) {
		return domain.Exercise{}, false
	}
	return s.exercises[exerciseIndex].Clone(), true
}

// PendingVideo returns the video waiting for an exercise, if any.
func (s *Session) PendingVideo() domain.VideoRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// StartedAt is when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Timers returns the current clock values.
func (s *Session) Timers() Timers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers()
}

// State returns a snapshot of the whole session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	expanded := make(map[string]bool, len(s.expanded))
	for k, v := range s.expanded {
		expanded[k] = v
	}
	return State{
		Exercises:          s.cloneExercises(),
		Expanded:           expanded,
		Timers:             s.timers(),
		PendingVideo:       s.pending,
		TotalSetsCompleted: s.totalCompleted(),
		ExerciseCount:      len(s.exercises),
		StartedAt:          s.startedAt,
	}
}

// The helpers below expect s.mu to be held.

func (s *Session) indexOf(name string) int {
	for i, ex := range s.exercises {
		if ex.Name == name {
			return i
		}
	}
	return -1
}

func (s *Session) validExercise(i int) bool {
	return i >= 0 && i < len(s.exercises)
}

func (s *Session) validSet(ei, si int) bool {
	return s.validExercise(ei) && si >= 0 && si < len(s.exercises[ei].Sets)
}

// replace swaps in ex at position i on a fresh slice so earlier snapshots
// keep their contents.
func (s *Session) replace(i int, ex domain.Exercise) {
	exs := make([]domain.Exercise, len(s.exercises))
	copy(exs, s.exercises)
	exs[i] = ex
	s.exercises = exs
}

func (s *Session) updateSet(ei, si int, fn func(domain.Set) domain.Set) bool {
	if s.closed || !s.validSet(ei, si) {
		return false
	}
	ex := s.exercises[ei].Clone()
	ex.Sets[si] = fn(ex.Sets[si])
	s.replace(ei, ex)
	return true
}

func (s *Session) cloneExercises() []domain.Exercise {
	out := make([]domain.Exercise, len(s.exercises))
	for i, ex := range s.exercises {
		out[i] = ex.Clone()
	}
	return out
}

func (s *Session) totalCompleted() int {
	n := 0
	for _, ex := range s.exercises {
		n += ex.CompletedSets()
	}
	return n
}

func (s *Session) timers() Timers {
	return Timers{
		ElapsedSeconds:     s.elapsed.seconds,
		ElapsedPaused:      s.elapsed.paused,
		RestSeconds:        s.rest.seconds,
		DefaultRestSeconds: s.rest.defaultSeconds,
		Resting:            s.rest.counting,
	}
}

func (s *Session) publish(t Timers) {
	if s.onTick != nil {
		s.onTick(t)
	}
}
