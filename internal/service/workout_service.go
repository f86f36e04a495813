package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/metrics"
	"alcyxob/liftlog/internal/repository"
	"alcyxob/liftlog/internal/session"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrSessionNotFound     = errors.New("workout session not found")
	ErrOutOfRange          = errors.New("exercise or set index out of range")
	ErrPersistenceFailed   = errors.New("failed to save workout, please try again")
	ErrInvalidExerciseName = errors.New("exercise name is required")
	ErrInvalidField        = errors.New("unknown set field")
	ErrInvalidMode         = errors.New("unknown logging mode")
	ErrTooManySessions     = errors.New("too many open workout sessions")
)

// SessionSettings are applied to every new session.
type SessionSettings struct {
	DefaultRestSeconds int
	TickInterval       time.Duration
	// IdleTimeout closes sessions nobody touched for this long. Zero disables it.
	IdleTimeout time.Duration
	// MaxPerAthlete caps open sessions per athlete. Zero means unlimited.
	MaxPerAthlete int
}

// --- Service Interface ---

// WorkoutService hosts live workout sessions for athletes. Every mutating
// call returns the session state after the change.
type WorkoutService interface {
	StartSession(ctx context.Context, athleteID string) (string, session.State, error)
	GetState(ctx context.Context, athleteID, sessionID string) (session.State, error)
	DiscardSession(ctx context.Context, athleteID, sessionID string) error

	ToggleExercise(ctx context.Context, athleteID, sessionID, name string) (session.State, error)
	AddSet(ctx context.Context, athleteID, sessionID string, exerciseIndex int) (session.State, error)
	UpdateSetField(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int, field domain.SetField, value string) (session.State, error)
	ToggleSetCompletion(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int) (session.State, error)
	RemoveSet(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int) (session.State, error)
	AttachVideo(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int, video domain.VideoRef) (session.State, error)
	ToggleExpanded(ctx context.Context, athleteID, sessionID string, exerciseIndex int) (session.State, error)
	SelectMode(ctx context.Context, athleteID, sessionID string, mode session.Mode, video domain.VideoRef) (session.Outcome, session.State, error)

	ToggleTimer(ctx context.Context, athleteID, sessionID string) (session.State, error)
	StartRest(ctx context.Context, athleteID, sessionID string) (session.State, error)
	StopRest(ctx context.Context, athleteID, sessionID string) (session.State, error)
	AdjustRest(ctx context.Context, athleteID, sessionID string, delta int) (session.State, error)
	SetDefaultRest(ctx context.Context, athleteID, sessionID string, seconds int) (session.State, error)

	EndWorkout(ctx context.Context, athleteID, sessionID string) (*domain.WorkoutLog, error)
	ListWorkouts(ctx context.Context, athleteID string, limit int64) ([]domain.WorkoutLog, error)

	// ReapIdle closes sessions idle for longer than the configured timeout as
	// of now and returns how many were closed.
	ReapIdle(now time.Time) int

	// Shutdown closes every live session and stops their timers.
	Shutdown()
}

// --- Service Implementation ---

type liveSession struct {
	athleteID  string
	session    *session.Session
	lastActive atomic.Int64 // unix nanoseconds
}

func (l *liveSession) touch(now time.Time) {
	l.lastActive.Store(now.UnixNano())
}

func (l *liveSession) idleSince(cutoff time.Time) bool {
	return l.lastActive.Load() < cutoff.UnixNano()
}

// workoutService implements the WorkoutService interface.
type workoutService struct {
	workoutLogRepo repository.WorkoutLogRepository
	settings       SessionSettings
	extraOpts      []session.Option
	now            func() time.Time

	mu       sync.RWMutex
	sessions map[string]*liveSession

	stop         chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// NewWorkoutService creates a new instance of workoutService. extraOpts are
// appended to the options of every session it creates.
// When settings.IdleTimeout is set, a background reaper runs until Shutdown.
func NewWorkoutService(workoutLogRepo repository.WorkoutLogRepository, settings SessionSettings, extraOpts ...session.Option) WorkoutService {
	s := &workoutService{
		workoutLogRepo: workoutLogRepo,
		settings:       settings,
		extraOpts:      extraOpts,
		now:            func() time.Time { return time.Now().UTC() },
		sessions:       make(map[string]*liveSession),
		stop:           make(chan struct{}),
	}
	if settings.IdleTimeout > 0 {
		s.wg.Add(1)
		go s.reapLoop(settings.IdleTimeout / 2)
	}
	return s
}

func (s *workoutService) reapLoop(every time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.ReapIdle(s.now())
		}
	}
}

// logNotifier surfaces validation messages in the service log.
type logNotifier struct {
	entry *log.Entry
}

func (n logNotifier) Notify(message string) {
	n.entry.Info(message)
}

// StartSession opens an empty session owned by athleteID.
func (s *workoutService) StartSession(ctx context.Context, athleteID string) (string, session.State, error) {
	if athleteID == "" {
		return "", session.State{}, errors.New("athlete ID is required")
	}
	id := uuid.NewString()
	entry := log.WithFields(log.Fields{"session": id, "athlete": athleteID})

	opts := []session.Option{
		session.WithDefaultRest(s.settings.DefaultRestSeconds),
		session.WithTickInterval(s.settings.TickInterval),
		session.WithNotifier(logNotifier{entry: entry}),
	}

	s.mu.Lock()
	if limit := s.settings.MaxPerAthlete; limit > 0 && s.countLocked(athleteID) >= limit {
		s.mu.Unlock()
		entry.Warn("open session limit reached")
		return "", session.State{}, ErrTooManySessions
	}
	sess := session.New(append(opts, s.extraOpts...)...)
	live := &liveSession{athleteID: athleteID, session: sess}
	live.touch(s.now())
	s.sessions[id] = live
	s.mu.Unlock()

	metrics.SessionOpened()
	entry.Debug("workout session started")
	return id, sess.State(), nil
}

func (s *workoutService) countLocked(athleteID string) int {
	n := 0
	for _, l := range s.sessions {
		if l.athleteID == athleteID {
			n++
		}
	}
	return n
}

// lookup returns the session if it exists and belongs to athleteID, and marks
// it active. Sessions of other athletes are reported as not found.
func (s *workoutService) lookup(athleteID, sessionID string) (*session.Session, error) {
	s.mu.RLock()
	live, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || live.athleteID != athleteID {
		return nil, ErrSessionNotFound
	}
	live.touch(s.now())
	return live.session, nil
}

// apply runs fn against the athlete's session and returns the resulting state.
func (s *workoutService) apply(athleteID, sessionID string, fn func(*session.Session) error) (session.State, error) {
	sess, err := s.lookup(athleteID, sessionID)
	if err != nil {
		return session.State{}, err
	}
	if err := fn(sess); err != nil {
		return sess.State(), err
	}
	return sess.State(), nil
}

// notApplied explains why an engine call addressed nothing: the session was
// closed underneath the caller, or the index was out of range.
func notApplied(sess *session.Session) error {
	if sess.Closed() {
		return ErrSessionNotFound
	}
	return ErrOutOfRange
}

func (s *workoutService) GetState(ctx context.Context, athleteID, sessionID string) (session.State, error) {
	return s.apply(athleteID, sessionID, func(*session.Session) error { return nil })
}

// DiscardSession drops a session without saving it.
func (s *workoutService) DiscardSession(ctx context.Context, athleteID, sessionID string) error {
	sess, err := s.lookup(athleteID, sessionID)
	if err != nil {
		return err
	}
	s.remove(sessionID, sess)
	log.WithFields(log.Fields{"session": sessionID, "athlete": athleteID}).Debug("workout session discarded")
	return nil
}

func (s *workoutService) remove(sessionID string, sess *session.Session) {
	s.mu.Lock()
	live, ok := s.sessions[sessionID]
	owned := ok && live.session == sess
	if owned {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if owned {
		sess.Close()
		metrics.SessionClosed()
	}
}

func (s *workoutService) ToggleExercise(ctx context.Context, athleteID, sessionID, name string) (session.State, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return session.State{}, ErrInvalidExerciseName
	}
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		sess.ToggleExercise(name)
		return nil
	})
}

func (s *workoutService) AddSet(ctx context.Context, athleteID, sessionID string, exerciseIndex int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		if !sess.AddSet(exerciseIndex) {
			return notApplied(sess)
		}
		return nil
	})
}

func (s *workoutService) UpdateSetField(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int, field domain.SetField, value string) (session.State, error) {
	if !field.Valid() {
		return session.State{}, ErrInvalidField
	}
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		if !sess.UpdateSetField(exerciseIndex, setIndex, field, value) {
			return notApplied(sess)
		}
		return nil
	})
}

// ToggleSetCompletion returns a *session.ValidationFailure when the set lacks
// weight or reps.
func (s *workoutService) ToggleSetCompletion(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		before := sess.TotalSetsCompleted()
		found, err := sess.ToggleSetCompletionChecked(exerciseIndex, setIndex)
		if !found {
			return notApplied(sess)
		}
		if err != nil {
			metrics.ValidationFailed()
			return err
		}
		if sess.TotalSetsCompleted() > before {
			metrics.SetCompleted()
		}
		return nil
	})
}

func (s *workoutService) RemoveSet(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		if !sess.RemoveSet(exerciseIndex, setIndex) {
			return notApplied(sess)
		}
		return nil
	})
}

func (s *workoutService) AttachVideo(ctx context.Context, athleteID, sessionID string, exerciseIndex, setIndex int, video domain.VideoRef) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		if !sess.AttachVideo(exerciseIndex, setIndex, video) {
			return notApplied(sess)
		}
		return nil
	})
}

func (s *workoutService) ToggleExpanded(ctx context.Context, athleteID, sessionID string, exerciseIndex int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		if !sess.ToggleExpanded(exerciseIndex) {
			return notApplied(sess)
		}
		return nil
	})
}

func (s *workoutService) SelectMode(ctx context.Context, athleteID, sessionID string, mode session.Mode, video domain.VideoRef) (session.Outcome, session.State, error) {
	if !mode.Valid() {
		return "", session.State{}, ErrInvalidMode
	}
	var outcome session.Outcome
	state, err := s.apply(athleteID, sessionID, func(sess *session.Session) error {
		outcome = sess.SelectMode(mode, video)
		return nil
	})
	return outcome, state, err
}

func (s *workoutService) ToggleTimer(ctx context.Context, athleteID, sessionID string) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		sess.ToggleTimer()
		return nil
	})
}

func (s *workoutService) StartRest(ctx context.Context, athleteID, sessionID string) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		sess.StartRest()
		return nil
	})
}

func (s *workoutService) StopRest(ctx context.Context, athleteID, sessionID string) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		sess.StopRest()
		return nil
	})
}

func (s *workoutService) AdjustRest(ctx context.Context, athleteID, sessionID string, delta int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		sess.AdjustRest(delta)
		return nil
	})
}

func (s *workoutService) SetDefaultRest(ctx context.Context, athleteID, sessionID string, seconds int) (session.State, error) {
	return s.apply(athleteID, sessionID, func(sess *session.Session) error {
		return sess.SetDefaultRest(seconds)
	})
}

// EndWorkout saves a snapshot of the session and, only once the save has
// succeeded, discards the session. On failure the session is kept so the
// athlete can retry.
func (s *workoutService) EndWorkout(ctx context.Context, athleteID, sessionID string) (*domain.WorkoutLog, error) {
	sess, err := s.lookup(athleteID, sessionID)
	if err != nil {
		return nil, err
	}
	entry := log.WithFields(log.Fields{"session": sessionID, "athlete": athleteID})

	state := sess.State()
	workoutLog := &domain.WorkoutLog{
		SessionID:          sessionID,
		AthleteID:          athleteID,
		Exercises:          state.Exercises,
		ElapsedSeconds:     state.Timers.ElapsedSeconds,
		TotalSetsCompleted: state.TotalSetsCompleted,
		StartedAt:          state.StartedAt,
		EndedAt:            s.now(),
	}

	id, err := s.workoutLogRepo.Create(ctx, workoutLog)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		// An earlier attempt was stored even though it reported failure.
		entry.Warn("workout already saved, discarding session")
	case err != nil:
		metrics.WorkoutSaved(false)
		entry.WithError(err).Error("failed to save workout")
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
	default:
		workoutLog.ID = id
	}

	metrics.WorkoutSaved(true)
	s.remove(sessionID, sess)
	entry.WithField("sets_completed", workoutLog.TotalSetsCompleted).Info("workout saved")
	return workoutLog, nil
}

func (s *workoutService) ListWorkouts(ctx context.Context, athleteID string, limit int64) ([]domain.WorkoutLog, error) {
	if athleteID == "" {
		return nil, errors.New("athlete ID is required")
	}
	return s.workoutLogRepo.ListByAthlete(ctx, athleteID, limit)
}

func (s *workoutService) ReapIdle(now time.Time) int {
	if s.settings.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-s.settings.IdleTimeout)

	s.mu.Lock()
	var idle []*session.Session
	for id, l := range s.sessions {
		if l.idleSince(cutoff) {
			idle = append(idle, l.session)
			delete(s.sessions, id)
			log.WithFields(log.Fields{"session": id, "athlete": l.athleteID}).Info("closing idle workout session")
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
		metrics.SessionClosed()
	}
	return len(idle)
}

func (s *workoutService) Shutdown() {
	s.shutdownOnce.Do(func() { close(s.stop) })
	s.wg.Wait()

	s.mu.Lock()
	live := s.sessions
	s.sessions = make(map[string]*liveSession)
	s.mu.Unlock()

	for _, l := range live {
		l.session.Close()
		metrics.SessionClosed()
	}
	if len(live) > 0 {
		log.Infof("closed %d live workout sessions", len(live))
	}
}
