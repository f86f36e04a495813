// Package metrics exposes prometheus collectors for live workout sessions.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "liftlog"

var (
	sessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "active",
		Help:      "Live workout sessions currently held in memory.",
	})
	sessionsStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "started_total",
		Help:      "Workout sessions opened.",
	})
	setsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sets",
		Name:      "completed_total",
		Help:      "Sets marked as completed.",
	})
	validationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sets",
		Name:      "validation_failures_total",
		Help:      "Attempts to complete a set without weight or reps.",
	})
	workoutsSaved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "workouts",
		Name:      "saved_total",
		Help:      "End-workout save attempts by result.",
	}, []string{"result"})
	videosConfirmed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "videos",
		Name:      "confirmed_total",
		Help:      "Set videos confirmed after upload.",
	})
)

func init() {
	prometheus.MustRegister(sessionsActive, sessionsStarted, setsCompleted, validationFailures, workoutsSaved, videosConfirmed)
}

// SessionOpened records a new live session.
func SessionOpened() {
	sessionsStarted.Inc()
	sessionsActive.Inc()
}

// SessionClosed records a session leaving memory, saved or discarded.
func SessionClosed() {
	sessionsActive.Dec()
}

// SetCompleted records a set toggled to completed.
func SetCompleted() {
	setsCompleted.Inc()
}

// ValidationFailed records a rejected completion.
func ValidationFailed() {
	validationFailures.Inc()
}

// WorkoutSaved records an end-workout attempt.
func WorkoutSaved(ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	workoutsSaved.WithLabelValues(result).Inc()
}

// VideoConfirmed records a confirmed set video upload.
func VideoConfirmed() {
	videosConfirmed.Inc()
}
