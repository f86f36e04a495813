package api_test

import (
	"errors"
	"net/http"
	"testing"

	"alcyxob/liftlog/internal/api"
	"alcyxob/liftlog/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_LogCompleteAndEnd(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id

	w := ts.do(http.MethodPost, base+"/exercises/toggle", "athlete-1", jsonBody{"name": "Bench Press"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := decode[api.SessionResponse](t, w).State
	require.Len(t, state.Exercises, 1)
	assert.Equal(t, 1, state.ExerciseCount)

	w = ts.do(http.MethodPost, base+"/exercises/0/sets/0/complete", "athlete-1", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	failure := decode[api.ValidationErrorResponse](t, w)
	assert.Equal(t, "Please enter weight and reps before completing the set", failure.Error)
	assert.False(t, failure.State.Exercises[0].Sets[0].Completed)

	w = ts.do(http.MethodPatch, base+"/exercises/0/sets/0", "athlete-1", jsonBody{"field": "weight", "value": "100"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodPatch, base+"/exercises/0/sets/0", "athlete-1", jsonBody{"field": "reps", "value": "5"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodPost, base+"/exercises/0/sets/0/complete", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[api.SessionResponse](t, w).State.TotalSetsCompleted)

	w = ts.do(http.MethodPost, base+"/end", "athlete-1", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	saved := decode[api.WorkoutLogResponse](t, w)
	assert.Equal(t, id, saved.SessionID)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 1, saved.TotalSetsCompleted)

	w = ts.do(http.MethodGet, base, "athlete-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.do(http.MethodGet, "/api/v1/workouts", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]api.WorkoutLogResponse](t, w), 1)
}

func TestSessionHandler_EndFailureKeepsSession(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id
	ts.do(http.MethodPost, base+"/exercises/toggle", "athlete-1", jsonBody{"name": "Squat"})

	ts.workouts.failErr = errors.New("write concern timeout")
	w := ts.do(http.MethodPost, base+"/end", "athlete-1", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = ts.do(http.MethodGet, base, "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Squat", decode[api.SessionResponse](t, w).State.Exercises[0].Name)

	w = ts.do(http.MethodPost, base+"/end", "athlete-1", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSessionHandler_Errors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id
	ts.do(http.MethodPost, base+"/exercises/toggle", "athlete-1", jsonBody{"name": "Squat"})

	tests := []struct {
		name    string
		method  string
		path    string
		athlete string
		body    any
		want    int
	}{
		{"other athlete", http.MethodGet, base, "athlete-2", nil, http.StatusNotFound},
		{"unknown session", http.MethodGet, "/api/v1/sessions/nope", "athlete-1", nil, http.StatusNotFound},
		{"exercise out of range", http.MethodPost, base + "/exercises/3/sets", "athlete-1", nil, http.StatusNotFound},
		{"set out of range", http.MethodDelete, base + "/exercises/0/sets/4", "athlete-1", nil, http.StatusNotFound},
		{"bad index", http.MethodPost, base + "/exercises/x/expand", "athlete-1", nil, http.StatusBadRequest},
		{"unknown field", http.MethodPatch, base + "/exercises/0/sets/0", "athlete-1", jsonBody{"field": "completed", "value": "1"}, http.StatusBadRequest},
		{"blank name", http.MethodPost, base + "/exercises/toggle", "athlete-1", jsonBody{"name": "  "}, http.StatusBadRequest},
		{"missing name", http.MethodPost, base + "/exercises/toggle", "athlete-1", jsonBody{}, http.StatusBadRequest},
		{"negative default rest", http.MethodPut, base + "/rest/default", "athlete-1", jsonBody{"seconds": -5}, http.StatusBadRequest},
		{"unknown mode", http.MethodPost, base + "/mode", "athlete-1", jsonBody{"mode": "photo"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, tt.athlete, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := ts.do(http.MethodGet, base, "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[api.SessionResponse](t, w).State
	require.Len(t, state.Exercises, 1)
	assert.Len(t, state.Exercises[0].Sets, 1)
}

func TestSessionHandler_SetsAndExpanded(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id
	ts.do(http.MethodPost, base+"/exercises/toggle", "athlete-1", jsonBody{"name": "Row"})

	w := ts.do(http.MethodPost, base+"/exercises/0/sets", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[api.SessionResponse](t, w).State.Exercises[0].Sets, 2)

	w = ts.do(http.MethodDelete, base+"/exercises/0/sets/1", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[api.SessionResponse](t, w).State.Exercises[0].Sets, 1)

	w = ts.do(http.MethodPost, base+"/exercises/0/expand", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[api.SessionResponse](t, w).State.Expanded["Row"])

	w = ts.do(http.MethodDelete, base, "athlete-1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(http.MethodDelete, base, "athlete-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionHandler_Timers(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id

	w := ts.do(http.MethodPost, base+"/rest/start", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	timers := decode[api.SessionResponse](t, w).State.Timers
	assert.True(t, timers.Resting)
	assert.Equal(t, 90, timers.RestSeconds)

	w = ts.do(http.MethodPost, base+"/rest/adjust", "athlete-1", jsonBody{"delta": 15})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 105, decode[api.SessionResponse](t, w).State.Timers.RestSeconds)

	w = ts.do(http.MethodPut, base+"/rest/default", "athlete-1", jsonBody{"seconds": 120})
	require.Equal(t, http.StatusOK, w.Code)
	timers = decode[api.SessionResponse](t, w).State.Timers
	assert.Equal(t, 105, timers.RestSeconds)
	assert.Equal(t, 120, timers.DefaultRestSeconds)

	w = ts.do(http.MethodPost, base+"/rest/stop", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	timers = decode[api.SessionResponse](t, w).State.Timers
	assert.False(t, timers.Resting)
	assert.Equal(t, 120, timers.RestSeconds)

	w = ts.do(http.MethodPost, base+"/timer/toggle", "athlete-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[api.SessionResponse](t, w).State.Timers.ElapsedPaused)
}

func TestSessionHandler_SelectMode(t *testing.T) {
	ts := newTestServer(t)
	id := ts.startSession("athlete-1")
	base := "/api/v1/sessions/" + id

	w := ts.do(http.MethodPost, base+"/mode", "athlete-1", jsonBody{"mode": "manual"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.OutcomeOpenPicker, decode[api.SelectModeResponse](t, w).Outcome)

	w = ts.do(http.MethodPost, base+"/mode", "athlete-1", jsonBody{"mode": "video"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.OutcomeCancelled, decode[api.SelectModeResponse](t, w).Outcome)

	ts.do(http.MethodPost, base+"/exercises/toggle", "athlete-1", jsonBody{"name": "Squat"})
	w = ts.do(http.MethodPost, base+"/mode", "athlete-1", jsonBody{"mode": "video", "objectKey": "videos/athlete-2/stolen.mp4"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[api.SelectModeResponse](t, w)
	assert.Equal(t, session.OutcomeCancelled, resp.Outcome)
	require.Len(t, resp.State.Exercises[0].Sets, 1)
	assert.False(t, resp.State.Exercises[0].Sets[0].IsVideoSet)
	assert.Empty(t, resp.State.PendingVideo)
}

func TestSessionHandler_SessionLimit(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 3; i++ {
		ts.startSession("athlete-1")
	}

	w := ts.do(http.MethodPost, "/api/v1/sessions", "athlete-1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	ts.startSession("athlete-2")
}
