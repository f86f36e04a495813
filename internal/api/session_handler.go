package api

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/service"
	"alcyxob/liftlog/internal/session"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SessionHandler exposes live workout sessions.
type SessionHandler struct {
	workoutService service.WorkoutService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(workoutService service.WorkoutService) *SessionHandler {
	return &SessionHandler{workoutService: workoutService}
}

// --- DTOs ---

type ToggleExerciseRequest struct {
	Name string `json:"name" binding:"required"`
}

type UpdateSetFieldRequest struct {
	Field domain.SetField `json:"field" binding:"required"`
	Value string          `json:"value"`
}

type AdjustRestRequest struct {
	Delta int `json:"delta"`
}

type SetDefaultRestRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

// SelectModeRequest picks the logging mode. Clips are attached through the
// video confirm endpoint, never here.
type SelectModeRequest struct {
	Mode session.Mode `json:"mode" binding:"required"`
}

// SessionResponse carries the session state after a call.
type SessionResponse struct {
	ID    string        `json:"id"`
	State session.State `json:"state"`
}

type SelectModeResponse struct {
	Outcome session.Outcome `json:"outcome"`
	State   session.State   `json:"state"`
}

// ValidationErrorResponse is returned with 422 when a set cannot be completed.
type ValidationErrorResponse struct {
	Error         string        `json:"error"`
	ExerciseIndex int           `json:"exerciseIndex"`
	SetIndex      int           `json:"setIndex"`
	State         session.State `json:"state"`
}

// WorkoutLogResponse is the DTO for a saved workout.
type WorkoutLogResponse struct {
	ID                 string            `json:"id,omitempty"`
	SessionID          string            `json:"sessionId"`
	Exercises          []domain.Exercise `json:"exercises"`
	ElapsedSeconds     int               `json:"elapsedSeconds"`
	TotalSetsCompleted int               `json:"totalSetsCompleted"`
	StartedAt          time.Time         `json:"startedAt"`
	EndedAt            time.Time         `json:"endedAt"`
}

// MapWorkoutLogToResponse converts a domain.WorkoutLog to its DTO.
func MapWorkoutLogToResponse(w *domain.WorkoutLog) WorkoutLogResponse {
	if w == nil {
		return WorkoutLogResponse{}
	}
	resp := WorkoutLogResponse{
		SessionID:          w.SessionID,
		Exercises:          w.Exercises,
		ElapsedSeconds:     w.ElapsedSeconds,
		TotalSetsCompleted: w.TotalSetsCompleted,
		StartedAt:          w.StartedAt,
		EndedAt:            w.EndedAt,
	}
	if !w.ID.IsZero() {
		resp.ID = w.ID.Hex()
	}
	if resp.Exercises == nil {
		resp.Exercises = []domain.Exercise{}
	}
	return resp
}

// MapWorkoutLogsToResponse converts a slice of domain.WorkoutLog to DTOs.
func MapWorkoutLogsToResponse(logs []domain.WorkoutLog) []WorkoutLogResponse {
	responses := make([]WorkoutLogResponse, len(logs))
	for i := range logs {
		responses[i] = MapWorkoutLogToResponse(&logs[i])
	}
	return responses
}

// --- Helpers ---

// respondSessionError maps service errors onto HTTP responses.
func respondSessionError(c *gin.Context, err error, state session.State) {
	var vf *session.ValidationFailure
	switch {
	case errors.As(err, &vf):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:         vf.Message,
			ExerciseIndex: vf.ExerciseIndex,
			SetIndex:      vf.SetIndex,
			State:         state,
		})
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrOutOfRange):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidExerciseName),
		errors.Is(err, service.ErrInvalidField),
		errors.Is(err, service.ErrInvalidMode),
		errors.Is(err, session.ErrInvalidRestDuration):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTooManySessions):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrPersistenceFailed):
		abortWithError(c, http.StatusBadGateway, service.ErrPersistenceFailed.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("session request failed")
		abortWithError(c, http.StatusInternalServerError, "Session operation failed.")
	}
}

// sessionRequest resolves the athlete and session ID of a request.
func sessionRequest(c *gin.Context) (athleteID, sessionID string, ok bool) {
	athleteID, err := getAthleteIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify athlete from token.")
		return "", "", false
	}
	return athleteID, c.Param("sessionId"), true
}

func indexParam(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil || idx < 0 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+".")
		return 0, false
	}
	return idx, true
}

// stateCall runs fn for the request's session and writes the resulting state.
func (h *SessionHandler) stateCall(c *gin.Context, fn func(athleteID, sessionID string) (session.State, error)) {
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	state, err := fn(athleteID, sessionID)
	if err != nil {
		respondSessionError(c, err, state)
		return
	}
	c.JSON(http.StatusOK, SessionResponse{ID: sessionID, State: state})
}

// --- Handler Methods ---

// StartSession godoc
// @Summary Open a new workout session
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} SessionResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	athleteID, err := getAthleteIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify athlete from token.")
		return
	}
	id, state, err := h.workoutService.StartSession(c.Request.Context(), athleteID)
	if err != nil {
		respondSessionError(c, err, state)
		return
	}
	c.JSON(http.StatusCreated, SessionResponse{ID: id, State: state})
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.GetState(c.Request.Context(), athleteID, sessionID)
	})
}

// DiscardSession drops the session without saving it.
func (h *SessionHandler) DiscardSession(c *gin.Context) {
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	if err := h.workoutService.DiscardSession(c.Request.Context(), athleteID, sessionID); err != nil {
		respondSessionError(c, err, session.State{})
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleExercise godoc
// @Summary Select or deselect an exercise by name
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param body body ToggleExerciseRequest true "Exercise name"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Session not found"
// @Router /sessions/{sessionId}/exercises/toggle [post]
func (h *SessionHandler) ToggleExercise(c *gin.Context) {
	var req ToggleExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.ToggleExercise(c.Request.Context(), athleteID, sessionID, req.Name)
	})
}

func (h *SessionHandler) AddSet(c *gin.Context) {
	ex, ok := indexParam(c, "exerciseIndex")
	if !ok {
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.AddSet(c.Request.Context(), athleteID, sessionID, ex)
	})
}

// UpdateSetField godoc
// @Summary Set one of weight, reps, rpe or tut on a set
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateSetFieldRequest true "Field and raw value"
// @Success 200 {object} SessionResponse
// @Failure 400 {object} gin.H "Unknown field"
// @Failure 404 {object} gin.H "Session, exercise or set not found"
// @Router /sessions/{sessionId}/exercises/{exerciseIndex}/sets/{setIndex} [patch]
func (h *SessionHandler) UpdateSetField(c *gin.Context) {
	ex, ok := indexParam(c, "exerciseIndex")
	if !ok {
		return
	}
	set, ok := indexParam(c, "setIndex")
	if !ok {
		return
	}
	var req UpdateSetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.UpdateSetField(c.Request.Context(), athleteID, sessionID, ex, set, req.Field, req.Value)
	})
}

// ToggleSetCompletion godoc
// @Summary Complete or un-complete a set
// @Description Completing requires non-blank weight and reps.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 404 {object} gin.H "Session, exercise or set not found"
// @Failure 422 {object} ValidationErrorResponse "Weight or reps missing"
// @Router /sessions/{sessionId}/exercises/{exerciseIndex}/sets/{setIndex}/complete [post]
func (h *SessionHandler) ToggleSetCompletion(c *gin.Context) {
	ex, ok := indexParam(c, "exerciseIndex")
	if !ok {
		return
	}
	set, ok := indexParam(c, "setIndex")
	if !ok {
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.ToggleSetCompletion(c.Request.Context(), athleteID, sessionID, ex, set)
	})
}

func (h *SessionHandler) RemoveSet(c *gin.Context) {
	ex, ok := indexParam(c, "exerciseIndex")
	if !ok {
		return
	}
	set, ok := indexParam(c, "setIndex")
	if !ok {
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.RemoveSet(c.Request.Context(), athleteID, sessionID, ex, set)
	})
}

func (h *SessionHandler) ToggleExpanded(c *gin.Context) {
	ex, ok := indexParam(c, "exerciseIndex")
	if !ok {
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.ToggleExpanded(c.Request.Context(), athleteID, sessionID, ex)
	})
}

func (h *SessionHandler) ToggleTimer(c *gin.Context) {
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.ToggleTimer(c.Request.Context(), athleteID, sessionID)
	})
}

func (h *SessionHandler) StartRest(c *gin.Context) {
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.StartRest(c.Request.Context(), athleteID, sessionID)
	})
}

func (h *SessionHandler) StopRest(c *gin.Context) {
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.StopRest(c.Request.Context(), athleteID, sessionID)
	})
}

// AdjustRest shifts a running rest countdown by delta seconds.
func (h *SessionHandler) AdjustRest(c *gin.Context) {
	var req AdjustRestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.AdjustRest(c.Request.Context(), athleteID, sessionID, req.Delta)
	})
}

func (h *SessionHandler) SetDefaultRest(c *gin.Context) {
	var req SetDefaultRestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.stateCall(c, func(athleteID, sessionID string) (session.State, error) {
		return h.workoutService.SetDefaultRest(c.Request.Context(), athleteID, sessionID, req.Seconds)
	})
}

// SelectMode godoc
// @Summary Pick manual or video logging
// @Description Manual logging drops any clip waiting for an exercise. Video clips are attached
// @Description through POST /videos/confirm, which checks the upload first.
// @Tags Sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SelectModeRequest true "Mode"
// @Success 200 {object} SelectModeResponse
// @Router /sessions/{sessionId}/mode [post]
func (h *SessionHandler) SelectMode(c *gin.Context) {
	var req SelectModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	outcome, state, err := h.workoutService.SelectMode(c.Request.Context(), athleteID, sessionID, req.Mode, "")
	if err != nil {
		respondSessionError(c, err, state)
		return
	}
	c.JSON(http.StatusOK, SelectModeResponse{Outcome: outcome, State: state})
}

// EndWorkout godoc
// @Summary Save the workout and close the session
// @Description On a storage failure the session stays open so the call can be retried.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Success 201 {object} WorkoutLogResponse
// @Failure 404 {object} gin.H "Session not found"
// @Failure 502 {object} gin.H "Workout could not be saved"
// @Router /sessions/{sessionId}/end [post]
func (h *SessionHandler) EndWorkout(c *gin.Context) {
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	saved, err := h.workoutService.EndWorkout(c.Request.Context(), athleteID, sessionID)
	if err != nil {
		respondSessionError(c, err, session.State{})
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutLogToResponse(saved))
}

// ListWorkouts returns the athlete's saved workouts, newest first.
func (h *SessionHandler) ListWorkouts(c *gin.Context) {
	athleteID, err := getAthleteIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify athlete from token.")
		return
	}
	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit.")
			return
		}
		limit = n
	}

	logs, err := h.workoutService.ListWorkouts(c.Request.Context(), athleteID, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutLogsToResponse(logs))
}
