package api

import (
	"alcyxob/liftlog/internal/service"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// VideoHandler serves set video uploads for live sessions.
type VideoHandler struct {
	videoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// --- DTOs ---

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

// ConfirmUploadRequest reports a finished upload. ExerciseIndex and SetIndex
// are given together to attach the clip to an existing set.
type ConfirmUploadRequest struct {
	ObjectKey     string `json:"objectKey" binding:"required"`
	FileName      string `json:"fileName" binding:"required"`
	FileSize      int64  `json:"fileSize" binding:"required,min=1"`
	ContentType   string `json:"contentType" binding:"required"`
	ExerciseIndex *int   `json:"exerciseIndex" binding:"omitempty,min=0"`
	SetIndex      *int   `json:"setIndex" binding:"omitempty,min=0"`
}

type VideoUploadResponse struct {
	ID          string    `json:"id"`
	ObjectKey   string    `json:"objectKey"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type ConfirmUploadResponse struct {
	Upload  VideoUploadResponse `json:"upload"`
	Outcome string              `json:"outcome,omitempty"`
	SessionResponse
}

func respondVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidVideoType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVideoKeyMismatch):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrVideoNotUploaded):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrVideoAlreadyConfirmed):
		abortWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrVideoNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrOutOfRange):
		abortWithError(c, http.StatusNotFound, err.Error())
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("video request failed")
		abortWithError(c, http.StatusInternalServerError, "Video operation failed.")
	}
}

// RequestUploadURL godoc
// @Summary Request a pre-signed URL to upload a set video
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Param uploadRequest body RequestUploadURLRequest true "Upload content type"
// @Success 200 {object} service.UploadURLResponse "Pre-signed URL and object key"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Session not found"
// @Router /sessions/{sessionId}/videos/upload-url [post]
func (h *VideoHandler) RequestUploadURL(c *gin.Context) {
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.videoService.RequestUploadURL(c.Request.Context(), athleteID, sessionID, req.ContentType)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmUpload godoc
// @Summary Confirm a set video upload
// @Description Records the upload and either attaches it to the given set or logs it as a video set.
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param confirmRequest body ConfirmUploadRequest true "Upload confirmation details"
// @Success 200 {object} ConfirmUploadResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Object key belongs to another session"
// @Failure 404 {object} gin.H "Session or set not found"
// @Failure 409 {object} gin.H "Not uploaded yet or already confirmed"
// @Router /sessions/{sessionId}/videos [post]
func (h *VideoHandler) ConfirmUpload(c *gin.Context) {
	athleteID, sessionID, ok := sessionRequest(c)
	if !ok {
		return
	}
	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if (req.ExerciseIndex == nil) != (req.SetIndex == nil) {
		abortWithError(c, http.StatusBadRequest, "exerciseIndex and setIndex must be given together")
		return
	}

	in := service.ConfirmVideoInput{
		ObjectKey:   req.ObjectKey,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Size:        req.FileSize,
	}
	if req.ExerciseIndex != nil {
		in.Target = &service.SetTarget{ExerciseIndex: *req.ExerciseIndex, SetIndex: *req.SetIndex}
	}

	conf, err := h.videoService.ConfirmVideo(c.Request.Context(), athleteID, sessionID, in)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, ConfirmUploadResponse{
		Upload: VideoUploadResponse{
			ID:          conf.Upload.ID.Hex(),
			ObjectKey:   conf.Upload.ObjectKey,
			FileName:    conf.Upload.FileName,
			ContentType: conf.Upload.ContentType,
			Size:        conf.Upload.Size,
			UploadedAt:  conf.Upload.UploadedAt,
		},
		Outcome:         string(conf.Outcome),
		SessionResponse: SessionResponse{ID: sessionID, State: conf.State},
	})
}

// GetVideoDownloadURL returns a temporary URL for one of the athlete's videos.
func (h *VideoHandler) GetVideoDownloadURL(c *gin.Context) {
	athleteID, err := getAthleteIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify athlete from token.")
		return
	}
	objectKey := c.Query("key")
	if objectKey == "" {
		abortWithError(c, http.StatusBadRequest, "Query parameter 'key' is required.")
		return
	}

	url, err := h.videoService.DownloadURL(c.Request.Context(), athleteID, objectKey)
	if err != nil {
		respondVideoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
