package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/metrics"
	"alcyxob/liftlog/internal/repository"
	"alcyxob/liftlog/internal/session"
	"alcyxob/liftlog/internal/storage"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrInvalidVideoType      = errors.New("invalid or missing video content type")
	ErrVideoNotUploaded      = errors.New("video has not been uploaded yet")
	ErrVideoKeyMismatch      = errors.New("object key does not belong to this session")
	ErrVideoAlreadyConfirmed = errors.New("video upload already confirmed")
	ErrVideoNotFound         = errors.New("video not found")
	ErrUploadURLError        = errors.New("failed to generate upload URL")
	ErrDownloadURLError      = errors.New("failed to generate download URL")
)

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the client reports back on confirm
}

// SetTarget addresses an existing set a confirmed video is attached to.
type SetTarget struct {
	ExerciseIndex int
	SetIndex      int
}

// ConfirmVideoInput describes an upload the client finished.
type ConfirmVideoInput struct {
	ObjectKey   string
	FileName    string
	ContentType string
	Size        int64
	// Target, when set, attaches the clip to an existing set. Otherwise the
	// clip goes through the video logging path.
	Target *SetTarget
}

// VideoConfirmation is the result of ConfirmVideo.
type VideoConfirmation struct {
	Upload  *domain.VideoUpload `json:"upload"`
	Outcome session.Outcome     `json:"outcome,omitempty"`
	State   session.State       `json:"state"`
}

// VideoService plays the media picker's role for remote clients: it hands
// out upload URLs and turns confirmed uploads into video references on sets.
type VideoService interface {
	RequestUploadURL(ctx context.Context, athleteID, sessionID, contentType string) (*UploadURLResponse, error)
	ConfirmVideo(ctx context.Context, athleteID, sessionID string, in ConfirmVideoInput) (*VideoConfirmation, error)
	DownloadURL(ctx context.Context, athleteID, objectKey string) (string, error)
}

// videoService implements the VideoService interface.
type videoService struct {
	workouts    WorkoutService
	uploadRepo  repository.VideoUploadRepository
	fileStorage storage.FileStorage
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(workouts WorkoutService, uploadRepo repository.VideoUploadRepository, fileStorage storage.FileStorage) VideoService {
	return &videoService{
		workouts:    workouts,
		uploadRepo:  uploadRepo,
		fileStorage: fileStorage,
	}
}

func isVideoType(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "video/")
}

func sessionKeyPrefix(athleteID, sessionID string) string {
	return path.Join("videos", athleteID, sessionID) + "/"
}

// RequestUploadURL generates a pre-signed URL for a set video of a live session.
func (s *videoService) RequestUploadURL(ctx context.Context, athleteID, sessionID, contentType string) (*UploadURLResponse, error) {
	if !isVideoType(contentType) {
		return nil, ErrInvalidVideoType
	}
	if _, err := s.workouts.GetState(ctx, athleteID, sessionID); err != nil {
		return nil, err
	}

	fileExtension := "bin"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		fileExtension = parts[1]
	}
	objectKey := sessionKeyPrefix(athleteID, sessionID) + fmt.Sprintf("%s.%s", uuid.NewString(), fileExtension)

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUploadURLError, err)
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmVideo records the upload and hands the clip to the session. It is
// called after the client has PUT the file using the pre-signed URL.
func (s *videoService) ConfirmVideo(ctx context.Context, athleteID, sessionID string, in ConfirmVideoInput) (*VideoConfirmation, error) {
	if !isVideoType(in.ContentType) {
		return nil, ErrInvalidVideoType
	}
	if !strings.HasPrefix(in.ObjectKey, sessionKeyPrefix(athleteID, sessionID)) {
		return nil, ErrVideoKeyMismatch
	}
	// Fail fast on a closed session or a bad target before touching storage.
	state, err := s.workouts.GetState(ctx, athleteID, sessionID)
	if err != nil {
		return nil, err
	}
	if t := in.Target; t != nil {
		if t.ExerciseIndex < 0 || t.ExerciseIndex >= len(state.Exercises) ||
			t.SetIndex < 0 || t.SetIndex >= len(state.Exercises[t.ExerciseIndex].Sets) {
			return nil, ErrOutOfRange
		}
	}

	exists, err := s.fileStorage.ObjectExists(ctx, in.ObjectKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrVideoNotUploaded
	}

	upload := &domain.VideoUpload{
		AthleteID:   athleteID,
		SessionID:   sessionID,
		ObjectKey:   in.ObjectKey,
		FileName:    in.FileName,
		ContentType: in.ContentType,
		Size:        in.Size,
	}
	id, err := s.uploadRepo.Create(ctx, upload)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrVideoAlreadyConfirmed
		}
		// Unrecorded objects are never referenced; the client uploads again.
		if delErr := s.fileStorage.DeleteObject(ctx, in.ObjectKey); delErr != nil {
			log.WithField("key", in.ObjectKey).WithError(delErr).Warn("failed to delete unrecorded video")
		}
		return nil, err
	}
	upload.ID = id
	metrics.VideoConfirmed()

	confirmation := &VideoConfirmation{Upload: upload}
	if t := in.Target; t != nil {
		confirmation.State, err = s.workouts.AttachVideo(ctx, athleteID, sessionID, t.ExerciseIndex, t.SetIndex, upload.Ref())
	} else {
		confirmation.Outcome, confirmation.State, err = s.workouts.SelectMode(ctx, athleteID, sessionID, session.ModeVideo, upload.Ref())
	}
	if err != nil {
		// The clip is stored and recorded; the session changed underneath us.
		log.WithFields(log.Fields{"session": sessionID, "key": in.ObjectKey}).WithError(err).Warn("confirmed video could not be applied")
		return nil, err
	}
	return confirmation, nil
}

// DownloadURL generates a temporary URL for the athlete to view their own video.
func (s *videoService) DownloadURL(ctx context.Context, athleteID, objectKey string) (string, error) {
	upload, err := s.uploadRepo.GetByObjectKey(ctx, objectKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrVideoNotFound
		}
		return "", err
	}
	if upload.AthleteID != athleteID {
		return "", ErrVideoNotFound
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, upload.ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownloadURLError, err)
	}
	return downloadURL, nil
}
