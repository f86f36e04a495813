package repository

import (
	"alcyxob/liftlog/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

//go:generate mockgen -source=$GOFILE -destination=../service/repository_mocks_test.go -package=service_test

// WorkoutLogRepository stores finished workouts.
type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutLog, error)
	ListByAthlete(ctx context.Context, athleteID string, limit int64) ([]domain.WorkoutLog, error) // Newest first
}

// VideoUploadRepository stores metadata about uploaded set videos.
type VideoUploadRepository interface {
	Create(ctx context.Context, upload *domain.VideoUpload) (primitive.ObjectID, error)
	GetByObjectKey(ctx context.Context, objectKey string) (*domain.VideoUpload, error)
	ListBySession(ctx context.Context, sessionID string) ([]domain.VideoUpload, error)
}

// ExerciseCatalogRepository backs the exercise picker.
type ExerciseCatalogRepository interface {
	Create(ctx context.Context, exercise *domain.CatalogExercise) (primitive.ObjectID, error)
	GetByName(ctx context.Context, name string) (*domain.CatalogExercise, error)
	List(ctx context.Context) ([]domain.CatalogExercise, error) // Sorted by name
}
