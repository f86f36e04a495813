package service

import (
	"alcyxob/liftlog/internal/domain"
	"alcyxob/liftlog/internal/repository"
	"context"
	"errors"
	"strings"
)

// --- Error Definitions ---
var (
	ErrExerciseExists   = errors.New("exercise already exists in the catalog")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// ExerciseService manages the catalog the exercise picker shows.
type ExerciseService interface {
	CreateExercise(ctx context.Context, name, muscleGroup, equipment string) (*domain.CatalogExercise, error)
	ListExercises(ctx context.Context) ([]domain.CatalogExercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	catalogRepo repository.ExerciseCatalogRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(catalogRepo repository.ExerciseCatalogRepository) ExerciseService {
	return &exerciseService{catalogRepo: catalogRepo}
}

// CreateExercise adds an exercise to the catalog. Names are unique.
func (s *exerciseService) CreateExercise(ctx context.Context, name, muscleGroup, equipment string) (*domain.CatalogExercise, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.CatalogExercise{
		Name:        name,
		MuscleGroup: strings.TrimSpace(muscleGroup),
		Equipment:   strings.TrimSpace(equipment),
	}
	id, err := s.catalogRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrExerciseExists
		}
		return nil, err
	}
	exercise.ID = id
	return exercise, nil
}

// ListExercises returns the whole catalog sorted by name.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.CatalogExercise, error) {
	return s.catalogRepo.List(ctx)
}
