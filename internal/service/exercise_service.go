package service

import (
	"context"
	"errors"

	"przone/internal/models"
	"przone/internal/repository"

	"gorm.io/gorm"
)

// ExerciseService serves the exercise catalog.
type ExerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) *ExerciseService {
	return &ExerciseService{exerciseRepo: exerciseRepo}
}

// ListExercises returns the catalog visible to the given username: the
// public exercises plus the user's own. An empty username yields the
// public catalog only.
func (s *ExerciseService) ListExercises(ctx context.Context, username string) ([]*models.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx, username)
	if err != nil {
		return nil, models.NewPersistenceError("list exercises", err)
	}
	if exercises == nil {
		exercises = []*models.Exercise{}
	}
	return exercises, nil
}

// GetExercise fetches one catalog entry. Exercises scoped to another
// user read as not found.
func (s *ExerciseService) GetExercise(ctx context.Context, id uint, username string) (*models.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Exercise", id)
		}
		return nil, models.NewPersistenceError("get exercise", err)
	}
	if !exercise.Visible(username) {
		return nil, models.NewNotFoundError("Exercise", id)
	}
	return exercise, nil
}
