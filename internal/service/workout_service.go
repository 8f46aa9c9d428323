// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"przone/internal/models"
	"przone/internal/observability"
	"przone/internal/repository"
	"przone/internal/strength"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// WorkoutService coordinates workout writes, reads and deletes.
type WorkoutService struct {
	workoutRepo repository.WorkoutRepository
}

// PerformedExerciseInput is one exercise entry in a workout submission.
type PerformedExerciseInput struct {
	ExerciseID uint    `json:"exercise_id"`
	Weight     float64 `json:"weight"`
	Sets       int     `json:"sets"`
	Reps       int     `json:"reps"`
	Notes      string  `json:"notes"`
}

// CreateWorkoutInput is a complete workout submission. ExerciseCount is
// optional; when absent it defaults to the number of entries.
type CreateWorkoutInput struct {
	UserID        uint
	Name          string
	Date          time.Time
	Rating        int
	Comment       string
	ExerciseCount *int
	Exercises     []PerformedExerciseInput
}

// ListWorkoutsInput pages a user's workout history.
type ListWorkoutsInput struct {
	UserID uint
	Limit  int
	Offset int
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository) *WorkoutService {
	return &WorkoutService{workoutRepo: workoutRepo}
}

// CreateWorkout validates the submission, derives each entry's estimated
// one-rep max and persists everything in one transaction. Validation
// rejects the whole submission before any row is written; the error for
// a bad entry names the first offending index.
func (s *WorkoutService) CreateWorkout(ctx context.Context, in CreateWorkoutInput) (*models.Workout, error) {
	span, ctx := observability.NewSpan(ctx, "WorkoutService.CreateWorkout")
	defer span.End()
	span.AddAttributes(
		attribute.Int("workout.user_id", int(in.UserID)),
		attribute.Int("workout.entries", len(in.Exercises)),
	)

	if in.UserID == 0 {
		return nil, models.NewValidationError("User is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Workout name is required")
	}
	if in.Date.IsZero() {
		return nil, models.NewValidationError("Workout date is required")
	}
	if in.Rating < 0 || in.Rating > 5 {
		return nil, models.NewValidationError("Workout rating must be between 0 and 5")
	}
	if len(in.Exercises) == 0 {
		return nil, models.NewValidationError("At least one exercise entry is required")
	}
	for i, entry := range in.Exercises {
		if entry.ExerciseID == 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Exercise entry %d is missing an exercise", i))
		}
		if entry.Weight < 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Exercise entry %d has a negative weight", i))
		}
		if entry.Reps < 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Exercise entry %d has a negative rep count", i))
		}
		if entry.Sets < 0 {
			return nil, models.NewValidationError(fmt.Sprintf("Exercise entry %d has a negative set count", i))
		}
	}

	count := len(in.Exercises)
	if in.ExerciseCount != nil {
		count = *in.ExerciseCount
	}

	workout := &models.Workout{
		UserID:        in.UserID,
		Name:          in.Name,
		Date:          in.Date.UTC(),
		Rating:        in.Rating,
		ExerciseCount: count,
		Comment:       in.Comment,
		Exercises:     make([]models.PerformedExercise, 0, len(in.Exercises)),
	}
	for _, entry := range in.Exercises {
		workout.Exercises = append(workout.Exercises, models.PerformedExercise{
			ExerciseID:         entry.ExerciseID,
			Weight:             entry.Weight,
			Sets:               entry.Sets,
			Reps:               entry.Reps,
			EstimatedOneRepMax: strength.Estimate(entry.Weight, entry.Reps),
			Notes:              entry.Notes,
		})
	}

	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		span.SetError(err)
		return nil, models.NewPersistenceError(fmt.Sprintf("create workout %q", in.Name), err)
	}
	return workout, nil
}

// GetWorkout fetches one workout with its entries. Ownership is
// enforced here rather than in the query so a foreign ID still reads
// as not found.
func (s *WorkoutService) GetWorkout(ctx context.Context, userID, workoutID uint) (*models.Workout, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Workout", workoutID)
		}
		return nil, models.NewPersistenceError("get workout", err)
	}
	if workout.UserID != userID {
		return nil, models.NewNotFoundError("Workout", workoutID)
	}
	return workout, nil
}

// ListWorkouts returns a page of the user's workouts, newest first.
func (s *WorkoutService) ListWorkouts(ctx context.Context, in ListWorkoutsInput) ([]*models.Workout, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("User is required")
	}
	workouts, err := s.workoutRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
	if err != nil {
		return nil, models.NewPersistenceError("list workouts", err)
	}
	return workouts, nil
}

// DeleteWorkout removes a workout and its entries. Deleting an ID that
// does not exist, or was already deleted, returns NotFound without side
// effects, so repeated deletes are safe.
func (s *WorkoutService) DeleteWorkout(ctx context.Context, userID, workoutID uint) error {
	span, ctx := observability.NewSpan(ctx, "WorkoutService.DeleteWorkout")
	defer span.End()
	span.AddAttributes(attribute.Int("workout.id", int(workoutID)))

	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Workout", workoutID)
		}
		return models.NewPersistenceError("delete workout", err)
	}
	if workout.UserID != userID {
		return models.NewNotFoundError("Workout", workoutID)
	}

	if err := s.workoutRepo.Delete(ctx, workoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Workout", workoutID)
		}
		span.SetError(err)
		return models.NewPersistenceError("delete workout", err)
	}
	return nil
}
