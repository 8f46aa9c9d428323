// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"
	"time"

	"przone/internal/cache"
	"przone/internal/models"
	"przone/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WorkoutRepository defines the interface for workout data operations
type WorkoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	GetByID(ctx context.Context, id uint) (*models.Workout, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error)
	Delete(ctx context.Context, id uint) error
	TrainingDates(ctx context.Context, userID uint) ([]time.Time, error)
	MostUsed(ctx context.Context, userID uint, limit int) ([]models.ExerciseUsage, error)
	Progress(ctx context.Context, exerciseID uint) ([]models.ProgressPoint, error)
}

// workoutRepository implements WorkoutRepository
type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a new workout repository
func NewWorkoutRepository(db *gorm.DB) WorkoutRepository {
	return &workoutRepository{db: db}
}

// Create inserts the workout row and every performed-exercise child in a
// single transaction. The children are written in slice order so their
// auto-assigned IDs preserve the submitted ordering. Any failure rolls
// the whole batch back; a workout is never observable without its children.
func (r *workoutRepository) Create(ctx context.Context, workout *models.Workout) error {
	defer observability.TrackQuery("create", "workouts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := workout.Exercises
		workout.Exercises = nil

		if err := tx.Omit(clause.Associations).Create(workout).Error; err != nil {
			workout.Exercises = entries
			return err
		}

		for i := range entries {
			entries[i].WorkoutID = workout.ID
			if err := tx.Omit(clause.Associations).Create(&entries[i]).Error; err != nil {
				workout.Exercises = entries
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}

		workout.Exercises = entries
		return nil
	})
	if err != nil {
		observability.TransactionRollbacks.WithLabelValues("create").Inc()
		return err
	}

	observability.WorkoutsWritten.Inc()
	return nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id uint) (*models.Workout, error) {
	defer observability.TrackQuery("get", "workouts")()

	var workout models.Workout
	err := cache.Aside(ctx, cache.WorkoutKey(id), &workout, cache.WorkoutTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Exercises", func(db *gorm.DB) *gorm.DB {
				return db.Order("performed_exercises.id ASC")
			}).
			Preload("Exercises.Exercise").
			First(&workout, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *workoutRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Workout, error) {
	defer observability.TrackQuery("list", "workouts")()

	var workouts []*models.Workout
	err := r.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("performed_exercises.id ASC")
		}).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

// Delete removes the workout and its performed-exercise children in one
// transaction, children first. A missing workout surfaces as
// gorm.ErrRecordNotFound so repeated deletes of the same ID stay safe.
func (r *workoutRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "workouts")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&models.PerformedExercise{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Workout{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			observability.TransactionRollbacks.WithLabelValues("delete").Inc()
		}
		return err
	}

	cache.InvalidateWorkout(ctx, id)
	observability.WorkoutsDeleted.Inc()
	return nil
}

// TrainingDates returns the user's distinct workout dates, newest first.
func (r *workoutRepository) TrainingDates(ctx context.Context, userID uint) ([]time.Time, error) {
	defer observability.TrackQuery("training_dates", "workouts")()

	var dates []time.Time
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Workout{}).
		Distinct("date").
		Where("user_id = ?", userID).
		Order("date DESC").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// MostUsed returns the user's most frequently logged exercises by
// performed-exercise count, descending, capped at limit.
func (r *workoutRepository) MostUsed(ctx context.Context, userID uint, limit int) ([]models.ExerciseUsage, error) {
	defer observability.TrackQuery("most_used", "performed_exercises")()

	var usage []models.ExerciseUsage
	err := readDB(r.db).WithContext(ctx).
		Model(&models.PerformedExercise{}).
		Select("exercises.name as exercise_name, COUNT(*) as count").
		Joins("JOIN workouts ON workouts.id = performed_exercises.workout_id").
		Joins("JOIN exercises ON exercises.id = performed_exercises.exercise_id").
		Where("workouts.user_id = ?", userID).
		Group("exercises.name").
		Order("count DESC, exercise_name ASC").
		Limit(limit).
		Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	return usage, nil
}

// Progress returns every logged estimate for the exercise across all
// users, paired with the workout date and ordered oldest first.
func (r *workoutRepository) Progress(ctx context.Context, exerciseID uint) ([]models.ProgressPoint, error) {
	defer observability.TrackQuery("progress", "performed_exercises")()

	var points []models.ProgressPoint
	err := readDB(r.db).WithContext(ctx).
		Model(&models.PerformedExercise{}).
		Select("workouts.date as date, performed_exercises.estimated_one_rep_max as estimated_one_rep_max").
		Joins("JOIN workouts ON workouts.id = performed_exercises.workout_id").
		Where("performed_exercises.exercise_id = ?", exerciseID).
		Order("workouts.date ASC, performed_exercises.id ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}
