package service

import (
	"context"
	"time"

	"przone/internal/models"
	"przone/internal/repository"
)

// mostUsedLimit caps the most-used-exercises ranking.
const mostUsedLimit = 3

// AnalyticsService derives training statistics from workout history.
// The clock is injectable so streak tests can pin "today".
type AnalyticsService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

func NewAnalyticsService(workoutRepo repository.WorkoutRepository) *AnalyticsService {
	return &AnalyticsService{
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// Streak counts the consecutive UTC calendar days, ending today, on
// which the user trained. No workout today means a streak of zero; a
// day with several workouts still counts once. Dates logged in the
// future stop the walk just like a gap does.
func (s *AnalyticsService) Streak(ctx context.Context, userID uint) (int, error) {
	if userID == 0 {
		return 0, models.NewValidationError("User is required")
	}

	dates, err := s.workoutRepo.TrainingDates(ctx, userID)
	if err != nil {
		return 0, models.NewPersistenceError("load training dates", err)
	}

	expected := truncateToDay(s.now().UTC())

	streak := 0
	var last time.Time
	for _, d := range dates {
		day := truncateToDay(d.UTC())
		if streak > 0 && day.Equal(last) {
			continue
		}
		if !day.Equal(expected) {
			break
		}
		streak++
		last = day
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// MostUsed returns the user's top exercises by how often they were
// logged, at most three.
func (s *AnalyticsService) MostUsed(ctx context.Context, userID uint) ([]models.ExerciseUsage, error) {
	if userID == 0 {
		return nil, models.NewValidationError("User is required")
	}

	usage, err := s.workoutRepo.MostUsed(ctx, userID, mostUsedLimit)
	if err != nil {
		return nil, models.NewPersistenceError("aggregate most-used exercises", err)
	}
	if usage == nil {
		usage = []models.ExerciseUsage{}
	}
	return usage, nil
}

// Progress returns the chronological estimated one-rep-max series for
// one exercise across all users.
func (s *AnalyticsService) Progress(ctx context.Context, exerciseID uint) ([]models.ProgressPoint, error) {
	if exerciseID == 0 {
		return nil, models.NewValidationError("Exercise is required")
	}

	points, err := s.workoutRepo.Progress(ctx, exerciseID)
	if err != nil {
		return nil, models.NewPersistenceError("load progress series", err)
	}
	if points == nil {
		points = []models.ProgressPoint{}
	}
	return points, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
