package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ExerciseListKeyPrefix = "exercises:%s"
	WorkoutKeyPrefix      = "workout:%d"
)

const (
	// ExerciseListTTL is short because user-scoped exercises can appear
	// from the catalog collaborator at any time.
	ExerciseListTTL = 5 * time.Minute
	WorkoutTTL      = 30 * time.Minute
)

// ExerciseListKey returns the cache key of the catalog listing visible to
// the given username ("public" for anonymous readers).
func ExerciseListKey(username string) string {
	return fmt.Sprintf(ExerciseListKeyPrefix, username)
}

func WorkoutKey(workoutID uint) string {
	return fmt.Sprintf(WorkoutKeyPrefix, workoutID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateWorkout(ctx context.Context, workoutID uint) {
	Invalidate(ctx, WorkoutKey(workoutID))
}
