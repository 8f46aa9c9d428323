package repository

import (
	"context"
	"testing"
	"time"

	"przone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Muscle{},
		&models.Exercise{},
		&models.Workout{},
		&models.PerformedExercise{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func createTestExercises(t *testing.T, db *gorm.DB, names ...string) []models.Exercise {
	t.Helper()
	exercises := make([]models.Exercise, 0, len(names))
	for _, name := range names {
		e := models.Exercise{Name: name, Scope: models.ScopePublic}
		require.NoError(t, db.Create(&e).Error)
		exercises = append(exercises, e)
	}
	return exercises
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d.UTC()
}

func TestWorkoutRepository_Create_WritesParentAndChildren(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	exercises := createTestExercises(t, db, "Back Squat", "Bench Press", "Barbell Row")

	workout := &models.Workout{
		UserID:        1,
		Name:          "Push Day",
		Date:          day(t, "2026-08-30"),
		Rating:        4,
		ExerciseCount: 3,
		Exercises: []models.PerformedExercise{
			{ExerciseID: exercises[0].ID, Weight: 100, Sets: 3, Reps: 5, EstimatedOneRepMax: 116.65},
			{ExerciseID: exercises[1].ID, Weight: 80, Sets: 3, Reps: 8, EstimatedOneRepMax: 101.31},
			{ExerciseID: exercises[2].ID, Weight: 60, Sets: 4, Reps: 10, EstimatedOneRepMax: 79.98},
		},
	}

	require.NoError(t, repo.Create(ctx, workout))
	assert.NotZero(t, workout.ID)

	var parentCount, childCount int64
	require.NoError(t, db.Model(&models.Workout{}).Count(&parentCount).Error)
	require.NoError(t, db.Model(&models.PerformedExercise{}).Where("workout_id = ?", workout.ID).Count(&childCount).Error)
	assert.Equal(t, int64(1), parentCount)
	assert.Equal(t, int64(3), childCount)

	// The children keep the submitted order.
	got, err := repo.GetByID(ctx, workout.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 3)
	assert.Equal(t, exercises[0].ID, got.Exercises[0].ExerciseID)
	assert.Equal(t, exercises[1].ID, got.Exercises[1].ExerciseID)
	assert.Equal(t, exercises[2].ID, got.Exercises[2].ExerciseID)
}

func TestWorkoutRepository_Create_RollsBackOnChildFailure(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	exercises := createTestExercises(t, db, "Deadlift")

	// The second entry reuses the first entry's primary key, so its
	// insert fails mid-transaction.
	workout := &models.Workout{
		UserID:        1,
		Name:          "Pull Day",
		Date:          day(t, "2026-08-30"),
		Rating:        3,
		ExerciseCount: 2,
		Exercises: []models.PerformedExercise{
			{ID: 7, ExerciseID: exercises[0].ID, Weight: 180, Sets: 1, Reps: 3},
			{ID: 7, ExerciseID: exercises[0].ID, Weight: 140, Sets: 3, Reps: 8},
		},
	}

	err := repo.Create(ctx, workout)
	require.Error(t, err)

	var parentCount, childCount int64
	require.NoError(t, db.Model(&models.Workout{}).Count(&parentCount).Error)
	require.NoError(t, db.Model(&models.PerformedExercise{}).Count(&childCount).Error)
	assert.Equal(t, int64(0), parentCount, "workout row must not survive a failed child insert")
	assert.Equal(t, int64(0), childCount)
}

func TestWorkoutRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	exercises := createTestExercises(t, db, "Back Squat")

	workout := &models.Workout{
		UserID:        1,
		Name:          "Leg Day",
		Date:          day(t, "2026-08-29"),
		ExerciseCount: 1,
		Exercises: []models.PerformedExercise{
			{ExerciseID: exercises[0].ID, Weight: 120, Sets: 5, Reps: 5},
		},
	}
	require.NoError(t, repo.Create(ctx, workout))

	require.NoError(t, repo.Delete(ctx, workout.ID))

	var parentCount, childCount int64
	require.NoError(t, db.Model(&models.Workout{}).Count(&parentCount).Error)
	require.NoError(t, db.Model(&models.PerformedExercise{}).Count(&childCount).Error)
	assert.Equal(t, int64(0), parentCount)
	assert.Equal(t, int64(0), childCount, "children must go with the parent")

	// Deleting the same ID again reads as not found, with no side effects.
	err := repo.Delete(ctx, workout.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = repo.Delete(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestWorkoutRepository_TrainingDates_DistinctNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	dates := []string{"2026-08-28", "2026-08-30", "2026-08-30", "2026-08-25"}
	for _, d := range dates {
		require.NoError(t, db.Create(&models.Workout{
			UserID: 1, Name: "Session", Date: day(t, d), ExerciseCount: 1,
		}).Error)
	}
	// Another user's dates must not leak in.
	require.NoError(t, db.Create(&models.Workout{
		UserID: 2, Name: "Session", Date: day(t, "2026-08-31"), ExerciseCount: 1,
	}).Error)

	got, err := repo.TrainingDates(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(day(t, "2026-08-30")))
	assert.True(t, got[1].Equal(day(t, "2026-08-28")))
	assert.True(t, got[2].Equal(day(t, "2026-08-25")))
}

func TestWorkoutRepository_MostUsed_TopThreeByCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	exercises := createTestExercises(t, db, "Back Squat", "Bench Press", "Barbell Row", "Barbell Curl")
	counts := map[uint]int{
		exercises[0].ID: 5, // Back Squat
		exercises[1].ID: 5, // Bench Press
		exercises[2].ID: 3, // Barbell Row
		exercises[3].ID: 1, // Barbell Curl
	}

	workout := models.Workout{UserID: 1, Name: "Session", Date: day(t, "2026-08-30"), ExerciseCount: 1}
	require.NoError(t, db.Create(&workout).Error)
	for exerciseID, n := range counts {
		for i := 0; i < n; i++ {
			require.NoError(t, db.Create(&models.PerformedExercise{
				WorkoutID: workout.ID, ExerciseID: exerciseID, Weight: 60, Sets: 3, Reps: 8,
			}).Error)
		}
	}

	got, err := repo.MostUsed(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Back Squat", got[0].ExerciseName)
	assert.Equal(t, 5, got[0].Count)
	assert.Equal(t, "Bench Press", got[1].ExerciseName)
	assert.Equal(t, 5, got[1].Count)
	assert.Equal(t, "Barbell Row", got[2].ExerciseName)
	assert.Equal(t, 3, got[2].Count)
}

func TestWorkoutRepository_Progress_ChronologicalAcrossUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	exercises := createTestExercises(t, db, "Deadlift")

	// Inserted out of order and across two users; the series must come
	// back oldest first regardless.
	sessions := []struct {
		userID uint
		date   string
		oneRM  float64
	}{
		{1, "2026-08-20", 180},
		{2, "2026-08-10", 150},
		{1, "2026-08-30", 190},
	}
	for _, s := range sessions {
		w := models.Workout{UserID: s.userID, Name: "Session", Date: day(t, s.date), ExerciseCount: 1}
		require.NoError(t, db.Create(&w).Error)
		require.NoError(t, db.Create(&models.PerformedExercise{
			WorkoutID: w.ID, ExerciseID: exercises[0].ID, Weight: s.oneRM, Reps: 1,
			EstimatedOneRepMax: s.oneRM,
		}).Error)
	}

	got, err := repo.Progress(ctx, exercises[0].ID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 150.0, got[0].EstimatedOneRepMax)
	assert.Equal(t, 180.0, got[1].EstimatedOneRepMax)
	assert.Equal(t, 190.0, got[2].EstimatedOneRepMax)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Date.Before(got[i-1].Date))
	}
}

func TestWorkoutRepository_ListByUser_PagesNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWorkoutRepository(db)
	ctx := context.Background()

	for _, d := range []string{"2026-08-25", "2026-08-27", "2026-08-29"} {
		require.NoError(t, db.Create(&models.Workout{
			UserID: 1, Name: "Session " + d, Date: day(t, d), ExerciseCount: 1,
		}).Error)
	}

	page, err := repo.ListByUser(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, page[0].Date.Equal(day(t, "2026-08-29")))
	assert.True(t, page[1].Date.Equal(day(t, "2026-08-27")))

	rest, err := repo.ListByUser(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.True(t, rest[0].Date.Equal(day(t, "2026-08-25")))
}
