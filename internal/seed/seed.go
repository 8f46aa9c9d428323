// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"przone/internal/models"
	"przone/internal/strength"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumWorkouts int
	ShouldClean bool
}

var muscleNames = []string{
	"Chest", "Back", "Quads", "Hamstrings", "Glutes", "Calves",
	"Shoulders", "Biceps", "Triceps", "Forearms", "Abs", "Traps",
}

// catalog maps public exercises to the muscles they target.
var catalog = map[string][]string{
	"Back Squat":        {"Quads", "Glutes", "Hamstrings"},
	"Front Squat":       {"Quads", "Abs"},
	"Deadlift":          {"Back", "Hamstrings", "Glutes"},
	"Romanian Deadlift": {"Hamstrings", "Glutes"},
	"Bench Press":       {"Chest", "Triceps", "Shoulders"},
	"Incline Press":     {"Chest", "Shoulders"},
	"Overhead Press":    {"Shoulders", "Triceps"},
	"Barbell Row":       {"Back", "Biceps"},
	"Pull-Up":           {"Back", "Biceps"},
	"Lat Pulldown":      {"Back", "Biceps"},
	"Barbell Curl":      {"Biceps", "Forearms"},
	"Triceps Pushdown":  {"Triceps"},
	"Leg Press":         {"Quads", "Glutes"},
	"Calf Raise":        {"Calves"},
	"Hip Thrust":        {"Glutes", "Hamstrings"},
	"Shrug":             {"Traps"},
}

var workoutNames = []string{
	"Push Day", "Pull Day", "Leg Day", "Upper Body", "Lower Body",
	"Full Body", "Squat Focus", "Bench Focus", "Deadlift Focus",
	"Accessory Work", "Volume Day", "Heavy Singles",
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("Starting database seeding with %d users and %d workouts...", opts.NumUsers, opts.NumWorkouts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	muscles, err := createMuscles(db)
	if err != nil {
		return fmt.Errorf("failed to create muscles: %w", err)
	}
	log.Printf("%d muscles available", len(muscles))

	exercises, err := createExercises(db, muscles)
	if err != nil {
		return fmt.Errorf("failed to create exercises: %w", err)
	}
	log.Printf("%d exercises available", len(exercises))

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d users created", len(users))

	scoped, err := createScopedExercises(db, users, muscles)
	if err != nil {
		return fmt.Errorf("failed to create user-scoped exercises: %w", err)
	}
	exercises = append(exercises, scoped...)

	count, err := createWorkouts(db, users, exercises, opts.NumWorkouts)
	if err != nil {
		return fmt.Errorf("failed to create workouts: %w", err)
	}
	log.Printf("%d workouts created", count)

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE performed_exercises, workouts, exercise_muscles, exercises, muscles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createMuscles(db *gorm.DB) ([]models.Muscle, error) {
	muscles := make([]models.Muscle, 0, len(muscleNames))
	for _, name := range muscleNames {
		m := models.Muscle{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&m).Error; err != nil {
			return nil, err
		}
		muscles = append(muscles, m)
	}
	return muscles, nil
}

func createExercises(db *gorm.DB, muscles []models.Muscle) ([]models.Exercise, error) {
	byName := make(map[string]models.Muscle, len(muscles))
	for _, m := range muscles {
		byName[m.Name] = m
	}

	exercises := make([]models.Exercise, 0, len(catalog))
	for name, targets := range catalog {
		e := models.Exercise{Name: name, Scope: models.ScopePublic}
		if err := db.Where("name = ? AND scope = ?", name, models.ScopePublic).FirstOrCreate(&e).Error; err != nil {
			return nil, err
		}

		linked := make([]models.Muscle, 0, len(targets))
		for _, t := range targets {
			if m, ok := byName[t]; ok {
				linked = append(linked, m)
			}
		}
		if err := db.Model(&e).Association("Muscles").Replace(linked); err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}

// createScopedExercises gives roughly every third user one private
// exercise variation, scoped to their username.
func createScopedExercises(db *gorm.DB, users []models.User, muscles []models.Muscle) ([]models.Exercise, error) {
	if len(muscles) == 0 {
		return nil, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	var exercises []models.Exercise
	for i, u := range users {
		if i%3 != 0 {
			continue
		}
		e := models.Exercise{
			Name:    fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), "Variation"),
			Scope:   u.Username,
			Muscles: []models.Muscle{muscles[r.Intn(len(muscles))]},
		}
		if err := db.Create(&e).Error; err != nil {
			return nil, err
		}
		exercises = append(exercises, e)
	}
	return exercises, nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		u := models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
		}
		if err := db.Create(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func createWorkouts(db *gorm.DB, users []models.User, exercises []models.Exercise, count int) (int, error) {
	if len(users) == 0 || len(exercises) == 0 {
		return 0, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for i := 0; i < count; i++ {
		user := users[r.Intn(len(users))]
		daysBack := r.Intn(120)
		date := time.Now().UTC().AddDate(0, 0, -daysBack)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

		numEntries := 2 + r.Intn(5)
		entries := make([]models.PerformedExercise, 0, numEntries)
		for j := 0; j < numEntries; j++ {
			ex := exercises[r.Intn(len(exercises))]
			weight := float64(20+r.Intn(32)*5) + float64(r.Intn(2))*2.5
			reps := 1 + r.Intn(12)
			entries = append(entries, models.PerformedExercise{
				ExerciseID:         ex.ID,
				Weight:             weight,
				Sets:               1 + r.Intn(5),
				Reps:               reps,
				EstimatedOneRepMax: strength.Estimate(weight, reps),
			})
		}

		w := models.Workout{
			UserID:        user.ID,
			Name:          workoutNames[r.Intn(len(workoutNames))],
			Date:          date,
			Rating:        1 + r.Intn(5),
			ExerciseCount: len(entries),
			Comment:       gofakeit.Sentence(8),
			Exercises:     entries,
		}
		if err := db.Create(&w).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
