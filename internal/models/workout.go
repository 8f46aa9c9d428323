package models

import "time"

// Workout is a logged training session owned by one user. It is created
// and deleted atomically with its performed-exercise children: a workout
// with zero children is never observable.
//
// There is no soft-delete column: deletion must actually remove the
// row and its children.
type Workout struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Name          string    `gorm:"not null" json:"name"`
	Date          time.Time `gorm:"not null;index" json:"date"`
	Rating        int       `gorm:"not null" json:"rating"`
	ExerciseCount int       `gorm:"not null" json:"exercise_count"`
	Comment       string    `gorm:"type:text" json:"comment"`

	Exercises []PerformedExercise `gorm:"foreignKey:WorkoutID" json:"exercises"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PerformedExercise is one exercise instance inside a workout. It never
// exists without a parent workout; rows are written only inside the
// workout writer's transaction and removed only inside the deleter's.
type PerformedExercise struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WorkoutID  uint `gorm:"not null;index" json:"workout_id"`
	ExerciseID uint `gorm:"not null;index" json:"exercise_id"`

	Weight float64 `gorm:"not null" json:"weight"`
	Sets   int     `gorm:"not null" json:"sets"`
	Reps   int     `gorm:"not null" json:"reps"`
	// EstimatedOneRepMax is derived once at write time and persisted so
	// historical estimates stay stable even if the formula changes.
	EstimatedOneRepMax float64 `gorm:"not null" json:"estimated_one_rep_max"`
	Notes              string  `gorm:"type:text" json:"notes"`

	Exercise *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
}

// ExerciseUsage is one row of the most-used-exercises aggregation.
type ExerciseUsage struct {
	ExerciseName string `json:"exercise_name"`
	Count        int    `json:"count"`
}

// ProgressPoint pairs a workout date with the estimated one-rep max
// logged on it, for the per-exercise progress series.
type ProgressPoint struct {
	Date               time.Time `json:"date"`
	EstimatedOneRepMax float64   `json:"estimated_one_rep_max"`
}
