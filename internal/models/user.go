// Package models contains data structures for the application's domain models.
package models

import "time"

// User is the owner of workouts. Registration, login and session handling
// live in the auth collaborator; this model only exists so workouts have a
// real foreign-key target and so exercise visibility scopes can reference
// a username.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
