package models

// ScopePublic marks an exercise as part of the shared catalog. Any other
// scope value is the username the exercise belongs to.
const ScopePublic = "public"

// Muscle is a catalog entry naming a target muscle. Read-only here; the
// catalog collaborator owns its lifecycle.
type Muscle struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Exercise is a catalog entry users log against. The muscle link table is
// owned by the exercise lifecycle: replaced when an exercise's muscle set
// changes, removed when the exercise goes away.
type Exercise struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"not null;index" json:"name"`
	Scope string `gorm:"not null;default:public;index" json:"scope"`
	// Muscles is filled by a read-side enrichment query; a failed lookup
	// degrades to an empty list rather than failing the response.
	Muscles []Muscle `gorm:"many2many:exercise_muscles" json:"muscles"`
}

// Visible reports whether the exercise is usable by the given username.
func (e *Exercise) Visible(username string) bool {
	return e.Scope == ScopePublic || e.Scope == username
}
