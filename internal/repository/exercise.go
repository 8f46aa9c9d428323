package repository

import (
	"context"
	"log/slog"

	"przone/internal/cache"
	"przone/internal/middleware"
	"przone/internal/models"
	"przone/internal/observability"

	"gorm.io/gorm"
)

// ExerciseRepository defines the interface for exercise catalog reads
type ExerciseRepository interface {
	List(ctx context.Context, username string) ([]*models.Exercise, error)
	GetByID(ctx context.Context, id uint) (*models.Exercise, error)
}

// exerciseRepository implements ExerciseRepository
type exerciseRepository struct {
	db *gorm.DB
}

// NewExerciseRepository creates a new exercise repository
func NewExerciseRepository(db *gorm.DB) ExerciseRepository {
	return &exerciseRepository{db: db}
}

// List returns the public catalog plus the user's own exercises, name
// ascending. The anonymous list (public only) is served cache-aside.
func (r *exerciseRepository) List(ctx context.Context, username string) ([]*models.Exercise, error) {
	defer observability.TrackQuery("list", "exercises")()

	var exercises []*models.Exercise
	fetch := func() error {
		q := readDB(r.db).WithContext(ctx).Order("name ASC")
		if username == "" {
			q = q.Where("scope = ?", models.ScopePublic)
		} else {
			q = q.Where("scope = ? OR scope = ?", models.ScopePublic, username)
		}
		if err := q.Find(&exercises).Error; err != nil {
			return err
		}
		r.enrichMuscles(ctx, exercises)
		return nil
	}

	var err error
	if username == "" {
		err = cache.Aside(ctx, cache.ExerciseListKey(username), &exercises, cache.ExerciseListTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	defer observability.TrackQuery("get", "exercises")()

	var exercise models.Exercise
	if err := readDB(r.db).WithContext(ctx).First(&exercise, id).Error; err != nil {
		return nil, err
	}
	r.enrichMuscles(ctx, []*models.Exercise{&exercise})
	return &exercise, nil
}

// enrichMuscles fills the muscle lists for a batch of exercises with a
// single preload query. A failed lookup degrades to empty lists instead
// of failing the catalog response.
func (r *exerciseRepository) enrichMuscles(ctx context.Context, exercises []*models.Exercise) {
	if len(exercises) == 0 {
		return
	}

	ids := make([]uint, 0, len(exercises))
	for _, e := range exercises {
		ids = append(ids, e.ID)
	}

	var withMuscles []models.Exercise
	err := readDB(r.db).WithContext(ctx).
		Preload("Muscles", func(db *gorm.DB) *gorm.DB {
			return db.Order("muscles.name ASC")
		}).
		Where("id IN ?", ids).
		Find(&withMuscles).Error
	if err != nil {
		middleware.Logger.WarnContext(ctx, "muscle enrichment failed, returning empty lists",
			slog.String("error", err.Error()))
		for _, e := range exercises {
			e.Muscles = []models.Muscle{}
		}
		return
	}

	byID := make(map[uint][]models.Muscle, len(withMuscles))
	for i := range withMuscles {
		byID[withMuscles[i].ID] = withMuscles[i].Muscles
	}
	for _, e := range exercises {
		if muscles, ok := byID[e.ID]; ok && muscles != nil {
			e.Muscles = muscles
		} else {
			e.Muscles = []models.Muscle{}
		}
	}
}
