package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"przone/internal/config"
	"przone/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret-key-for-handler-tests"

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
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

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := setupHandlerTestDB(t)

	cfg := &config.Config{
		JWTSecret: testJWTSecret,
		Port:      "0",
		Env:       "test",
	}
	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

func testToken(t *testing.T, userID uint, username string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", userID),
		"username": username,
		"iss":      "przone-api",
		"aud":      "przone-client",
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func authedRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func TestWorkoutRoutes_RequireAuth(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{"/api/workouts", "/api/analytics/streak", "/api/analytics/most-used"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, target)
		_ = resp.Body.Close()
	}
}

func TestWorkoutLifecycle(t *testing.T) {
	app, db := newTestApp(t)
	token := testToken(t, 1, "alice")

	squat := models.Exercise{Name: "Back Squat", Scope: models.ScopePublic}
	bench := models.Exercise{Name: "Bench Press", Scope: models.ScopePublic}
	require.NoError(t, db.Create(&squat).Error)
	require.NoError(t, db.Create(&bench).Error)

	// Create
	payload := fiber.Map{
		"name":   "Push Day",
		"date":   "2026-08-30T00:00:00Z",
		"rating": 4,
		"exercises": []fiber.Map{
			{"exercise_id": squat.ID, "weight": 100, "sets": 3, "reps": 5},
			{"exercise_id": bench.ID, "weight": 80, "sets": 3, "reps": 8},
		},
	}
	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/workouts", payload, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Workout
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 2, created.ExerciseCount)
	require.Len(t, created.Exercises, 2)
	assert.InDelta(t, 116.65, created.Exercises[0].EstimatedOneRepMax, 0.001)

	// Read it back
	resp, err = app.Test(authedRequest(t, http.MethodGet, fmt.Sprintf("/api/workouts/%d", created.ID), nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Workout
	decodeBody(t, resp, &fetched)
	assert.Equal(t, "Push Day", fetched.Name)
	assert.Len(t, fetched.Exercises, 2)

	// Delete
	resp, err = app.Test(authedRequest(t, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", created.ID), nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// A second delete of the same ID is a 404, not a 500.
	resp, err = app.Test(authedRequest(t, http.MethodDelete, fmt.Sprintf("/api/workouts/%d", created.ID), nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()

	var childCount int64
	require.NoError(t, db.Model(&models.PerformedExercise{}).Count(&childCount).Error)
	assert.Equal(t, int64(0), childCount)
}

func TestCreateWorkout_ValidationFailureIs400(t *testing.T) {
	app, db := newTestApp(t)
	token := testToken(t, 1, "alice")

	payload := fiber.Map{
		"name":      "Empty Day",
		"date":      "2026-08-30T00:00:00Z",
		"exercises": []fiber.Map{},
	}
	resp, err := app.Test(authedRequest(t, http.MethodPost, "/api/workouts", payload, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	var count int64
	require.NoError(t, db.Model(&models.Workout{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "a rejected submission must write nothing")
}

func TestGetWorkout_ForeignWorkoutIs404(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Workout{
		UserID: 2, Name: "Leg Day",
		Date:          time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		ExerciseCount: 1,
	}).Error)

	token := testToken(t, 1, "alice")
	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/workouts/1", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestStreakEndpoint(t *testing.T) {
	app, db := newTestApp(t)
	token := testToken(t, 1, "alice")

	today := time.Now().UTC()
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	for _, daysAgo := range []int{0, 1, 2, 4} {
		require.NoError(t, db.Create(&models.Workout{
			UserID: 1, Name: "Session",
			Date:          today.AddDate(0, 0, -daysAgo),
			ExerciseCount: 1,
		}).Error)
	}

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/analytics/streak", nil, token))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Streak int `json:"streak"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, 3, body.Streak)
}

func TestProgressEndpoint_InvalidIDIs400(t *testing.T) {
	app, _ := newTestApp(t)
	token := testToken(t, 1, "alice")

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/analytics/progress/abc", nil, token))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
