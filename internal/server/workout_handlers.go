package server

import (
	"time"

	"przone/internal/models"
	"przone/internal/service"

	"github.com/gofiber/fiber/v2"
)

// createWorkoutRequest is the JSON body for workout submissions.
type createWorkoutRequest struct {
	Name          string                           `json:"name"`
	Date          time.Time                        `json:"date"`
	Rating        int                              `json:"rating"`
	Comment       string                           `json:"comment"`
	ExerciseCount *int                             `json:"exercise_count"`
	Exercises     []service.PerformedExerciseInput `json:"exercises"`
}

// CreateWorkout handles workout submissions. The whole workout is
// persisted in one transaction; a rejected entry fails the entire
// submission with the offending index in the error message.
func (s *Server) CreateWorkout(c *fiber.Ctx) error {
	var req createWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	workout, err := s.workoutService.CreateWorkout(c.UserContext(), service.CreateWorkoutInput{
		UserID:        currentUserID(c),
		Name:          req.Name,
		Date:          req.Date,
		Rating:        req.Rating,
		Comment:       req.Comment,
		ExerciseCount: req.ExerciseCount,
		Exercises:     req.Exercises,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(workout)
}

// GetWorkouts lists the authenticated user's workouts, newest first.
func (s *Server) GetWorkouts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	workouts, err := s.workoutService.ListWorkouts(c.UserContext(), service.ListWorkoutsInput{
		UserID: currentUserID(c),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(workouts)
}

// GetWorkout returns one workout with its performed exercises.
func (s *Server) GetWorkout(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	workout, err := s.workoutService.GetWorkout(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(workout)
}

// DeleteWorkout removes a workout and all its performed exercises.
func (s *Server) DeleteWorkout(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.workoutService.DeleteWorkout(c.UserContext(), currentUserID(c), id); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Workout deleted"})
}
