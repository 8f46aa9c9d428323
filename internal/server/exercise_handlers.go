package server

import (
	"przone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetExercises lists the exercise catalog. Authenticated callers also
// see their own scoped exercises; anonymous callers see the public set.
func (s *Server) GetExercises(c *fiber.Ctx) error {
	exercises, err := s.exerciseService.ListExercises(c.UserContext(), s.optionalUsername(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(exercises)
}

// GetExercise returns one catalog entry with its muscle list.
func (s *Server) GetExercise(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	exercise, err := s.exerciseService.GetExercise(c.UserContext(), id, s.optionalUsername(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(exercise)
}
