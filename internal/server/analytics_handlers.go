package server

import (
	"przone/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStreak returns the authenticated user's current training streak in
// consecutive UTC calendar days ending today.
func (s *Server) GetStreak(c *fiber.Ctx) error {
	streak, err := s.analyticsService.Streak(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"streak": streak})
}

// GetMostUsedExercises returns the user's top three exercises by usage.
func (s *Server) GetMostUsedExercises(c *fiber.Ctx) error {
	usage, err := s.analyticsService.MostUsed(c.UserContext(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(usage)
}

// GetProgress returns the chronological estimated one-rep-max series for
// one exercise, aggregated across all users.
func (s *Server) GetProgress(c *fiber.Ctx) error {
	exerciseID, err := s.parseID(c, "exerciseId")
	if err != nil {
		return nil
	}

	points, err := s.analyticsService.Progress(c.UserContext(), exerciseID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(points)
}
