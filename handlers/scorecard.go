package handlers

import (
	"scorecard-api/models"
	"scorecard-api/services"
	"scorecard-api/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupScorecardRoutes(app *fiber.App, scorecardService *services.ScorecardService) {
	app.Get("/scorecard", func(c *fiber.Ctx) error {
		filter := models.ScorecardFilter{
			PlayerName: c.Query("playerName"),
			CourseID:   c.Query("courseId"),
		}
		scorecards, err := scorecardService.GetAllScorecards(filter)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(scorecards)
	})

	app.Get("/scorecard/:id", func(c *fiber.Ctx) error {
		scorecard, err := scorecardService.GetScorecardByID(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(scorecard)
	})

	app.Post("/scorecard", func(c *fiber.Ctx) error {
		var input services.CreateScorecardInput
		if err := c.BodyParser(&input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, validationMessage(err))
		}

		scorecard, err := scorecardService.CreateScorecard(input)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(scorecard)
	})

	app.Put("/scorecard/:id", func(c *fiber.Ctx) error {
		var input services.UpdateScorecardInput
		if err := c.BodyParser(&input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, validationMessage(err))
		}

		scorecard, err := scorecardService.UpdateScorecard(c.Params("id"), input)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(scorecard)
	})

	app.Delete("/scorecard/:id", func(c *fiber.Ctx) error {
		if _, err := scorecardService.DeleteScorecard(c.Params("id")); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Post("/scorecard/:id/export", func(c *fiber.Ctx) error {
		if !utils.R2Enabled() {
			return writeErrorStatus(c, fiber.StatusServiceUnavailable, "export storage is not configured")
		}
		url, err := scorecardService.ExportScorecard(c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
