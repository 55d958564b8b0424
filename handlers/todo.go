package handlers

import (
	"scorecard-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTodoRoutes(app *fiber.App, todoService *services.TodoService) {
	app.Get("/todo", func(c *fiber.Ctx) error {
		todos, err := todoService.GetAllTodos()
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(todos)
	})

	app.Post("/todo", func(c *fiber.Ctx) error {
		var input services.CreateTodoInput
		if err := c.BodyParser(&input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(input); err != nil {
			return writeErrorStatus(c, fiber.StatusBadRequest, validationMessage(err))
		}

		todo, err := todoService.CreateTodo(input)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(todo)
	})
}
