package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every handler error as a JSON message payload.
// Non-fiber errors are hidden behind a generic 500 message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Erro interno do servidor"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"message": message})
}
