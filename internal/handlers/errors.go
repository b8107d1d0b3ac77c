package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/minhng/typing-game-backend/internal/dto"
)

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// serverError logs the underlying failure and returns a generic 500 body so
// internal detail never leaks to clients.
func serverError(c *fiber.Ctx, action string, err error) error {
	slog.Error(action, "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "Internal server error",
	})
}
