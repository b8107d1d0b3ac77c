package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/middleware"
	"github.com/minhng/typing-game-backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
	gameService *services.GameService
}

func NewUserHandler(userService *services.UserService, gameService *services.GameService) *UserHandler {
	return &UserHandler{userService: userService, gameService: gameService}
}

// Profile handles GET /users/me: the user record plus aggregate game stats.
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	user, err := h.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, err.Error())
		}
		return serverError(c, "failed to load user", err)
	}

	stats, err := h.gameService.GetStats(c.UserContext(), userID)
	if err != nil {
		return serverError(c, "failed to load player stats", err)
	}

	return c.JSON(fiber.Map{
		"user":  dto.NewUserResponse(user),
		"stats": stats,
	})
}

// Update handles PUT /users/me.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	user, err := h.userService.Update(c.UserContext(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return serverError(c, "failed to update user", err)
		}
	}

	return c.JSON(dto.NewUserResponse(user))
}
