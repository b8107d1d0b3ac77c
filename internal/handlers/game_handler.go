package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/middleware"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// Start handles POST /game-session/start. Difficulty defaults to MEDIUM.
func (h *GameHandler) Start(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req dto.StartGameRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return badRequest(c, "Invalid request body")
	}
	difficulty := models.Difficulty(req.Difficulty)
	if !difficulty.Valid() {
		difficulty = models.DifficultyMedium
	}

	session, sample, err := h.gameService.Start(c.UserContext(), userID, difficulty)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrNoTextSamples):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return serverError(c, "failed to start game session", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewGameSessionResponse(session, sample))
}

// End handles PUT /game-session/end/:id.
func (h *GameHandler) End(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	var req dto.EndGameRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	session, err := h.gameService.End(c.UserContext(), sessionID, &req)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(dto.NewGameSessionResponse(session, nil))
}

// Abandon handles PUT /game-session/abandon/:id.
func (h *GameHandler) Abandon(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid session id")
	}

	session, err := h.gameService.Abandon(c.UserContext(), sessionID)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(dto.NewGameSessionResponse(session, nil))
}

// Active handles GET /game-session/active. Responds 204 when the user has no
// session in progress.
func (h *GameHandler) Active(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	session, sample, err := h.gameService.GetActive(c.UserContext(), userID)
	if err != nil {
		return serverError(c, "failed to load active session", err)
	}
	if session == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return c.JSON(dto.NewGameSessionResponse(session, sample))
}

// History handles GET /game-session/history.
func (h *GameHandler) History(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	sessions, err := h.gameService.GetHistory(c.UserContext(), userID)
	if err != nil {
		return serverError(c, "failed to load game history", err)
	}

	responses := make([]dto.GameSessionResponse, 0, len(sessions))
	for i := range sessions {
		responses = append(responses, dto.NewGameSessionResponse(&sessions[i], nil))
	}
	return c.JSON(responses)
}

// Stats handles GET /game-session/stats.
func (h *GameHandler) Stats(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	stats, err := h.gameService.GetStats(c.UserContext(), userID)
	if err != nil {
		return serverError(c, "failed to load player stats", err)
	}
	return c.JSON(stats)
}

func (h *GameHandler) sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrSessionNotInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	default:
		return serverError(c, "game session update failed", err)
	}
}
