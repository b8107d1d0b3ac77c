package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/services"
)

type TextHandler struct {
	textService *services.TextService
}

func NewTextHandler(textService *services.TextService) *TextHandler {
	return &TextHandler{textService: textService}
}

func (h *TextHandler) List(c *fiber.Ctx) error {
	samples, err := h.textService.ListActive(c.UserContext())
	if err != nil {
		return serverError(c, "failed to list text samples", err)
	}
	return c.JSON(samples)
}

func (h *TextHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid text sample id")
	}

	sample, err := h.textService.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrTextSampleNotFound) {
			return notFound(c, err.Error())
		}
		return serverError(c, "failed to load text sample", err)
	}
	return c.JSON(sample)
}

// Create handles POST /admin/text-samples.
func (h *TextHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTextSampleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sample, err := h.textService.Create(c.UserContext(), &req)
	if err != nil {
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(sample)
}

// Deactivate handles DELETE /admin/text-samples/:id (soft delete).
func (h *TextHandler) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid text sample id")
	}

	if err := h.textService.Deactivate(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrTextSampleNotFound) {
			return notFound(c, err.Error())
		}
		return serverError(c, "failed to deactivate text sample", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
