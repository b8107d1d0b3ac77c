package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
)

// AdminRequired allows only users whose stored role is ADMIN. The role claim
// alone is not trusted; the durable record decides.
func AdminRequired(users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := users.FindByID(c.UserContext(), userID)
		if err != nil || user == nil || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
