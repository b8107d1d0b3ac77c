package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/metrics"
	"github.com/minhng/typing-game-backend/internal/middleware"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/oauth"
	"github.com/minhng/typing-game-backend/internal/services"
)

type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	clients      map[string]oauth.Client
	collector    *metrics.Collector
	frontendURL  string
}

func NewAuthHandler(
	authService *services.AuthService,
	tokenService *services.TokenService,
	clients []oauth.Client,
	collector *metrics.Collector,
	frontendURL string,
) *AuthHandler {
	byName := make(map[string]oauth.Client, len(clients))
	for _, client := range clients {
		byName[string(client.Provider())] = client
	}
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		clients:      byName,
		collector:    collector,
		frontendURL:  frontendURL,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken), errors.Is(err, services.ErrUsernameTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return badRequest(c, err.Error())
		}
	}

	if h.collector != nil {
		h.collector.RecordLogin(string(models.ProviderLocal))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return serverError(c, "login failed", err)
	}

	if h.collector != nil {
		h.collector.RecordLogin(string(models.ProviderLocal))
	}
	return c.JSON(resp)
}

// OAuthLogin redirects the browser to the provider's authorization page.
func (h *AuthHandler) OAuthLogin(c *fiber.Ctx) error {
	client, ok := h.clientFor(c.Params("provider"))
	if !ok {
		return badRequest(c, "Unknown provider")
	}
	state := uuid.NewString()
	return c.Redirect(client.LoginURL(state), fiber.StatusTemporaryRedirect)
}

// OAuthCallback exchanges the authorization code, reconciles the provider
// payload into a user record, and redirects to the frontend with a token.
func (h *AuthHandler) OAuthCallback(c *fiber.Ctx) error {
	client, ok := h.clientFor(c.Params("provider"))
	if !ok {
		return badRequest(c, "Unknown provider")
	}

	code := c.Query("code")
	if code == "" {
		return c.Redirect(h.frontendURL+"/login?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	attrs, err := client.FetchAttributes(c.UserContext(), code)
	if err != nil {
		slog.Error("oauth code exchange failed", "provider", client.Provider(), "error", err)
		return c.Redirect(h.frontendURL+"/login?error=auth_failed", fiber.StatusTemporaryRedirect)
	}

	user, err := h.authService.UpsertOAuthUser(c.UserContext(), client.Provider(), services.ProviderAttributes(attrs))
	if err != nil {
		slog.Error("oauth user reconciliation failed", "provider", client.Provider(), "error", err)
		return c.Redirect(h.frontendURL+"/login?error=oauth_save_failed", fiber.StatusTemporaryRedirect)
	}

	resp, err := h.authService.IssueTokens(c.UserContext(), user)
	if err != nil {
		slog.Error("token issuance failed", "user_id", user.ID, "error", err)
		return c.Redirect(h.frontendURL+"/login?error=oauth_save_failed", fiber.StatusTemporaryRedirect)
	}

	if h.collector != nil {
		h.collector.RecordLogin(string(user.Provider))
	}
	slog.Info("oauth user authenticated", "user_id", user.ID, "provider", user.Provider)

	redirect := fmt.Sprintf("%s/game?login=success&token=%s&userId=%s", h.frontendURL, resp.AccessToken, user.ID)
	return c.Redirect(redirect, fiber.StatusTemporaryRedirect)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.authService.Refresh(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return serverError(c, "token refresh failed", err)
	}

	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.authService.Logout(c.UserContext(), &req); err != nil {
		return serverError(c, "logout failed", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Validate reports token validity. Invalid input yields {"valid": false},
// never an error status.
func (h *AuthHandler) Validate(c *fiber.Ctx) error {
	token := c.Query("token")

	if !h.tokenService.Validate(token) {
		return c.JSON(dto.ValidateResponse{Valid: false})
	}

	email, ok := h.tokenService.ExtractEmail(token)
	if !ok {
		return c.JSON(dto.ValidateResponse{Valid: false})
	}

	user, err := h.authService.FindByEmail(c.UserContext(), email)
	if err != nil || user == nil {
		return c.JSON(dto.ValidateResponse{Valid: false})
	}

	return c.JSON(dto.ValidateResponse{
		Valid:     true,
		UserID:    &user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Provider:  user.Provider,
		Role:      user.Role,
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, err := middleware.UserEmail(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	user, err := h.authService.FindByEmail(c.UserContext(), email)
	if err != nil {
		return serverError(c, "user lookup failed", err)
	}
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	return c.JSON(dto.NewUserResponse(user))
}

func (h *AuthHandler) clientFor(provider string) (oauth.Client, bool) {
	client, ok := h.clients[normalizeProvider(provider)]
	return client, ok
}

func normalizeProvider(provider string) string {
	switch provider {
	case "google", "GOOGLE":
		return string(models.ProviderGoogle)
	case "github", "GITHUB":
		return string(models.ProviderGithub)
	}
	return provider
}
