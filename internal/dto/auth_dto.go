package dto

import (
	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Email     string              `json:"email"`
	Username  *string             `json:"username,omitempty"`
	FirstName *string             `json:"first_name,omitempty"`
	LastName  *string             `json:"last_name,omitempty"`
	AvatarURL *string             `json:"avatar_url,omitempty"`
	Provider  models.AuthProvider `json:"provider"`
	Role      models.Role         `json:"role"`
}

type ValidateResponse struct {
	Valid     bool                `json:"valid"`
	UserID    *uuid.UUID          `json:"userId,omitempty"`
	Email     string              `json:"email,omitempty"`
	FirstName *string             `json:"firstName,omitempty"`
	LastName  *string             `json:"lastName,omitempty"`
	Provider  models.AuthProvider `json:"provider,omitempty"`
	Role      models.Role         `json:"role,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

// NewUserResponse maps a user record to its public shape.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
		Provider:  user.Provider,
		Role:      user.Role,
	}
}
