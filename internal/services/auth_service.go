package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/config"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")
	// ErrInvalidOAuthPayload covers provider payloads missing a mandatory
	// provider id or a resolvable email.
	ErrInvalidOAuthPayload = errors.New("invalid oauth payload")
)

// AuthService reconciles provider logins into canonical user records and
// handles the local register/login and refresh-token flows.
type AuthService struct {
	users         repository.UserRepository
	refreshTokens repository.RefreshTokenRepository
	tokens        *TokenService
	refreshExpiry time.Duration
	now           func() time.Time
}

func NewAuthService(
	users repository.UserRepository,
	refreshTokens repository.RefreshTokenRepository,
	tokens *TokenService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		tokens:        tokens,
		refreshExpiry: cfg.JWTRefreshExpiry,
		now:           time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Email == "" || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	if req.Username != "" {
		taken, err := s.users.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Provider:     models.ProviderLocal,
		Role:         models.RoleUser,
	}
	if req.Username != "" {
		user.Username = &req.Username
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.IssueTokens(ctx, &user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.IssueTokens(ctx, user)
}

// UpsertOAuthUser merges a provider login payload into a durable user record.
// Reconciling the same payload twice yields the same user id both times; only
// profile fields churn on repeat logins.
func (s *AuthService) UpsertOAuthUser(ctx context.Context, provider models.AuthProvider, attrs ProviderAttributes) (*models.User, error) {
	profile := profileForProvider(provider)

	providerID, ok := profile.ExtractProviderID(attrs)
	if !ok {
		return nil, fmt.Errorf("%w: missing provider id for %s", ErrInvalidOAuthPayload, provider)
	}

	email, placeholder, ok := profile.ExtractEmail(attrs)
	if !ok {
		return nil, fmt.Errorf("%w: no resolvable email for %s user %s", ErrInvalidOAuthPayload, provider, providerID)
	}
	if placeholder {
		slog.Info("provider withheld email, using placeholder",
			"provider", provider, "provider_id", providerID, "email", email)
	}

	data := profile.ExtractProfile(attrs)

	existing, err := s.users.FindByProviderIdentity(ctx, provider, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}
	// Placeholder emails are synthetic and must not merge unrelated accounts.
	if existing == nil && !placeholder {
		existing, err = s.users.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up user by email: %w", err)
		}
	}

	if existing != nil {
		return s.refreshOAuthUser(ctx, existing, provider, providerID, data)
	}

	user := models.User{
		ID:         uuid.New(),
		Email:      email,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		AvatarURL:  data.AvatarURL,
		Provider:   provider,
		ProviderID: &providerID,
		Role:       models.RoleUser,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a create race on (provider, provider_id); read the winner.
			winner, lookupErr := s.users.FindByProviderIdentity(ctx, provider, providerID)
			if lookupErr != nil {
				return nil, fmt.Errorf("failed to resolve duplicate oauth user: %w", lookupErr)
			}
			if winner != nil {
				return s.refreshOAuthUser(ctx, winner, provider, providerID, data)
			}
		}
		return nil, fmt.Errorf("failed to create oauth user: %w", err)
	}

	slog.Info("created oauth user", "user_id", user.ID, "provider", provider, "email", user.Email)
	return &user, nil
}

// refreshOAuthUser updates mutable profile fields on every login and attaches
// the provider identity to records that predate it (local or cross-provider
// accounts matched by email).
func (s *AuthService) refreshOAuthUser(ctx context.Context, user *models.User, provider models.AuthProvider, providerID string, data ProfileData) (*models.User, error) {
	user.FirstName = data.FirstName
	user.LastName = data.LastName
	user.AvatarURL = data.AvatarURL

	if user.ProviderID == nil {
		user.Provider = provider
		user.ProviderID = &providerID
		slog.Info("attached provider identity to existing user", "user_id", user.ID, "provider", provider)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update oauth user: %w", err)
	}

	slog.Info("updated oauth user", "user_id", user.ID, "provider", provider)
	return user, nil
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.refreshTokens.FindActiveByHash(ctx, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if stored == nil {
		return nil, ErrInvalidRefreshToken
	}

	if s.now().After(stored.ExpiresAt) {
		_ = s.refreshTokens.RevokeByHash(ctx, tokenHash)
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshTokens.RevokeByHash(ctx, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	user, err := s.users.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidRefreshToken
	}

	return s.IssueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.refreshTokens.RevokeByHash(ctx, hashToken(req.RefreshToken))
}

func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// IssueTokens produces an access/refresh token pair for the user.
func (s *AuthService) IssueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: s.now().Add(s.refreshExpiry),
	}

	if err := s.refreshTokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
