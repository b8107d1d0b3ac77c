package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/config"
	"github.com/minhng/typing-game-backend/internal/models"
)

// TokenService issues and validates HS256 bearer tokens carrying identity
// claims. Validate and the claim extractors never return an error: malformed,
// forged or expired input is reported as invalid.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

// Issue produces a signed token for the user with a configured expiry offset.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.Email,
		"userId":   user.ID.String(),
		"email":    user.Email,
		"role":     string(user.Role),
		"provider": string(user.Provider),
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate reports whether the token has a valid signature and has not expired.
func (s *TokenService) Validate(tokenString string) bool {
	_, err := s.parseClaims(tokenString)
	return err == nil
}

// ExtractUserID returns the userId claim, or (uuid.Nil, false) if the token
// does not parse or the claim is absent or malformed.
func (s *TokenService) ExtractUserID(tokenString string) (uuid.UUID, bool) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return uuid.Nil, false
	}
	raw, ok := claims["userId"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ExtractEmail returns the email claim, or ("", false) on any failure.
func (s *TokenService) ExtractEmail(tokenString string) (string, bool) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return "", false
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

func (s *TokenService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
