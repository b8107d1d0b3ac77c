package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
)

// --- mock repositories ---

type mockUserRepo struct {
	findByIDFn               func(ctx context.Context, id uuid.UUID) (*models.User, error)
	findByEmailFn            func(ctx context.Context, email string) (*models.User, error)
	findByProviderIdentityFn func(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error)
	existsByEmailFn          func(ctx context.Context, email string) (bool, error)
	existsByUsernameFn       func(ctx context.Context, username string) (bool, error)
	createFn                 func(ctx context.Context, user *models.User) error
	saveFn                   func(ctx context.Context, user *models.User) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepo) FindByProviderIdentity(ctx context.Context, provider models.AuthProvider, providerID string) (*models.User, error) {
	if m.findByProviderIdentityFn != nil {
		return m.findByProviderIdentityFn(ctx, provider, providerID)
	}
	return nil, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) Save(ctx context.Context, user *models.User) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, user)
	}
	return nil
}

type mockSessionRepo struct {
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*models.GameSession, error)
	findActiveByUserFn  func(ctx context.Context, userID uuid.UUID) (*models.GameSession, error)
	findHistoryByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.GameSession, error)
	statsByUserFn       func(ctx context.Context, userID uuid.UUID) (*repository.PlayerStats, error)
	createFn            func(ctx context.Context, session *models.GameSession) error
	saveFn              func(ctx context.Context, session *models.GameSession) error
}

func (m *mockSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.GameSession, error) {
	if m.findActiveByUserFn != nil {
		return m.findActiveByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepo) FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]models.GameSession, error) {
	if m.findHistoryByUserFn != nil {
		return m.findHistoryByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionRepo) StatsByUser(ctx context.Context, userID uuid.UUID) (*repository.PlayerStats, error) {
	if m.statsByUserFn != nil {
		return m.statsByUserFn(ctx, userID)
	}
	return &repository.PlayerStats{}, nil
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.GameSession) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionRepo) Save(ctx context.Context, session *models.GameSession) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, session)
	}
	return nil
}

type mockSampleRepo struct {
	findByIDFn               func(ctx context.Context, id uuid.UUID) (*models.TextSample, error)
	findActiveByDifficultyFn func(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error)
	findRandomActiveFn       func(ctx context.Context) (*models.TextSample, error)
	listActiveFn             func(ctx context.Context) ([]models.TextSample, error)
	createFn                 func(ctx context.Context, sample *models.TextSample) error
	deactivateFn             func(ctx context.Context, id uuid.UUID) error
}

func (m *mockSampleRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.TextSample, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSampleRepo) FindActiveByDifficulty(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error) {
	if m.findActiveByDifficultyFn != nil {
		return m.findActiveByDifficultyFn(ctx, difficulty)
	}
	return nil, nil
}

func (m *mockSampleRepo) FindRandomActive(ctx context.Context) (*models.TextSample, error) {
	if m.findRandomActiveFn != nil {
		return m.findRandomActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockSampleRepo) ListActive(ctx context.Context) ([]models.TextSample, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}

func (m *mockSampleRepo) Create(ctx context.Context, sample *models.TextSample) error {
	if m.createFn != nil {
		return m.createFn(ctx, sample)
	}
	return nil
}

func (m *mockSampleRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

type mockRefreshTokenRepo struct {
	createFn           func(ctx context.Context, token *models.RefreshToken) error
	findActiveByHashFn func(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	revokeByHashFn     func(ctx context.Context, tokenHash string) error
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepo) FindActiveByHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.findActiveByHashFn != nil {
		return m.findActiveByHashFn(ctx, tokenHash)
	}
	return nil, nil
}

func (m *mockRefreshTokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	if m.revokeByHashFn != nil {
		return m.revokeByHashFn(ctx, tokenHash)
	}
	return nil
}

// --- compile-time interface checks ---
var _ repository.UserRepository = (*mockUserRepo)(nil)
var _ repository.GameSessionRepository = (*mockSessionRepo)(nil)
var _ repository.TextSampleRepository = (*mockSampleRepo)(nil)
var _ repository.RefreshTokenRepository = (*mockRefreshTokenRepo)(nil)
