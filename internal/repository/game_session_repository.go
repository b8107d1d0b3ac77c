package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
	"gorm.io/gorm"
)

// PlayerStats aggregates a user's completed sessions.
type PlayerStats struct {
	TotalGames int64    `json:"total_games"`
	BestWPM    *int     `json:"best_wpm,omitempty"`
	AverageWPM *float64 `json:"average_wpm,omitempty"`
}

type GameSessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.GameSession, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.GameSession, error)
	FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]models.GameSession, error)
	StatsByUser(ctx context.Context, userID uuid.UUID) (*PlayerStats, error)
	Create(ctx context.Context, session *models.GameSession) error
	Save(ctx context.Context, session *models.GameSession) error
}

type gormGameSessionRepository struct {
	db *gorm.DB
}

func NewGameSessionRepository(db *gorm.DB) GameSessionRepository {
	return &gormGameSessionRepository{db: db}
}

func (r *gormGameSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *gormGameSessionRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.GameSession, error) {
	var session models.GameSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusInProgress).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *gormGameSessionRepository) FindHistoryByUser(ctx context.Context, userID uuid.UUID) ([]models.GameSession, error) {
	var sessions []models.GameSession
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Order("started_at DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *gormGameSessionRepository) StatsByUser(ctx context.Context, userID uuid.UUID) (*PlayerStats, error) {
	stats := &PlayerStats{}
	err := r.db.WithContext(ctx).Model(&models.GameSession{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&stats.TotalGames).Error
	if err != nil {
		return nil, err
	}
	if stats.TotalGames == 0 {
		return stats, nil
	}

	row := r.db.WithContext(ctx).Model(&models.GameSession{}).
		Select("MAX(wpm), AVG(wpm)").
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Row()
	if err := row.Scan(&stats.BestWPM, &stats.AverageWPM); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *gormGameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	err := r.db.WithContext(ctx).Create(session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (r *gormGameSessionRepository) Save(ctx context.Context, session *models.GameSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}
