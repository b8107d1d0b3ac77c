package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
	"gorm.io/gorm"
)

type TextSampleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.TextSample, error)
	FindActiveByDifficulty(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error)
	// FindRandomActive returns one active sample chosen by the store, or
	// (nil, nil) when the catalog has no active samples at all.
	FindRandomActive(ctx context.Context) (*models.TextSample, error)
	ListActive(ctx context.Context) ([]models.TextSample, error)
	Create(ctx context.Context, sample *models.TextSample) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type gormTextSampleRepository struct {
	db *gorm.DB
}

func NewTextSampleRepository(db *gorm.DB) TextSampleRepository {
	return &gormTextSampleRepository{db: db}
}

func (r *gormTextSampleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.TextSample, error) {
	var sample models.TextSample
	err := r.db.WithContext(ctx).First(&sample, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *gormTextSampleRepository) FindActiveByDifficulty(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error) {
	var samples []models.TextSample
	err := r.db.WithContext(ctx).
		Where("difficulty = ? AND is_active = true", difficulty).
		Find(&samples).Error
	return samples, err
}

func (r *gormTextSampleRepository) FindRandomActive(ctx context.Context) (*models.TextSample, error) {
	var sample models.TextSample
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("RANDOM()").
		First(&sample).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sample, nil
}

func (r *gormTextSampleRepository) ListActive(ctx context.Context) ([]models.TextSample, error) {
	var samples []models.TextSample
	err := r.db.WithContext(ctx).
		Where("is_active = true").
		Order("created_at DESC").
		Find(&samples).Error
	return samples, err
}

func (r *gormTextSampleRepository) Create(ctx context.Context, sample *models.TextSample) error {
	return r.db.WithContext(ctx).Create(sample).Error
}

func (r *gormTextSampleRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.TextSample{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
