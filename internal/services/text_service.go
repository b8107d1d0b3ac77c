package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
)

var ErrTextSampleNotFound = errors.New("text sample not found")

// TextService exposes the practice-passage catalog. Samples are immutable
// after creation; retirement flips is_active instead of deleting.
type TextService struct {
	samples repository.TextSampleRepository
}

func NewTextService(samples repository.TextSampleRepository) *TextService {
	return &TextService{samples: samples}
}

func (s *TextService) ListActive(ctx context.Context) ([]models.TextSample, error) {
	return s.samples.ListActive(ctx)
}

func (s *TextService) GetByID(ctx context.Context, id uuid.UUID) (*models.TextSample, error) {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up text sample: %w", err)
	}
	if sample == nil {
		return nil, ErrTextSampleNotFound
	}
	return sample, nil
}

// Create derives word and character counts from the content.
func (s *TextService) Create(ctx context.Context, req *dto.CreateTextSampleRequest) (*models.TextSample, error) {
	if req.Title == "" || req.Content == "" {
		return nil, errors.New("title and content are required")
	}
	difficulty := models.Difficulty(req.Difficulty)
	if !difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty: %s", req.Difficulty)
	}

	sample := models.TextSample{
		ID:             uuid.New(),
		Title:          req.Title,
		Content:        req.Content,
		Difficulty:     difficulty,
		Category:       models.TextCategory(req.Category),
		WordCount:      len(strings.Fields(req.Content)),
		CharacterCount: utf8.RuneCountInString(req.Content),
		IsActive:       true,
	}

	if err := s.samples.Create(ctx, &sample); err != nil {
		return nil, fmt.Errorf("failed to create text sample: %w", err)
	}
	return &sample, nil
}

func (s *TextService) Deactivate(ctx context.Context, id uuid.UUID) error {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up text sample: %w", err)
	}
	if sample == nil {
		return ErrTextSampleNotFound
	}
	return s.samples.Deactivate(ctx, id)
}
