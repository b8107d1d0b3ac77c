package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
)

func TestCreateTextSampleDerivesCounts(t *testing.T) {
	var stored *models.TextSample
	samples := &mockSampleRepo{
		createFn: func(ctx context.Context, sample *models.TextSample) error {
			stored = sample
			return nil
		},
	}
	svc := NewTextService(samples)

	sample, err := svc.Create(context.Background(), &dto.CreateTextSampleRequest{
		Title:      "Short drill",
		Content:    "pack my box with five dozen jugs",
		Difficulty: "EASY",
		Category:   "QUOTES",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if sample.WordCount != 7 {
		t.Errorf("word count = %d, want 7", sample.WordCount)
	}
	if sample.CharacterCount != 32 {
		t.Errorf("character count = %d, want 32", sample.CharacterCount)
	}
	if !sample.IsActive {
		t.Error("new sample should be active")
	}
	if stored == nil {
		t.Error("sample was not persisted")
	}
}

func TestCreateTextSampleInvalidDifficulty(t *testing.T) {
	svc := NewTextService(&mockSampleRepo{})

	if _, err := svc.Create(context.Background(), &dto.CreateTextSampleRequest{
		Title:      "Drill",
		Content:    "some text",
		Difficulty: "IMPOSSIBLE",
	}); err == nil {
		t.Fatal("expected an error for an unknown difficulty")
	}
}

func TestGetTextSampleNotFound(t *testing.T) {
	svc := NewTextService(&mockSampleRepo{})

	if _, err := svc.GetByID(context.Background(), uuid.New()); !errors.Is(err, ErrTextSampleNotFound) {
		t.Fatalf("err = %v, want ErrTextSampleNotFound", err)
	}
}

func TestDeactivateUnknownSample(t *testing.T) {
	svc := NewTextService(&mockSampleRepo{})

	if err := svc.Deactivate(context.Background(), uuid.New()); !errors.Is(err, ErrTextSampleNotFound) {
		t.Fatalf("err = %v, want ErrTextSampleNotFound", err)
	}
}
