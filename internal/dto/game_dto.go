package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
)

type StartGameRequest struct {
	Difficulty string `json:"difficulty"`
}

// EndGameRequest carries the metrics recorded by the client. They are
// accepted as given; the server does not recompute wpm or accuracy.
type EndGameRequest struct {
	WPM                 int      `json:"wpm"`
	Accuracy            float64  `json:"accuracy"`
	DurationSeconds     int      `json:"duration_seconds"`
	TotalCharacters     int      `json:"total_characters"`
	CorrectCharacters   int      `json:"correct_characters"`
	IncorrectCharacters int      `json:"incorrect_characters"`
	KeystrokeData       *string  `json:"keystroke_data,omitempty"`
}

type GameSessionResponse struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	TextSampleID uuid.UUID         `json:"text_sample_id"`
	Status       models.GameStatus `json:"status"`
	Difficulty   models.Difficulty `json:"difficulty"`

	TextSampleTitle   string `json:"text_sample_title,omitempty"`
	TextSampleContent string `json:"text_sample_content,omitempty"`

	WPM                 *int     `json:"wpm,omitempty"`
	Accuracy            *float64 `json:"accuracy,omitempty"`
	DurationSeconds     *int     `json:"duration_seconds,omitempty"`
	TotalCharacters     *int     `json:"total_characters,omitempty"`
	CorrectCharacters   *int     `json:"correct_characters,omitempty"`
	IncorrectCharacters *int     `json:"incorrect_characters,omitempty"`
	KeystrokeData       *string  `json:"keystroke_data,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewGameSessionResponse maps a session to its response shape. sample may be
// nil when the passage was not fetched alongside the session.
func NewGameSessionResponse(session *models.GameSession, sample *models.TextSample) GameSessionResponse {
	resp := GameSessionResponse{
		ID:                  session.ID,
		UserID:              session.UserID,
		TextSampleID:        session.TextSampleID,
		Status:              session.Status,
		Difficulty:          session.Difficulty,
		WPM:                 session.WPM,
		Accuracy:            session.Accuracy,
		DurationSeconds:     session.DurationSeconds,
		TotalCharacters:     session.TotalCharacters,
		CorrectCharacters:   session.CorrectCharacters,
		IncorrectCharacters: session.IncorrectCharacters,
		KeystrokeData:       session.KeystrokeData,
		StartedAt:           session.StartedAt,
		CompletedAt:         session.CompletedAt,
	}
	if sample != nil {
		resp.TextSampleTitle = sample.Title
		resp.TextSampleContent = sample.Content
	}
	return resp
}

type CreateTextSampleRequest struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Difficulty string `json:"difficulty"`
	Category   string `json:"category"`
}

type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}
