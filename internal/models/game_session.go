package models

import (
	"time"

	"github.com/google/uuid"
)

// GameStatus is the lifecycle state of a game session. IN_PROGRESS is the only
// non-terminal state; COMPLETED and ABANDONED admit no further transitions.
type GameStatus string

const (
	StatusInProgress GameStatus = "IN_PROGRESS"
	StatusCompleted  GameStatus = "COMPLETED"
	StatusAbandoned  GameStatus = "ABANDONED"
)

func (s GameStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// GameSession is one typing attempt. Metric fields stay nil while the session
// is IN_PROGRESS (total_characters is pre-seeded from the chosen passage) and
// are all set exactly once at completion. The partial unique index on user_id
// enforces at most one IN_PROGRESS session per user at the store level.
type GameSession struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;index:idx_game_sessions_active,unique,where:status = 'IN_PROGRESS'" json:"user_id"`
	TextSampleID uuid.UUID  `gorm:"type:uuid;not null;index" json:"text_sample_id"`
	Status       GameStatus `gorm:"size:15;not null;index" json:"status"`
	Difficulty   Difficulty `gorm:"size:10;not null" json:"difficulty"`

	WPM                 *int     `json:"wpm,omitempty"`
	Accuracy            *float64 `json:"accuracy,omitempty"`
	DurationSeconds     *int     `json:"duration_seconds,omitempty"`
	TotalCharacters     *int     `json:"total_characters,omitempty"`
	CorrectCharacters   *int     `json:"correct_characters,omitempty"`
	IncorrectCharacters *int     `json:"incorrect_characters,omitempty"`

	// Optional raw keystroke payload, stored as given.
	KeystrokeData *string `gorm:"type:text" json:"keystroke_data,omitempty"`

	StartedAt   time.Time  `gorm:"not null;index" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
