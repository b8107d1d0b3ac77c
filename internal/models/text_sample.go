package models

import (
	"time"

	"github.com/google/uuid"
)

// Difficulty classifies a text sample or a requested session.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// TextCategory groups practice passages by subject.
type TextCategory string

const (
	CategoryProgramming TextCategory = "PROGRAMMING"
	CategoryLiterature  TextCategory = "LITERATURE"
	CategoryNews        TextCategory = "NEWS"
	CategoryQuotes      TextCategory = "QUOTES"
)

// TextSample is a practice passage. Word and character counts are derived from
// the content at creation time; samples are immutable afterwards and retired
// via the is_active flag rather than deleted.
type TextSample struct {
	ID             uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	Content        string       `gorm:"type:text;not null" json:"content"`
	Difficulty     Difficulty   `gorm:"size:10;not null;index" json:"difficulty"`
	Category       TextCategory `gorm:"size:20;not null" json:"category"`
	WordCount      int          `gorm:"not null" json:"word_count"`
	CharacterCount int          `gorm:"not null" json:"character_count"`
	IsActive       bool         `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt      time.Time    `json:"created_at"`
}
