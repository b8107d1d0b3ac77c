package database

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/models"
	"gorm.io/gorm"
)

// SeedTextSamples loads the default practice passages on first boot.
// Skipped when the catalog already has rows.
func SeedTextSamples(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TextSample{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		slog.Info("text samples already exist, skipping seed")
		return nil
	}

	samples := []models.TextSample{
		newTextSample("Quick Brown Fox",
			"The quick brown fox jumps over the lazy dog and runs through the forest with amazing speed and agility.",
			models.DifficultyEasy, models.CategoryLiterature),
		newTextSample("Programming Basics",
			"Programming is the art of telling another human being what one wants the computer to do with precision and clarity. It requires logical thinking and attention to detail.",
			models.DifficultyMedium, models.CategoryProgramming),
		newTextSample("Vue.js Framework",
			"Vue.js is a progressive framework for building user interfaces that focuses on the view layer and can be easily integrated into projects using other libraries.",
			models.DifficultyMedium, models.CategoryProgramming),
		newTextSample("Advanced Algorithm",
			"Dynamic programming is an algorithmic paradigm that solves complex problems by breaking them down into simpler subproblems. It is applicable to problems exhibiting overlapping subproblems and optimal substructure properties.",
			models.DifficultyHard, models.CategoryProgramming),
		newTextSample("Technology News",
			"Artificial intelligence and machine learning technologies are rapidly transforming industries across the globe, creating new opportunities while presenting unique challenges for businesses and society.",
			models.DifficultyMedium, models.CategoryNews),
		newTextSample("Motivational Quote",
			"Success is not final, failure is not fatal: it is the courage to continue that counts. The only way to do great work is to love what you do.",
			models.DifficultyEasy, models.CategoryQuotes),
		newTextSample("Complex Literature",
			"In the midst of winter, I found there was, within me, an invincible summer. And that makes me happy. For it says that no matter how hard the world pushes against me, within me, there's something stronger.",
			models.DifficultyHard, models.CategoryLiterature),
		newTextSample("Database Concepts",
			"Relational databases use structured query language (SQL) to manage and manipulate data stored in tables with rows and columns, ensuring data integrity through ACID properties.",
			models.DifficultyHard, models.CategoryProgramming),
	}

	if err := db.Create(&samples).Error; err != nil {
		return err
	}

	slog.Info("seeded text samples", "count", len(samples))
	return nil
}

func newTextSample(title, content string, difficulty models.Difficulty, category models.TextCategory) models.TextSample {
	return models.TextSample{
		ID:             uuid.New(),
		Title:          title,
		Content:        content,
		Difficulty:     difficulty,
		Category:       category,
		WordCount:      len(strings.Fields(content)),
		CharacterCount: utf8.RuneCountInString(content),
		IsActive:       true,
	}
}
