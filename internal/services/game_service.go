package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
)

var (
	ErrSessionNotFound      = errors.New("game session not found")
	ErrSessionNotInProgress = errors.New("game session is not in progress")
	ErrNoTextSamples        = errors.New("no active text samples available")
)

// GameMetrics records session lifecycle events. Implemented by the Prometheus
// collector; a nil collector disables recording.
type GameMetrics interface {
	RecordSessionStarted(difficulty string)
	RecordSessionCompleted()
	RecordSessionAbandoned()
}

// GameService orchestrates the session state machine: a session starts
// IN_PROGRESS and transitions exactly once to COMPLETED or ABANDONED.
type GameService struct {
	sessions  repository.GameSessionRepository
	samples   repository.TextSampleRepository
	users     repository.UserRepository
	collector GameMetrics
	now       func() time.Time
}

func NewGameService(
	sessions repository.GameSessionRepository,
	samples repository.TextSampleRepository,
	users repository.UserRepository,
	collector GameMetrics,
) *GameService {
	return &GameService{
		sessions:  sessions,
		samples:   samples,
		users:     users,
		collector: collector,
		now:       time.Now,
	}
}

// Start creates a new IN_PROGRESS session for the user, or returns the
// existing active one unchanged. Repeated or concurrent starts converge on
// the same session: the store's partial unique index rejects a second
// IN_PROGRESS row, and a losing create is retried as a read.
func (s *GameService) Start(ctx context.Context, userID uuid.UUID, difficulty models.Difficulty) (*models.GameSession, *models.TextSample, error) {
	active, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check for active session: %w", err)
	}
	if active != nil {
		slog.Warn("user already has an active game session", "user_id", userID, "session_id", active.ID)
		sample, err := s.samples.FindByID(ctx, active.TextSampleID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load text sample: %w", err)
		}
		return active, sample, nil
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	sample, err := s.pickTextSample(ctx, difficulty)
	if err != nil {
		return nil, nil, err
	}
	if sample.Difficulty != difficulty {
		slog.Warn("no samples for requested difficulty, fell back to random sample",
			"requested", difficulty, "selected", sample.Difficulty, "sample_id", sample.ID)
	}

	totalCharacters := sample.CharacterCount
	session := models.GameSession{
		ID:              uuid.New(),
		UserID:          userID,
		TextSampleID:    sample.ID,
		Status:          models.StatusInProgress,
		Difficulty:      difficulty,
		TotalCharacters: &totalCharacters,
		StartedAt:       s.now(),
	}

	if err := s.sessions.Create(ctx, &session); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the start race; the winner's session is the user's session.
			winner, lookupErr := s.sessions.FindActiveByUser(ctx, userID)
			if lookupErr != nil {
				return nil, nil, fmt.Errorf("failed to resolve racing session start: %w", lookupErr)
			}
			if winner != nil {
				winnerSample, sampleErr := s.samples.FindByID(ctx, winner.TextSampleID)
				if sampleErr != nil {
					return nil, nil, fmt.Errorf("failed to load text sample: %w", sampleErr)
				}
				return winner, winnerSample, nil
			}
		}
		return nil, nil, fmt.Errorf("failed to create game session: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordSessionStarted(string(difficulty))
	}
	slog.Info("game session started", "session_id", session.ID, "user_id", userID, "difficulty", difficulty)
	return &session, sample, nil
}

// pickTextSample selects uniformly among active samples of the requested
// difficulty, falling back to any active sample when none match.
func (s *GameService) pickTextSample(ctx context.Context, difficulty models.Difficulty) (*models.TextSample, error) {
	candidates, err := s.samples.FindActiveByDifficulty(ctx, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to list text samples: %w", err)
	}
	if len(candidates) > 0 {
		return &candidates[rand.IntN(len(candidates))], nil
	}

	sample, err := s.samples.FindRandomActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pick fallback text sample: %w", err)
	}
	if sample == nil {
		return nil, ErrNoTextSamples
	}
	return sample, nil
}

// End finalizes an IN_PROGRESS session with the client-reported metrics.
func (s *GameService) End(ctx context.Context, sessionID uuid.UUID, req *dto.EndGameRequest) (*models.GameSession, error) {
	session, err := s.loadInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.WPM = &req.WPM
	session.Accuracy = &req.Accuracy
	session.DurationSeconds = &req.DurationSeconds
	session.TotalCharacters = &req.TotalCharacters
	session.CorrectCharacters = &req.CorrectCharacters
	session.IncorrectCharacters = &req.IncorrectCharacters
	session.KeystrokeData = req.KeystrokeData
	session.Status = models.StatusCompleted
	completedAt := s.now()
	session.CompletedAt = &completedAt

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordSessionCompleted()
	}
	slog.Info("game session completed", "session_id", session.ID, "user_id", session.UserID,
		"wpm", req.WPM, "accuracy", req.Accuracy)
	return session, nil
}

// Abandon marks an IN_PROGRESS session as ABANDONED without metrics.
func (s *GameService) Abandon(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	session, err := s.loadInProgress(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.Status = models.StatusAbandoned
	completedAt := s.now()
	session.CompletedAt = &completedAt

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save game session: %w", err)
	}

	if s.collector != nil {
		s.collector.RecordSessionAbandoned()
	}
	slog.Info("game session abandoned", "session_id", session.ID, "user_id", session.UserID)
	return session, nil
}

func (s *GameService) loadInProgress(ctx context.Context, sessionID uuid.UUID) (*models.GameSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up game session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Status != models.StatusInProgress {
		return nil, ErrSessionNotInProgress
	}
	return session, nil
}

// GetActive returns the user's IN_PROGRESS session with its passage, or
// (nil, nil, nil) when the user has none.
func (s *GameService) GetActive(ctx context.Context, userID uuid.UUID) (*models.GameSession, *models.TextSample, error) {
	session, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	if session == nil {
		return nil, nil, nil
	}
	sample, err := s.samples.FindByID(ctx, session.TextSampleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load text sample: %w", err)
	}
	return session, sample, nil
}

// GetHistory returns the user's COMPLETED sessions, most recent start first.
func (s *GameService) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.GameSession, error) {
	return s.sessions.FindHistoryByUser(ctx, userID)
}

// GetStats aggregates the user's completed sessions.
func (s *GameService) GetStats(ctx context.Context, userID uuid.UUID) (*repository.PlayerStats, error) {
	return s.sessions.StatsByUser(ctx, userID)
}
