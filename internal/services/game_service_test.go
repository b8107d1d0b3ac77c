package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minhng/typing-game-backend/internal/dto"
	"github.com/minhng/typing-game-backend/internal/models"
	"github.com/minhng/typing-game-backend/internal/repository"
)

type mockMetrics struct {
	started   []string
	completed int
	abandoned int
}

func (m *mockMetrics) RecordSessionStarted(difficulty string) { m.started = append(m.started, difficulty) }
func (m *mockMetrics) RecordSessionCompleted()                { m.completed++ }
func (m *mockMetrics) RecordSessionAbandoned()                { m.abandoned++ }

var _ GameMetrics = (*mockMetrics)(nil)

func easySample() models.TextSample {
	return models.TextSample{
		ID:             uuid.New(),
		Title:          "The quick brown fox",
		Content:        "The quick brown fox jumps over the lazy dog near the quiet river bank today",
		Difficulty:     models.DifficultyEasy,
		Category:       models.CategoryQuotes,
		WordCount:      15,
		CharacterCount: 80,
		IsActive:       true,
	}
}

func gameUserRepo(user *models.User) *mockUserRepo {
	return &mockUserRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.User, error) {
			if user != nil && id == user.ID {
				return user, nil
			}
			return nil, nil
		},
	}
}

func TestStartIsIdempotent(t *testing.T) {
	user := testUser()
	sample := easySample()

	var stored *models.GameSession
	creates := 0
	sessions := &mockSessionRepo{
		findActiveByUserFn: func(ctx context.Context, userID uuid.UUID) (*models.GameSession, error) {
			return stored, nil
		},
		createFn: func(ctx context.Context, session *models.GameSession) error {
			creates++
			stored = session
			return nil
		},
	}
	samples := &mockSampleRepo{
		findActiveByDifficultyFn: func(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error) {
			return []models.TextSample{sample}, nil
		},
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.TextSample, error) {
			return &sample, nil
		},
	}
	collector := &mockMetrics{}
	svc := NewGameService(sessions, samples, gameUserRepo(user), collector)

	first, firstSample, err := svc.Start(context.Background(), user.ID, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("first Start: %v", err)
	}
	second, _, err := svc.Start(context.Background(), user.ID, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("second Start: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("repeated start returned a different session: %s vs %s", first.ID, second.ID)
	}
	if creates != 1 {
		t.Errorf("create called %d times, want 1", creates)
	}
	if first.Status != models.StatusInProgress {
		t.Errorf("status = %s, want %s", first.Status, models.StatusInProgress)
	}
	if firstSample.ID != sample.ID {
		t.Errorf("sample id = %s, want %s", firstSample.ID, sample.ID)
	}
	if first.TotalCharacters == nil || *first.TotalCharacters != sample.CharacterCount {
		t.Errorf("total characters not seeded from the sample")
	}
	if len(collector.started) != 1 {
		t.Errorf("started metric recorded %d times, want 1", len(collector.started))
	}
}

func TestStartUnknownUser(t *testing.T) {
	svc := NewGameService(&mockSessionRepo{}, &mockSampleRepo{}, gameUserRepo(nil), nil)

	_, _, err := svc.Start(context.Background(), uuid.New(), models.DifficultyEasy)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestStartFallsBackToAnySample(t *testing.T) {
	user := testUser()
	fallback := easySample()

	samples := &mockSampleRepo{
		findActiveByDifficultyFn: func(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error) {
			return nil, nil
		},
		findRandomActiveFn: func(ctx context.Context) (*models.TextSample, error) {
			return &fallback, nil
		},
	}
	svc := NewGameService(&mockSessionRepo{}, samples, gameUserRepo(user), nil)

	session, sample, err := svc.Start(context.Background(), user.ID, models.DifficultyHard)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if sample.ID != fallback.ID {
		t.Errorf("sample id = %s, want fallback %s", sample.ID, fallback.ID)
	}
	// The session keeps the requested difficulty even when the passage differs.
	if session.Difficulty != models.DifficultyHard {
		t.Errorf("difficulty = %s, want %s", session.Difficulty, models.DifficultyHard)
	}
}

func TestStartWithNoActiveSamples(t *testing.T) {
	user := testUser()
	svc := NewGameService(&mockSessionRepo{}, &mockSampleRepo{}, gameUserRepo(user), nil)

	_, _, err := svc.Start(context.Background(), user.ID, models.DifficultyMedium)
	if !errors.Is(err, ErrNoTextSamples) {
		t.Fatalf("err = %v, want ErrNoTextSamples", err)
	}
}

func TestStartRaceReturnsWinner(t *testing.T) {
	user := testUser()
	sample := easySample()
	winner := &models.GameSession{
		ID:           uuid.New(),
		UserID:       user.ID,
		TextSampleID: sample.ID,
		Status:       models.StatusInProgress,
		Difficulty:   models.DifficultyEasy,
		StartedAt:    time.Now(),
	}

	lookups := 0
	sessions := &mockSessionRepo{
		findActiveByUserFn: func(ctx context.Context, userID uuid.UUID) (*models.GameSession, error) {
			lookups++
			// Nothing active at first check; the concurrent winner appears
			// once our own create bounces off the unique index.
			if lookups == 1 {
				return nil, nil
			}
			return winner, nil
		},
		createFn: func(ctx context.Context, session *models.GameSession) error {
			return repository.ErrDuplicate
		},
	}
	samples := &mockSampleRepo{
		findActiveByDifficultyFn: func(ctx context.Context, difficulty models.Difficulty) ([]models.TextSample, error) {
			return []models.TextSample{sample}, nil
		},
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.TextSample, error) {
			return &sample, nil
		},
	}
	svc := NewGameService(sessions, samples, gameUserRepo(user), nil)

	session, _, err := svc.Start(context.Background(), user.ID, models.DifficultyEasy)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if session.ID != winner.ID {
		t.Errorf("session id = %s, want the winner %s", session.ID, winner.ID)
	}
}

func TestEndCompletesSession(t *testing.T) {
	session := &models.GameSession{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		Status:     models.StatusInProgress,
		Difficulty: models.DifficultyEasy,
		StartedAt:  time.Now().Add(-time.Minute),
	}

	var saved *models.GameSession
	sessions := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
			return session, nil
		},
		saveFn: func(ctx context.Context, s *models.GameSession) error {
			saved = s
			return nil
		},
	}
	collector := &mockMetrics{}
	svc := NewGameService(sessions, &mockSampleRepo{}, &mockUserRepo{}, collector)
	finishedAt := time.Now()
	svc.now = func() time.Time { return finishedAt }

	req := &dto.EndGameRequest{
		WPM:                 48,
		Accuracy:            95.0,
		DurationSeconds:     60,
		TotalCharacters:     80,
		CorrectCharacters:   76,
		IncorrectCharacters: 4,
	}
	got, err := svc.End(context.Background(), session.ID, req)
	if err != nil {
		t.Fatalf("End: %v", err)
	}

	if got.Status != models.StatusCompleted {
		t.Errorf("status = %s, want %s", got.Status, models.StatusCompleted)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(finishedAt) {
		t.Errorf("completedAt not stamped with the finish time")
	}
	if got.WPM == nil || *got.WPM != 48 {
		t.Errorf("wpm not recorded")
	}
	if got.Accuracy == nil || *got.Accuracy != 95.0 {
		t.Errorf("accuracy not recorded")
	}
	if got.CorrectCharacters == nil || *got.CorrectCharacters != 76 {
		t.Errorf("correct characters not recorded")
	}
	if saved == nil {
		t.Error("session was not persisted")
	}
	if collector.completed != 1 {
		t.Errorf("completed metric recorded %d times, want 1", collector.completed)
	}
}

func TestEndRejectsTerminalSession(t *testing.T) {
	for _, status := range []models.GameStatus{models.StatusCompleted, models.StatusAbandoned} {
		session := &models.GameSession{ID: uuid.New(), Status: status}
		sessions := &mockSessionRepo{
			findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
				return session, nil
			},
		}
		svc := NewGameService(sessions, &mockSampleRepo{}, &mockUserRepo{}, nil)

		if _, err := svc.End(context.Background(), session.ID, &dto.EndGameRequest{}); !errors.Is(err, ErrSessionNotInProgress) {
			t.Errorf("End on %s session: err = %v, want ErrSessionNotInProgress", status, err)
		}
		if _, err := svc.Abandon(context.Background(), session.ID); !errors.Is(err, ErrSessionNotInProgress) {
			t.Errorf("Abandon on %s session: err = %v, want ErrSessionNotInProgress", status, err)
		}
	}
}

func TestEndUnknownSession(t *testing.T) {
	svc := NewGameService(&mockSessionRepo{}, &mockSampleRepo{}, &mockUserRepo{}, nil)

	if _, err := svc.End(context.Background(), uuid.New(), &dto.EndGameRequest{}); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestAbandonMarksSession(t *testing.T) {
	session := &models.GameSession{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Status:    models.StatusInProgress,
		StartedAt: time.Now(),
	}
	sessions := &mockSessionRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.GameSession, error) {
			return session, nil
		},
	}
	collector := &mockMetrics{}
	svc := NewGameService(sessions, &mockSampleRepo{}, &mockUserRepo{}, collector)

	got, err := svc.Abandon(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if got.Status != models.StatusAbandoned {
		t.Errorf("status = %s, want %s", got.Status, models.StatusAbandoned)
	}
	if got.CompletedAt == nil {
		t.Error("completedAt not set")
	}
	if got.WPM != nil {
		t.Error("abandoned session should carry no metrics")
	}
	if collector.abandoned != 1 {
		t.Errorf("abandoned metric recorded %d times, want 1", collector.abandoned)
	}
}

func TestGetActiveWhenNone(t *testing.T) {
	svc := NewGameService(&mockSessionRepo{}, &mockSampleRepo{}, &mockUserRepo{}, nil)

	session, sample, err := svc.GetActive(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetActive: %v", err)
	}
	if session != nil || sample != nil {
		t.Error("expected no active session")
	}
}
