package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockUserRepository реализует repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockPerformanceRepository реализует repository.PerformanceRepository
type MockPerformanceRepository struct {
	mock.Mock
}

func (m *MockPerformanceRepository) GetUserPerformance(ctx context.Context, userID uint) ([]entity.WordPerformance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WordPerformance), args.Error(1)
}

func (m *MockPerformanceRepository) RecordAnswer(ctx context.Context, userID uint, wordID int, isCorrect bool) error {
	args := m.Called(ctx, userID, wordID, isCorrect)
	return args.Error(0)
}

func (m *MockPerformanceRepository) ResetUserPerformance(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGlobalStatsRepository реализует repository.GlobalStatsRepository
type MockGlobalStatsRepository struct {
	mock.Mock
}

func (m *MockGlobalStatsRepository) Load(ctx context.Context) (entity.GlobalStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entity.GlobalStats), args.Error(1)
}

func (m *MockGlobalStatsRepository) Apply(ctx context.Context, batch []entity.AnswerSubmission) ([]entity.WordStatUpdate, error) {
	args := m.Called(ctx, batch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WordStatUpdate), args.Error(1)
}

// MockStatsBroadcaster реализует StatsBroadcaster
type MockStatsBroadcaster struct {
	mock.Mock
}

func (m *MockStatsBroadcaster) BroadcastStatsUpdate(updates []entity.WordStatUpdate) {
	m.Called(updates)
}

// ============================================================================
// Хелперы
// ============================================================================

// newTestCatalog создает каталог из n слов с ID 1..n
func newTestCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	words := make([]entity.Word, n)
	for i := range words {
		words[i] = entity.Word{
			ID:         i + 1,
			Word:       fmt.Sprintf("Word%02d", i+1),
			Definition: fmt.Sprintf("Definition %02d", i+1),
			Synonym:    fmt.Sprintf("synonym%02d", i+1),
		}
	}
	c, err := catalog.New(words)
	require.NoError(t, err)
	return c
}
