package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/domain/repository"
	apperrors "github.com/satvocab/vocab-api/internal/pkg/errors"
	"github.com/satvocab/vocab-api/internal/service/selector"
)

const (
	sessionKeyPrefix = "quiz:session:"
	sessionLockTTL   = 5 * time.Second

	MinTimedDurationSec = 30
	MaxTimedDurationSec = 3600

	// MaxBatchQuestions - предел пакета вопросов без сессии
	MaxBatchQuestions = 100
)

// StartSessionParams - параметры новой сессии
type StartSessionParams struct {
	Mode           entity.StudyMode
	QuestionType   entity.QuestionType
	TotalQuestions int
	DurationSec    int
	// GuestPerformance - статистика из localStorage гостя; для авторизованных игнорируется
	GuestPerformance map[int]entity.PerformanceCounts
}

// AnswerResult - результат ответа на вопрос сессии
type AnswerResult struct {
	IsCorrect       bool             `json:"isCorrect"`
	CorrectOptionID int              `json:"correctOptionId"`
	Word            entity.Word      `json:"word"`
	Answered        int              `json:"answered"`
	CorrectAnswers  int              `json:"correctAnswers"`
	Completed       bool             `json:"completed"`
	NextQuestion    *entity.Question `json:"nextQuestion,omitempty"`
}

// QuizService управляет сессиями викторины; состояние хранится в кеше
type QuizService struct {
	generator    *selector.Generator
	cache        repository.CacheRepository
	perfService  *PerformanceService
	statsService *GlobalStatsService
	sessionTTL   time.Duration
	maxQuestions int
	now          func() time.Time
}

// NewQuizService создает сервис викторины
func NewQuizService(
	generator *selector.Generator,
	cache repository.CacheRepository,
	perfService *PerformanceService,
	statsService *GlobalStatsService,
	sessionTTL time.Duration,
	maxQuestions int,
) *QuizService {
	return &QuizService{
		generator:    generator,
		cache:        cache,
		perfService:  perfService,
		statsService: statsService,
		sessionTTL:   sessionTTL,
		maxQuestions: maxQuestions,
		now:          time.Now,
	}
}

// StartSession создает сессию, фиксирует снимки статистики и выдает первый вопрос
func (s *QuizService) StartSession(ctx context.Context, userID *uint, params StartSessionParams) (*entity.QuizSession, error) {
	if err := s.validateStart(params); err != nil {
		return nil, err
	}

	userPerf, err := s.userPerformance(ctx, userID, params.GuestPerformance)
	if err != nil {
		return nil, err
	}

	session := &entity.QuizSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		Mode:            params.Mode,
		QuestionType:    params.QuestionType,
		Status:          entity.SessionActive,
		StartedAt:       s.now().UTC(),
		Answers:         []entity.Answer{},
		UserPerformance: userPerf,
		GlobalSnapshot:  s.globalSnapshot(ctx),
	}
	switch params.Mode {
	case entity.StudyModeTimed:
		session.DurationSec = params.DurationSec
	case entity.StudyModeWordCount:
		session.TotalQuestions = params.TotalQuestions
	}

	if err := s.drawQuestion(session); err != nil {
		return nil, err
	}
	if err := s.saveSession(session); err != nil {
		return nil, err
	}

	log.Printf("[QuizService] Сессия %s начата: mode=%s, type=%s, user=%v",
		session.ID, session.Mode, session.QuestionType, formatUserID(userID))
	return session, nil
}

// NextQuestion возвращает текущий вопрос сессии или выдает новый
func (s *QuizService) NextQuestion(ctx context.Context, sessionID string, userID *uint) (*entity.Question, error) {
	var question *entity.Question
	err := s.withSession(sessionID, userID, func(session *entity.QuizSession) (bool, error) {
		if err := s.checkActive(session); err != nil {
			return false, err
		}
		if session.CurrentQuestion != nil {
			question = session.CurrentQuestion
			return false, nil
		}
		if session.IsComplete() {
			return false, ErrSessionComplete
		}
		if err := s.drawQuestion(session); err != nil {
			return false, err
		}
		question = session.CurrentQuestion
		return true, nil
	})
	return question, err
}

// SubmitAnswer проверяет ответ на текущий вопрос и выдает следующий
func (s *QuizService) SubmitAnswer(ctx context.Context, sessionID string, userID *uint, selectedOptionID int) (*AnswerResult, error) {
	var result *AnswerResult
	err := s.withSession(sessionID, userID, func(session *entity.QuizSession) (bool, error) {
		if err := s.checkActive(session); err != nil {
			return false, err
		}
		q := session.CurrentQuestion
		if q == nil {
			return false, ErrNoPendingQuestion
		}
		if !q.HasOption(selectedOptionID) {
			return false, fmt.Errorf("%w: option %d is not part of the current question", apperrors.ErrValidation, selectedOptionID)
		}

		isCorrect := q.IsCorrect(selectedOptionID)
		session.Answers = append(session.Answers, entity.Answer{
			QuestionNumber:   session.QuestionsAsked,
			WordID:           q.Word.ID,
			SelectedOptionID: selectedOptionID,
			CorrectOptionID:  q.CorrectOptionID,
			IsCorrect:        isCorrect,
			AnsweredAt:       s.now().UTC(),
		})
		recordCounts(session.UserPerformance, q.Word.ID, isCorrect)
		session.CurrentQuestion = nil

		if session.UserID != nil {
			if err := s.perfService.UpdatePerformance(ctx, *session.UserID, q.Word.ID, isCorrect); err != nil {
				log.Printf("[QuizService] WARNING: не удалось сохранить ответ пользователя ID=%d: %v", *session.UserID, err)
			}
		}

		result = &AnswerResult{
			IsCorrect:       isCorrect,
			CorrectOptionID: q.CorrectOptionID,
			Word:            q.Word,
			Answered:        len(session.Answers),
			CorrectAnswers:  countCorrect(session.Answers),
			Completed:       session.IsComplete(),
		}

		if !result.Completed && !session.IsExpired(s.now()) {
			if err := s.drawQuestion(session); err != nil {
				return false, err
			}
			result.NextQuestion = session.CurrentQuestion
		}
		return true, nil
	})
	return result, err
}

// FinishSession завершает сессию и отправляет ответы в глобальную статистику.
// Повторный вызов возвращает тот же итог.
func (s *QuizService) FinishSession(ctx context.Context, sessionID string, userID *uint) (*entity.SessionSummary, error) {
	var summary *entity.SessionSummary
	err := s.withSession(sessionID, userID, func(session *entity.QuizSession) (bool, error) {
		if session.Status == entity.SessionFinished && session.Summary != nil {
			summary = session.Summary
			return false, nil
		}

		if len(session.Answers) > 0 {
			batch := make([]entity.AnswerSubmission, len(session.Answers))
			for i, a := range session.Answers {
				batch[i] = entity.AnswerSubmission{WordID: a.WordID, IsCorrect: a.IsCorrect}
			}
			if _, err := s.statsService.Submit(ctx, batch); err != nil {
				return false, fmt.Errorf("failed to submit session answers: %w", err)
			}
		}

		now := s.now().UTC()
		session.Status = entity.SessionFinished
		session.FinishedAt = &now
		session.CurrentQuestion = nil
		session.Summary = s.buildSummary(session, now)
		summary = session.Summary

		log.Printf("[QuizService] Сессия %s завершена: %d/%d верно",
			session.ID, summary.CorrectAnswers, summary.TotalQuestions)
		return true, nil
	})
	return summary, err
}

// GetSession возвращает состояние сессии
func (s *QuizService) GetSession(ctx context.Context, sessionID string, userID *uint) (*entity.QuizSession, error) {
	session, err := s.loadSession(sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(session, userID); err != nil {
		return nil, err
	}
	return session, nil
}

// GenerateQuestions генерирует пакет вопросов без сессии
func (s *QuizService) GenerateQuestions(ctx context.Context, userID *uint, guestPerformance map[int]entity.PerformanceCounts, count int, qType entity.QuestionType) ([]entity.Question, error) {
	if !qType.IsValid() {
		return nil, fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, qType)
	}
	if count < 1 || count > MaxBatchQuestions {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", apperrors.ErrValidation, MaxBatchQuestions)
	}

	var user selector.Signal
	if userID != nil {
		sig, err := s.perfService.UserSignal(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user performance: %w", err)
		}
		user = sig
	} else {
		user = selector.FromPerformance(validGuestPerformance(guestPerformance))
	}

	global, err := s.statsService.GlobalSignal(ctx)
	if err != nil {
		log.Printf("[QuizService] WARNING: глобальная статистика недоступна: %v", err)
		global = nil
	}

	return s.generator.GenerateQuestions(count, qType, user, global)
}

func (s *QuizService) validateStart(params StartSessionParams) error {
	if !params.QuestionType.IsValid() {
		return fmt.Errorf("%w: unknown question type %q", apperrors.ErrValidation, params.QuestionType)
	}
	switch params.Mode {
	case entity.StudyModeTimed:
		if params.DurationSec < MinTimedDurationSec || params.DurationSec > MaxTimedDurationSec {
			return fmt.Errorf("%w: duration must be between %d and %d seconds",
				apperrors.ErrValidation, MinTimedDurationSec, MaxTimedDurationSec)
		}
	case entity.StudyModeWordCount:
		if params.TotalQuestions < 1 || params.TotalQuestions > s.maxQuestions {
			return fmt.Errorf("%w: totalQuestions must be between 1 and %d", apperrors.ErrValidation, s.maxQuestions)
		}
	case entity.StudyModeLearning:
		return fmt.Errorf("%w: learning mode has no quiz session, use /api/learning/words", apperrors.ErrValidation)
	default:
		return fmt.Errorf("%w: unknown mode %q", apperrors.ErrValidation, params.Mode)
	}
	return nil
}

func (s *QuizService) checkActive(session *entity.QuizSession) error {
	if session.Status == entity.SessionFinished {
		return ErrSessionFinished
	}
	if session.IsExpired(s.now()) {
		return ErrSessionExpired
	}
	return nil
}

// userPerformance возвращает статистику из БД для авторизованного пользователя или гостевую
func (s *QuizService) userPerformance(ctx context.Context, userID *uint, guest map[int]entity.PerformanceCounts) (map[int]entity.PerformanceCounts, error) {
	if userID != nil {
		perf, err := s.perfService.GetPerformance(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user performance: %w", err)
		}
		return perf, nil
	}

	return validGuestPerformance(guest), nil
}

// validGuestPerformance отбрасывает записи с отрицательными счетчиками
func validGuestPerformance(guest map[int]entity.PerformanceCounts) map[int]entity.PerformanceCounts {
	perf := make(map[int]entity.PerformanceCounts, len(guest))
	for id, p := range guest {
		if p.Correct < 0 || p.Incorrect < 0 {
			continue
		}
		perf[id] = p
	}
	return perf
}

// globalSnapshot сохраняет только слова, влияющие на вес
func (s *QuizService) globalSnapshot(ctx context.Context) entity.GlobalStats {
	stats, err := s.statsService.GetGlobalStats(ctx)
	if err != nil {
		log.Printf("[QuizService] WARNING: глобальная статистика недоступна: %v", err)
		return entity.GlobalStats{}
	}
	snapshot := make(entity.GlobalStats)
	for id, st := range stats {
		if st.TotalAttempts >= entity.MinGlobalAttempts {
			snapshot[id] = st
		}
	}
	return snapshot
}

func (s *QuizService) drawQuestion(session *entity.QuizSession) error {
	// Только что отвеченное слово не повторяется подряд
	var excluded map[int]struct{}
	if n := len(session.Answers); n > 0 {
		excluded = map[int]struct{}{session.Answers[n-1].WordID: {}}
	}
	q, err := s.generator.GenerateQuestionExcluding(
		session.QuestionType,
		selector.FromPerformance(session.UserPerformance),
		selector.FromGlobalStats(session.GlobalSnapshot),
		excluded,
	)
	if err != nil {
		return err
	}
	session.CurrentQuestion = q
	session.QuestionsAsked++
	return nil
}

func (s *QuizService) buildSummary(session *entity.QuizSession, finishedAt time.Time) *entity.SessionSummary {
	summary := &entity.SessionSummary{
		TotalQuestions: len(session.Answers),
		MissedWords:    []entity.Word{},
	}

	missed := make(map[int]bool)
	for _, a := range session.Answers {
		if a.IsCorrect {
			summary.CorrectAnswers++
			continue
		}
		summary.IncorrectAnswers++
		if missed[a.WordID] {
			continue
		}
		missed[a.WordID] = true
		if w, ok := s.generator.Catalog().Get(a.WordID); ok {
			summary.MissedWords = append(summary.MissedWords, w)
		}
	}
	summary.Accuracy = percent(summary.CorrectAnswers, summary.TotalQuestions)

	elapsed := finishedAt.Sub(session.StartedAt)
	if deadline, ok := session.Deadline(); ok && finishedAt.After(deadline) {
		elapsed = deadline.Sub(session.StartedAt)
	}
	summary.DurationSec = int(elapsed.Round(time.Second) / time.Second)
	return summary
}

// withSession загружает сессию под блокировкой и сохраняет ее, если fn вернула true
func (s *QuizService) withSession(sessionID string, userID *uint, fn func(*entity.QuizSession) (bool, error)) error {
	lockKey := sessionKey(sessionID) + ":lock"
	acquired, err := s.cache.SetNX(lockKey, "1", sessionLockTTL)
	if err != nil {
		return fmt.Errorf("failed to lock session: %w", err)
	}
	if !acquired {
		return ErrSessionBusy
	}
	defer func() {
		if err := s.cache.Delete(lockKey); err != nil {
			log.Printf("[QuizService] WARNING: не удалось снять блокировку %s: %v", lockKey, err)
		}
	}()

	session, err := s.loadSession(sessionID)
	if err != nil {
		return err
	}
	if err := checkOwner(session, userID); err != nil {
		return err
	}

	changed, err := fn(session)
	if err != nil {
		return err
	}
	if changed {
		return s.saveSession(session)
	}
	return nil
}

func (s *QuizService) loadSession(sessionID string) (*entity.QuizSession, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, ErrSessionNotFound
	}
	var session entity.QuizSession
	if err := s.cache.GetJSON(sessionKey(sessionID), &session); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session.UserPerformance == nil {
		session.UserPerformance = make(map[int]entity.PerformanceCounts)
	}
	return &session, nil
}

func (s *QuizService) saveSession(session *entity.QuizSession) error {
	if err := s.cache.SetJSON(sessionKey(session.ID), session, s.sessionTTL); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func checkOwner(session *entity.QuizSession, userID *uint) error {
	if session.UserID == nil {
		return nil
	}
	if userID == nil || *userID != *session.UserID {
		return ErrSessionForbidden
	}
	return nil
}

func recordCounts(perf map[int]entity.PerformanceCounts, wordID int, isCorrect bool) {
	p := perf[wordID]
	if isCorrect {
		p.Correct++
	} else {
		p.Incorrect++
	}
	perf[wordID] = p
}

func countCorrect(answers []entity.Answer) int {
	n := 0
	for _, a := range answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func formatUserID(userID *uint) string {
	if userID == nil {
		return "guest"
	}
	return fmt.Sprintf("#%d", *userID)
}
