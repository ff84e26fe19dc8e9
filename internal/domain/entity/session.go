package entity

import "time"

// StudyMode определяет режим тренировки
type StudyMode string

const (
	StudyModeTimed     StudyMode = "timed"
	StudyModeWordCount StudyMode = "word_count"
	StudyModeLearning  StudyMode = "learning"
)

// SessionStatus - состояние сессии
type SessionStatus string

const (
	SessionActive   SessionStatus = "active"
	SessionFinished SessionStatus = "finished"
)

// Answer - ответ пользователя на вопрос сессии
type Answer struct {
	QuestionNumber   int       `json:"questionNumber"`
	WordID           int       `json:"wordId"`
	SelectedOptionID int       `json:"selectedOptionId"`
	CorrectOptionID  int       `json:"correctOptionId"`
	IsCorrect        bool      `json:"isCorrect"`
	AnsweredAt       time.Time `json:"answeredAt"`
}

// QuizSession хранит состояние сессии тренировки между запросами
type QuizSession struct {
	ID             string        `json:"id"`
	UserID         *uint         `json:"userId,omitempty"`
	Mode           StudyMode     `json:"mode"`
	QuestionType   QuestionType  `json:"questionType"`
	TotalQuestions int           `json:"totalQuestions,omitempty"`
	DurationSec    int           `json:"durationSec,omitempty"`
	Status         SessionStatus `json:"status"`
	StartedAt      time.Time     `json:"startedAt"`
	FinishedAt     *time.Time    `json:"finishedAt,omitempty"`

	// CurrentQuestion - последний выданный вопрос, на который еще не ответили
	CurrentQuestion *Question `json:"currentQuestion,omitempty"`
	QuestionsAsked  int       `json:"questionsAsked"`
	Answers         []Answer  `json:"answers"`

	// Снимок персональной статистики на момент старта; обновляется ответами сессии
	UserPerformance map[int]PerformanceCounts `json:"userPerformance"`

	// Снимок глобальной статистики на момент старта; хранятся только слова с достаточным числом попыток
	GlobalSnapshot GlobalStats `json:"globalSnapshot,omitempty"`

	Summary *SessionSummary `json:"summary,omitempty"`
}

// Deadline возвращает время окончания для режима на время
func (s *QuizSession) Deadline() (time.Time, bool) {
	if s.Mode != StudyModeTimed || s.DurationSec <= 0 {
		return time.Time{}, false
	}
	return s.StartedAt.Add(time.Duration(s.DurationSec) * time.Second), true
}

// IsExpired проверяет, истекло ли время сессии
func (s *QuizSession) IsExpired(now time.Time) bool {
	deadline, ok := s.Deadline()
	return ok && !now.Before(deadline)
}

// IsComplete проверяет, ответил ли пользователь на все вопросы режима word_count
func (s *QuizSession) IsComplete() bool {
	return s.Mode == StudyModeWordCount && s.TotalQuestions > 0 && len(s.Answers) >= s.TotalQuestions
}

// SessionSummary - итог сессии
type SessionSummary struct {
	TotalQuestions   int    `json:"totalQuestions"`
	CorrectAnswers   int    `json:"correctAnswers"`
	IncorrectAnswers int    `json:"incorrectAnswers"`
	Accuracy         int    `json:"accuracy"` // проценты, округленные
	MissedWords      []Word `json:"missedWords"`
	DurationSec      int    `json:"duration"`
}
