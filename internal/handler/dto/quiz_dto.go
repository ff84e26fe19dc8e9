package dto

import (
	"time"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/handler/helper"
	"github.com/satvocab/vocab-api/internal/service"
)

// GenerateQuestionsRequest - запрос пакета вопросов без сессии.
// Performance передают гости: это статистика из их localStorage.
type GenerateQuestionsRequest struct {
	Count        int                              `json:"count" binding:"required,min=1"`
	QuestionType string                           `json:"questionType"`
	Performance  map[int]entity.PerformanceCounts `json:"performance"`
}

// GenerateQuestionsResponse содержит вопросы вместе с правильными ответами:
// клиент проверяет их сам
type GenerateQuestionsResponse struct {
	Success   bool              `json:"success"`
	Questions []entity.Question `json:"questions"`
}

// StartSessionRequest - запрос на начало сессии
type StartSessionRequest struct {
	Mode           string                           `json:"mode" binding:"required"`
	QuestionType   string                           `json:"questionType"`
	TotalQuestions int                              `json:"totalQuestions"`
	DurationSec    int                              `json:"durationSec"`
	Performance    map[int]entity.PerformanceCounts `json:"performance"`
}

// SubmitAnswerRequest - ответ на текущий вопрос сессии
type SubmitAnswerRequest struct {
	OptionID *int `json:"optionId" binding:"required"`
}

// SessionQuestionResponse - вопрос сессии без правильного ответа
type SessionQuestionResponse struct {
	Type    entity.QuestionType     `json:"type"`
	Prompt  string                  `json:"prompt"`
	Options []entity.QuestionOption `json:"options"`
}

// SessionResponse - состояние сессии для клиента
type SessionResponse struct {
	ID             string                   `json:"id"`
	Mode           entity.StudyMode         `json:"mode"`
	QuestionType   entity.QuestionType      `json:"questionType"`
	Status         entity.SessionStatus     `json:"status"`
	TotalQuestions int                      `json:"totalQuestions,omitempty"`
	DurationSec    int                      `json:"durationSec,omitempty"`
	StartedAt      time.Time                `json:"startedAt"`
	Deadline       *time.Time               `json:"deadline,omitempty"`
	Answered       int                      `json:"answered"`
	Question       *SessionQuestionResponse `json:"question,omitempty"`
}

// AnswerResponse - результат ответа; следующий вопрос также без правильного ответа
type AnswerResponse struct {
	Success         bool                     `json:"success"`
	IsCorrect       bool                     `json:"isCorrect"`
	CorrectOptionID int                      `json:"correctOptionId"`
	Word            entity.Word              `json:"word"`
	Answered        int                      `json:"answered"`
	CorrectAnswers  int                      `json:"correctAnswers"`
	Completed       bool                     `json:"completed"`
	NextQuestion    *SessionQuestionResponse `json:"nextQuestion,omitempty"`
}

// SummaryResponse - итог сессии
type SummaryResponse struct {
	Success bool                   `json:"success"`
	Summary *entity.SessionSummary `json:"summary"`
}

// NewSessionQuestionResponse скрывает правильный ответ и слово вопроса
func NewSessionQuestionResponse(q *entity.Question) *SessionQuestionResponse {
	if q == nil {
		return nil
	}
	return &SessionQuestionResponse{
		Type:    q.Type,
		Prompt:  helper.QuestionPrompt(q),
		Options: helper.CopyOptions(q.Options),
	}
}

// NewSessionResponse создает DTO сессии
func NewSessionResponse(session *entity.QuizSession) SessionResponse {
	resp := SessionResponse{
		ID:             session.ID,
		Mode:           session.Mode,
		QuestionType:   session.QuestionType,
		Status:         session.Status,
		TotalQuestions: session.TotalQuestions,
		DurationSec:    session.DurationSec,
		StartedAt:      session.StartedAt,
		Answered:       len(session.Answers),
		Question:       NewSessionQuestionResponse(session.CurrentQuestion),
	}
	if deadline, ok := session.Deadline(); ok {
		resp.Deadline = &deadline
	}
	return resp
}

// NewAnswerResponse создает DTO результата ответа
func NewAnswerResponse(result *service.AnswerResult) AnswerResponse {
	return AnswerResponse{
		Success:         true,
		IsCorrect:       result.IsCorrect,
		CorrectOptionID: result.CorrectOptionID,
		Word:            result.Word,
		Answered:        result.Answered,
		CorrectAnswers:  result.CorrectAnswers,
		Completed:       result.Completed,
		NextQuestion:    NewSessionQuestionResponse(result.NextQuestion),
	}
}
