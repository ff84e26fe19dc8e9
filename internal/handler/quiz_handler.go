package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/domain/entity"
	"github.com/satvocab/vocab-api/internal/handler/dto"
	"github.com/satvocab/vocab-api/internal/handler/helper"
	"github.com/satvocab/vocab-api/internal/middleware"
	"github.com/satvocab/vocab-api/internal/service"
)

// QuizHandler обрабатывает генерацию вопросов и сессии тренировки.
// Все маршруты работают и для гостей, и для авторизованных пользователей.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler создает обработчик викторины
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GenerateQuestions возвращает пакет вопросов без создания сессии
func (h *QuizHandler) GenerateQuestions(c *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "count must be a positive number")
		return
	}

	questions, err := h.quizService.GenerateQuestions(
		c.Request.Context(),
		middleware.UserID(c),
		req.Performance,
		req.Count,
		helper.ParseQuestionType(req.QuestionType),
	)
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.GenerateQuestionsResponse{Success: true, Questions: questions})
}

// StartSession создает сессию и возвращает первый вопрос
func (h *QuizHandler) StartSession(c *gin.Context) {
	var req dto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode is required")
		return
	}

	session, err := h.quizService.StartSession(c.Request.Context(), middleware.UserID(c), service.StartSessionParams{
		Mode:             entity.StudyMode(req.Mode),
		QuestionType:     helper.ParseQuestionType(req.QuestionType),
		TotalQuestions:   req.TotalQuestions,
		DurationSec:      req.DurationSec,
		GuestPerformance: req.Performance,
	})
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "session": dto.NewSessionResponse(session)})
}

// GetSession возвращает состояние сессии без правильного ответа
func (h *QuizHandler) GetSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	session, err := h.quizService.GetSession(c.Request.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": dto.NewSessionResponse(session)})
}

// GetQuestion возвращает текущий неотвеченный вопрос или выдает новый
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	q, err := h.quizService.NextQuestion(c.Request.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "question": dto.NewSessionQuestionResponse(q)})
}

// SubmitAnswer принимает ответ на текущий вопрос
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "optionId is required")
		return
	}

	result, err := h.quizService.SubmitAnswer(c.Request.Context(), sessionID, middleware.UserID(c), *req.OptionID)
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAnswerResponse(result))
}

// FinishSession завершает сессию и возвращает итог; повторный вызов безопасен
func (h *QuizHandler) FinishSession(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(string)

	summary, err := h.quizService.FinishSession(c.Request.Context(), sessionID, middleware.UserID(c))
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{Success: true, Summary: summary})
}
