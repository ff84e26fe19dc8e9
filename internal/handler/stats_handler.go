package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/handler/dto"
	"github.com/satvocab/vocab-api/internal/handler/helper"
	"github.com/satvocab/vocab-api/internal/service"
)

// StatsHandler обрабатывает глобальную статистику слов
type StatsHandler struct {
	statsService *service.GlobalStatsService
}

// NewStatsHandler создает обработчик глобальной статистики
func NewStatsHandler(statsService *service.GlobalStatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetGlobalStats возвращает статистику по всем словам
func (h *StatsHandler) GetGlobalStats(c *gin.Context) {
	stats, err := h.statsService.GetGlobalStats(c.Request.Context())
	if err != nil {
		handleError(c, "StatsHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.GlobalStatsResponse{
		Success:    true,
		Stats:      stats,
		TotalWords: len(stats),
	})
}

// Submit принимает массив ответов {wordId, isCorrect}
func (h *StatsHandler) Submit(c *gin.Context) {
	var reqs []dto.AnswerSubmissionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		badRequest(c, "Expected array of answer submissions")
		return
	}
	batch, ok := dto.ToSubmissions(reqs)
	if !ok {
		badRequest(c, "Each submission needs wordId and isCorrect")
		return
	}

	updates, err := h.statsService.Submit(c.Request.Context(), batch)
	if err != nil {
		handleError(c, "StatsHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitStatsResponse{
		Success: true,
		Message: fmt.Sprintf("Updated %d word statistics", len(updates)),
		Stats:   updates,
	})
}

// TopMissed возвращает самые сложные слова; для отсутствующих параметров сервис подставляет значения по умолчанию
func (h *StatsHandler) TopMissed(c *gin.Context) {
	limit, ok := helper.OptionalCount(c, "limit")
	if !ok {
		badRequest(c, "limit must be a non-negative number")
		return
	}
	minAttempts, ok := helper.OptionalCount(c, "minAttempts")
	if !ok {
		badRequest(c, "minAttempts must be a non-negative number")
		return
	}

	result, err := h.statsService.TopMissed(c.Request.Context(), limit, minAttempts)
	if err != nil {
		handleError(c, "StatsHandler", err)
		return
	}

	c.JSON(http.StatusOK, dto.TopMissedResponse{
		Success:           true,
		Words:             result.Words,
		TotalTrackedWords: result.TotalTrackedWords,
	})
}
