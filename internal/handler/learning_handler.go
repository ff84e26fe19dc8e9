package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/handler/helper"
	"github.com/satvocab/vocab-api/internal/service"
)

// LearningHandler выдает карточки для режима обучения
type LearningHandler struct {
	learningService *service.LearningService
}

// NewLearningHandler создает обработчик режима обучения
func NewLearningHandler(learningService *service.LearningService) *LearningHandler {
	return &LearningHandler{learningService: learningService}
}

// GetWords возвращает count различных слов, трудные слова выпадают чаще
func (h *LearningHandler) GetWords(c *gin.Context) {
	count, ok := helper.QueryInt(c, "count", 0)
	if !ok {
		badRequest(c, "count must be a number")
		return
	}

	words, err := h.learningService.SelectWords(c.Request.Context(), count)
	if err != nil {
		handleError(c, "LearningHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "words": words})
}
