package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/handler/dto"
	"github.com/satvocab/vocab-api/internal/service"
)

// UserHandler обрабатывает персональную статистику пользователя
type UserHandler struct {
	perfService   *service.PerformanceService
	exportService *service.ExportService
}

// NewUserHandler создает обработчик персональной статистики
func NewUserHandler(perfService *service.PerformanceService, exportService *service.ExportService) *UserHandler {
	return &UserHandler{
		perfService:   perfService,
		exportService: exportService,
	}
}

// GetPerformance возвращает счетчики по словам: {wordId: {correct, incorrect}}
func (h *UserHandler) GetPerformance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	perf, err := h.perfService.GetPerformance(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "performance": perf})
}

// UpdatePerformance записывает один ответ пользователя
func (h *UserHandler) UpdatePerformance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request data")
		return
	}

	if err := h.perfService.UpdatePerformance(c.Request.Context(), userID, *req.WordID, *req.IsCorrect); err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Performance updated successfully"})
}

// GetStats возвращает агрегированную статистику пользователя
func (h *UserHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.perfService.CalculateUserStats(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

// ExportStats отдает статистику файлом xlsx или csv
func (h *UserHandler) ExportStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := h.exportService.ExportUserStats(c.Request.Context(), userID, service.ExportFormat(c.Query("format")))
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// ResetPerformance удаляет всю персональную статистику
func (h *UserHandler) ResetPerformance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.perfService.ResetPerformance(c.Request.Context(), userID); err != nil {
		handleError(c, "UserHandler", err)
		return
	}
	log.Printf("[UserHandler] Статистика пользователя ID=%d сброшена", userID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Performance reset"})
}
