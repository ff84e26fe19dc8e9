package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/satvocab/vocab-api/internal/catalog"
	"github.com/satvocab/vocab-api/internal/websocket"
)

// HealthHandler отвечает на проверки живости
type HealthHandler struct {
	catalog   *catalog.Catalog
	wsHub     *websocket.Hub
	startedAt time.Time
}

// NewHealthHandler создает обработчик /health
func NewHealthHandler(c *catalog.Catalog, wsHub *websocket.Hub) *HealthHandler {
	return &HealthHandler{catalog: c, wsHub: wsHub, startedAt: time.Now()}
}

// Health возвращает состояние экземпляра
func (h *HealthHandler) Health(c *gin.Context) {
	resp := gin.H{
		"status":         "ok",
		"words":          h.catalog.Len(),
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	}
	if h.wsHub != nil {
		resp["websocket"] = h.wsHub.GetMetrics()
	}
	c.JSON(http.StatusOK, resp)
}
