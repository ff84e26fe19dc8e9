package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/satvocab/vocab-api/internal/websocket"
)

// WSHandler подключает клиентов к ленте обновлений глобальной статистики
type WSHandler struct {
	wsHub     *websocket.Hub
	wsManager *websocket.Manager
	upgrader  gorillaws.Upgrader
}

// NewWSHandler создает обработчик WebSocket.
// allowedOrigins синхронизирован с CORS; пустой Origin разрешен (не браузерные клиенты).
func NewWSHandler(wsHub *websocket.Hub, wsManager *websocket.Manager, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &WSHandler{
		wsHub:     wsHub,
		wsManager: wsManager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				if _, ok := allowed[origin]; ok {
					return true
				}
				log.Printf("[WSHandler] Отклонен origin: %s", origin)
				return false
			},
			EnableCompression: true,
		},
	}
}

// HandleConnection переводит запрос в WebSocket и запускает насосы клиента
func (h *WSHandler) HandleConnection(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade уже ответил клиенту
		log.Printf("[WSHandler] Ошибка upgrade: %v", err)
		return
	}

	client := websocket.NewClient(h.wsHub, conn)
	log.Printf("[WSHandler] Подключен клиент %s", client.ConnectionID)
	client.StartPumps(h.wsManager.HandleMessage)
}
