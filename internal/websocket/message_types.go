package websocket

// Типы сообщений сервера
const (
	// GLOBAL_STATS_UPDATED рассылается после применения ответов к глобальной статистике
	GLOBAL_STATS_UPDATED = "global_stats_updated"

	// SERVER_ERROR сообщает клиенту об ошибке обработки его сообщения
	SERVER_ERROR = "server:error"

	// SERVER_HEARTBEAT - ответ на user:heartbeat
	SERVER_HEARTBEAT = "server:heartbeat"
)

// Типы сообщений клиента
const (
	// USER_HEARTBEAT - проверка соединения со стороны клиента
	USER_HEARTBEAT = "user:heartbeat"
)

// Event представляет структуру WebSocket-сообщения
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
