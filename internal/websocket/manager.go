package websocket

import (
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Manager разбирает входящие сообщения клиентов и вызывает обработчики по типу
type Manager struct {
	hub            *Hub
	messageHandler map[string]func(data json.RawMessage, client *Client) error
}

// NewManager создает новый менеджер WebSocket со стандартными обработчиками
func NewManager(hub *Hub) *Manager {
	m := &Manager{
		hub:            hub,
		messageHandler: make(map[string]func(data json.RawMessage, client *Client) error),
	}
	m.RegisterHandler(USER_HEARTBEAT, m.handleHeartbeat)
	return m
}

// RegisterHandler регистрирует обработчик для определенного типа сообщений
func (m *Manager) RegisterHandler(eventType string, handler func(data json.RawMessage, client *Client) error) {
	m.messageHandler[eventType] = handler
}

// HandleMessage обрабатывает входящее сообщение от клиента.
// Возвращает error, если соединение нужно закрыть.
func (m *Manager) HandleMessage(message []byte, client *Client) error {
	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(message, &event); err != nil {
		m.SendErrorToClient(client, "invalid_message_format", "Invalid JSON format")
		return err
	}

	handler, ok := m.messageHandler[event.Type]
	if !ok {
		m.SendErrorToClient(client, "unknown_message_type", fmt.Sprintf("Unknown message type: %s", event.Type))
		return nil
	}
	return handler(event.Data, client)
}

// SendErrorToClient отправляет стандартизированное сообщение об ошибке клиенту.
// Этот метод НЕ закрывает соединение.
func (m *Manager) SendErrorToClient(client *Client, code string, message string) {
	errorEvent := Event{
		Type: SERVER_ERROR,
		Data: map[string]string{
			"code":    code,
			"message": message,
		},
	}
	if err := m.hub.SendJSON(client, errorEvent); err != nil {
		log.Printf("[WebSocketManager] Ошибка отправки ошибки клиенту %s: %v", client.ConnectionID, err)
	}
}

func (m *Manager) handleHeartbeat(_ json.RawMessage, client *Client) error {
	resp := Event{
		Type: SERVER_HEARTBEAT,
		Data: map[string]interface{}{"timestamp": time.Now().UnixMilli()},
	}
	if err := m.hub.SendJSON(client, resp); err != nil {
		log.Printf("[WebSocketManager] WARNING: Ошибка при отправке server:heartbeat клиенту %s: %v", client.ConnectionID, err)
	}
	return nil
}
