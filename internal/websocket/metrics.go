package websocket

import (
	"sync"
	"time"
)

// HubMetrics - счетчики хаба для /health
type HubMetrics struct {
	totalConnections  int64
	activeConnections int64
	messagesSent      int64
	messagesDropped   int64
	messagesReceived  int64
	clusterMessages   int64
	startTime         time.Time

	messageTypeCounts map[string]int64

	mu sync.RWMutex
}

// NewHubMetrics создает новый экземпляр метрик Hub
func NewHubMetrics() *HubMetrics {
	return &HubMetrics{
		startTime:         time.Now(),
		messageTypeCounts: make(map[string]int64),
	}
}

// ClientConnected увеличивает счетчики подключений
func (m *HubMetrics) ClientConnected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalConnections++
	m.activeConnections++
}

// ClientDisconnected уменьшает счетчик активных подключений
func (m *HubMetrics) ClientDisconnected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeConnections > 0 {
		m.activeConnections--
	}
}

// AddMessageSent учитывает рассылку сообщения типа messageType count клиентам
func (m *HubMetrics) AddMessageSent(messageType string, count int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesSent += count
	if messageType != "" {
		m.messageTypeCounts[messageType]++
	}
}

// AddMessageDropped учитывает сообщение, не доставленное из-за переполнения буфера
func (m *HubMetrics) AddMessageDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesDropped++
}

// AddMessageReceived увеличивает счетчик полученных от клиентов сообщений
func (m *HubMetrics) AddMessageReceived() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messagesReceived++
}

// AddClusterMessage учитывает сообщение, пришедшее от другого экземпляра
func (m *HubMetrics) AddClusterMessage() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clusterMessages++
}

// Snapshot возвращает копию метрик
func (m *HubMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make(map[string]int64, len(m.messageTypeCounts))
	for k, v := range m.messageTypeCounts {
		types[k] = v
	}

	return map[string]interface{}{
		"total_connections":  m.totalConnections,
		"active_connections": m.activeConnections,
		"messages_sent":      m.messagesSent,
		"messages_dropped":   m.messagesDropped,
		"messages_received":  m.messagesReceived,
		"cluster_messages":   m.clusterMessages,
		"message_types":      types,
		"uptime_seconds":     int64(time.Since(m.startTime).Seconds()),
	}
}
