package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/satvocab/vocab-api/internal/domain/entity"
)

const (
	broadcastBufferSize = 256
	publishTimeout      = 2 * time.Second
)

type directMessage struct {
	client  *Client
	message []byte
}

// Hub хранит подключенных клиентов и рассылает им события.
// Все изменения набора клиентов происходят в горутине Run.
type Hub struct {
	instanceID string

	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage

	// pubsub может быть nil: тогда рассылка только локальная
	pubsub PubSubProvider

	clientCount atomic.Int64
	metrics     *HubMetrics
	done        chan struct{}
}

// NewHub создает хаб; pubsub может быть nil
func NewHub(pubsub PubSubProvider) *Hub {
	return &Hub{
		instanceID: uuid.NewString(),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, broadcastBufferSize),
		direct:     make(chan directMessage, broadcastBufferSize),
		pubsub:     pubsub,
		metrics:    NewHubMetrics(),
		done:       make(chan struct{}),
	}
}

// Run обслуживает хаб до отмены ctx. При остановке закрывает всех клиентов.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	var clusterCh <-chan []byte
	if h.pubsub != nil {
		ch, err := h.pubsub.Subscribe(ctx, BroadcastChannel)
		if err != nil {
			log.Printf("[WebSocketHub] WARNING: подписка на кластерный канал не удалась, рассылка только локальная: %v", err)
		} else {
			clusterCh = ch
		}
	}

	log.Printf("[WebSocketHub] Хаб %s запущен", h.instanceID)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.removeClient(client)
			}
			log.Printf("[WebSocketHub] Хаб %s остановлен", h.instanceID)
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.clientCount.Store(int64(len(h.clients)))
			h.metrics.ClientConnected()

		case client := <-h.unregister:
			h.removeClient(client)

		case message := <-h.broadcast:
			h.deliver(message)

		case dm := <-h.direct:
			if _, ok := h.clients[dm.client]; ok && !dm.client.trySend(dm.message) {
				h.metrics.AddMessageDropped()
			}

		case raw, ok := <-clusterCh:
			if !ok {
				clusterCh = nil
				continue
			}
			h.handleClusterMessage(raw)
		}
	}
}

// Done закрывается после остановки Run
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// Register добавляет клиента; false, если хаб уже остановлен
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister удаляет клиента
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// BroadcastJSON отправляет событие всем клиентам этого и других экземпляров
func (h *Hub) BroadcastJSON(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}

	h.broadcastLocal(data)

	if h.pubsub != nil {
		msg, err := json.Marshal(ClusterMessage{
			InstanceID: h.instanceID,
			Payload:    data,
			Timestamp:  time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal cluster message: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := h.pubsub.Publish(ctx, BroadcastChannel, msg); err != nil {
			return err
		}
	}
	return nil
}

// BroadcastStatsUpdate рассылает обновления глобальной статистики
func (h *Hub) BroadcastStatsUpdate(updates []entity.WordStatUpdate) {
	if len(updates) == 0 {
		return
	}
	if err := h.BroadcastJSON(Event{Type: GLOBAL_STATS_UPDATED, Data: updates}); err != nil {
		log.Printf("[WebSocketHub] Ошибка рассылки обновления статистики: %v", err)
	}
}

// SendJSON отправляет событие одному клиенту
func (h *Hub) SendJSON(client *Client, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type, err)
	}
	select {
	case h.direct <- directMessage{client: client, message: data}:
	case <-h.done:
	default:
		h.metrics.AddMessageDropped()
	}
	return nil
}

// ClientCount возвращает количество подключенных клиентов
func (h *Hub) ClientCount() int {
	return int(h.clientCount.Load())
}

// GetMetrics возвращает метрики хаба
func (h *Hub) GetMetrics() map[string]interface{} {
	m := h.metrics.Snapshot()
	m["instance_id"] = h.instanceID
	m["clients"] = h.ClientCount()
	m["cluster_enabled"] = h.pubsub != nil
	return m
}

func (h *Hub) broadcastLocal(data []byte) {
	select {
	case h.broadcast <- data:
	case <-h.done:
	default:
		log.Printf("[WebSocketHub] Буфер рассылки переполнен, сообщение отброшено")
		h.metrics.AddMessageDropped()
	}
}

func (h *Hub) handleClusterMessage(raw []byte) {
	var msg ClusterMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Printf("[WebSocketHub] Некорректное кластерное сообщение: %v", err)
		return
	}
	if msg.InstanceID == h.instanceID {
		return
	}
	h.metrics.AddClusterMessage()
	h.deliver(msg.Payload)
}

// deliver вызывается только из Run
func (h *Hub) deliver(message []byte) {
	var sent int64
	for client := range h.clients {
		if client.trySend(message) {
			sent++
			continue
		}
		// медленный клиент отключается
		log.Printf("[WebSocketHub] Буфер клиента %s переполнен, отключаем", client.ConnectionID)
		h.metrics.AddMessageDropped()
		h.removeClient(client)
	}
	h.metrics.AddMessageSent(messageTypeFromBytes(message), sent)
}

// removeClient вызывается только из Run
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	h.clientCount.Store(int64(len(h.clients)))
	h.metrics.ClientDisconnected()
	client.CloseSend()
}

// messageTypeFromBytes пытается извлечь тип сообщения из JSON байтов
func messageTypeFromBytes(message []byte) string {
	var event struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(message, &event) == nil && event.Type != "" {
		return event.Type
	}
	return "unknown"
}
