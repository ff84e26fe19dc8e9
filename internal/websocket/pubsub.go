package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// BroadcastChannel - канал Redis, через который экземпляры обмениваются рассылками
const BroadcastChannel = "vocab:ws:broadcast"

// PubSubProvider определяет интерфейс для провайдеров публикации/подписки
type PubSubProvider interface {
	// Publish публикует сообщение в указанный канал
	Publish(ctx context.Context, channel string, message []byte) error

	// Subscribe подписывается на указанный канал и возвращает канал для сообщений.
	// Канал закрывается после отмены ctx.
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// ClusterMessage представляет сообщение, передаваемое между экземплярами Hub
type ClusterMessage struct {
	// InstanceID содержит ID отправителя для избежания дублирования
	InstanceID string `json:"instance_id"`

	// Payload содержит готовое сообщение для клиентов
	Payload json.RawMessage `json:"payload"`

	// Timestamp содержит время создания сообщения
	Timestamp time.Time `json:"timestamp"`
}

// RedisPubSub реализует PubSubProvider поверх Redis Pub/Sub
type RedisPubSub struct {
	client redis.UniversalClient
	mu     sync.Mutex
	subs   map[string]*redis.PubSub
}

// NewRedisPubSub создает провайдер, используя существующий UniversalClient.
func NewRedisPubSub(client redis.UniversalClient) (*RedisPubSub, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil for RedisPubSub")
	}
	return &RedisPubSub{
		client: client,
		subs:   make(map[string]*redis.PubSub),
	}, nil
}

// Publish публикует сообщение в указанный канал
func (p *RedisPubSub) Publish(ctx context.Context, channel string, message []byte) error {
	if err := p.client.Publish(ctx, channel, message).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe подписывается на указанный канал Redis
func (p *RedisPubSub) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	pubsub := p.client.Subscribe(ctx, channel)

	// Ждем подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to Redis channel %s: %w", channel, err)
	}

	p.mu.Lock()
	p.subs[channel] = pubsub
	p.mu.Unlock()
	log.Printf("[RedisPubSub] Подписка на канал '%s' установлена", channel)

	msgCh := make(chan []byte, 100)
	go func() {
		defer func() {
			p.mu.Lock()
			delete(p.subs, channel)
			p.mu.Unlock()
			pubsub.Close()
			close(msgCh)
			log.Printf("[RedisPubSub] Подписка на канал '%s' закрыта", channel)
		}()

		redisCh := pubsub.Channel()
		for {
			select {
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				select {
				case msgCh <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return msgCh, nil
}

// Close закрывает активные подписки; сам клиент Redis закрывает владелец
func (p *RedisPubSub) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for channel, pubsub := range p.subs {
		if err := pubsub.Close(); err != nil {
			log.Printf("[RedisPubSub] Ошибка закрытия подписки '%s': %v", channel, err)
			lastErr = err
		}
		delete(p.subs, channel)
	}
	return lastErr
}
