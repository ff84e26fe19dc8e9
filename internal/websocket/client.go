package websocket

import (
	"bytes"
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Время, которое разрешено писать сообщение клиенту.
	writeWait = 10 * time.Second

	// Время, которое разрешено клиенту читать следующее сообщение.
	pongWait = 30 * time.Second

	// Периодичность отправки ping-сообщений клиенту.
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер сообщения от клиента
	maxMessageSize = 512

	// Размер буфера канала отправки
	defaultClientBufferSize = 64
)

var (
	newline = []byte{'\n'}
	space   = []byte{' '}
)

// MessageHandler обрабатывает входящее сообщение; ошибка закрывает соединение
type MessageHandler func(message []byte, client *Client) error

// Client является посредником между WebSocket соединением и hub.
type Client struct {
	// Уникальный ID для каждого соединения
	ConnectionID string

	hub  *Hub
	conn *websocket.Conn

	// Буферизованный канал для исходящих сообщений
	send chan []byte

	// Флаг, указывающий что канал send закрыт (для предотвращения panic)
	sendClosed atomic.Bool
}

// NewClient создает нового клиента
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		ConnectionID: uuid.NewString(),
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, defaultClientBufferSize),
	}
}

// StartPumps регистрирует клиента и запускает горутины чтения и записи
func (c *Client) StartPumps(handler MessageHandler) {
	if !c.hub.Register(c) {
		log.Printf("[WebSocketClient %s] Хаб остановлен, соединение закрывается", c.ConnectionID)
		c.conn.Close()
		return
	}

	go c.writePump()
	go c.readPump(handler)
}

// readPump читает сообщения от клиента и передает их обработчику
func (c *Client) readPump(handler MessageHandler) {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WebSocketClient %s] Ошибка чтения: %v", c.ConnectionID, err)
			}
			return
		}
		c.hub.metrics.AddMessageReceived()

		if err := safeHandleMessage(message, c, handler); err != nil {
			log.Printf("[WebSocketClient %s] Ошибка обработчика: %v. Соединение закрывается.", c.ConnectionID, err)
			return
		}
	}
}

// safeHandleMessage - обертка для вызова обработчика с recover
func safeHandleMessage(message []byte, client *Client, handler MessageHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC recovered in message handler for ConnID: %s. Panic: %v\nStack trace:\n%s",
				client.ConnectionID, r, string(debug.Stack()))
			err = fmt.Errorf("panic recovered: %v", r)
		}
	}()
	message = bytes.TrimSpace(bytes.Replace(message, newline, space, -1))
	if handler == nil {
		return nil
	}
	return handler(message, client)
}

// writePump отправляет сообщения клиенту из канала send
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// Канал send закрыт хабом
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WebSocketClient %s] Ошибка записи: %v", c.ConnectionID, err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend ставит сообщение в очередь без блокировки. Вызывается только из горутины хаба.
func (c *Client) trySend(message []byte) bool {
	if c.sendClosed.Load() {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// CloseSend безопасно закрывает канал send (только один раз)
func (c *Client) CloseSend() bool {
	if c.sendClosed.CompareAndSwap(false, true) {
		close(c.send)
		return true
	}
	return false
}
