package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ClientConn is the slice of *websocket.Conn the gateway uses; tests
// substitute an in-memory implementation.
type ClientConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const sendBufferSize = 256

type Client struct {
	hub  *Hub
	conn ClientConn
	ID   string

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newClient(hub *Hub, conn ClientConn) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		ID:   uuid.New().String(),
		send: make(chan []byte, sendBufferSize),
	}
}

// enqueue hands a frame to the write pump. Reports false when the send buffer
// is full. Frames for an already closed session are discarded: broadcasts run
// concurrently with teardown and must never hit a closed channel.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// closeSend ends the write pump exactly once. Every send goes through enqueue
// under the same lock, so the channel is never closed under a sender.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// readPump processes inbound frames in arrival order; per-connection ordering
// is guaranteed by this single goroutine.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.hub.dispatch(c, data)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}
