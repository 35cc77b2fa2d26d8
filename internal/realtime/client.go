package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// sendBufferSize bounds how far a slow client may fall behind before
	// it is torn down
	sendBufferSize = 32
	writeWait      = 10 * time.Second
)

// wsConn is the subset of *websocket.Conn the client writes through
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

// Client is one live channel connection. Frames enqueued by the dispatcher
// are written to the socket by a single WritePump goroutine, so delivery to
// this connection is FIFO and never blocks delivery to any other.
type Client struct {
	UserID uint // 0 when the connection is unauthenticated

	conn      wsConn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient wraps an accepted connection. userID is 0 for anonymous clients.
func NewClient(conn wsConn, userID uint) *Client {
	return &Client{
		UserID: userID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}
}

// enqueue hands a frame to the client's write pump without blocking.
// It reports false when the client is closed or its buffer is full, in
// which case the caller should tear the client down.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	case <-c.done:
		return false
	default:
		return false
	}
}

// Send enqueues a payload for this client only, bypassing group fan-out.
// Used for the notification backlog pushed right after connect.
func (c *Client) Send(p Payload) bool {
	data, err := json.Marshal(p.frame())
	if err != nil {
		return false
	}
	return c.enqueue(data)
}

// WritePump drains the send queue onto the socket. It returns when the
// client is closed or a write fails.
func (c *Client) WritePump() {
	defer c.Close()
	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Close shuts the connection down. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
