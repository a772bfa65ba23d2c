package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeBuffer  = 64
	writeTimeout = 5 * time.Second
)

// Connection wraps one live socket of one authenticated user. All writes go
// through a single writer goroutine so concurrent fan-outs never interleave
// frames on the wire.
type Connection struct {
	userID string
	role   string

	sock      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	log       *slog.Logger
}

func newConnection(sock *websocket.Conn, userID, role string, log *slog.Logger) *Connection {
	c := &Connection{
		userID: userID,
		role:   role,
		sock:   sock,
		send:   make(chan []byte, writeBuffer),
		done:   make(chan struct{}),
		log:    log,
	}
	go c.writeLoop()
	return c
}

func (c *Connection) UserID() string { return c.userID }
func (c *Connection) Role() string   { return c.role }

func (c *Connection) writeLoop() {
	for {
		select {
		case data := <-c.send:
			if err := c.sock.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				return
			}
			if err := c.sock.WriteMessage(websocket.TextMessage, data); err != nil {
				c.log.Debug("write failed, dropping connection", "user_id", c.userID, "error", err)
				return
			}
		case <-c.done:
			return
		}
	}
}

// WriteEvent queues an envelope for delivery. A full buffer or a closed
// connection drops the frame; live delivery is at most once and the durable
// copy already exists, so dropping is preferable to blocking the caller.
func (c *Connection) WriteEvent(envelope Envelope) {
	data, err := json.Marshal(envelope)
	if err != nil {
		c.log.Error("event marshal failed", "event", envelope.Event, "error", err)
		return
	}

	select {
	case c.send <- data:
	case <-c.done:
	default:
		c.log.Warn("send buffer full, dropping event", "user_id", c.userID, "event", envelope.Event)
	}
}

// Close shuts the socket down. Safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.sock.Close()
	})
}
