/*
Package transport owns the physical duplex connection to the chat server.

This file defines the Conn struct, a dialing WebSocket client. It manages the
connection lifecycle and the message pumps: inbound text frames are handed to
a publish callback in arrival order, outbound frames are queued on a buffered
channel and drained by the write pump. Reconnection after connection loss is
out of scope; loss is reported on the Done channel.
*/
package transport

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"clack/internal/pkg/errs"
	"clack/internal/pkg/logx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed to wait for a Pong message from the server.
	pongWait = 60 * time.Second

	// frequency at which the client sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size (in bytes) of an inbound frame.
	maxMessageSize = 8192

	// capacity of the outbound send queue.
	sendQueueSize = 256
)

// Conn represents an active WebSocket connection to the chat server.
type Conn struct {
	// underlying WebSocket connection object.
	conn *websocket.Conn

	// a buffered channel used to queue frames waiting to be sent.
	send chan []byte

	// done is closed when either pump terminates; the connection is unusable after that.
	done chan struct{}

	// closeOnce guards the done channel against double close.
	closeOnce sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// Dial opens a WebSocket connection to the given ws:// or wss:// URL.
func Dial(ctx context.Context, serverURL string) (*Conn, error) {
	connLogger := logx.Logger().With().
		Str("server_url", serverURL).
		Logger()

	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, serverURL, nil)
	if err != nil {
		connLogger.Error().Err(err).Msg("WebSocket dial failed")
		return nil, err
	}

	connLogger.Info().Msg("Connected to chat server")

	return &Conn{
		conn:   wsConn,
		send:   make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
		logger: connLogger,
	}, nil
}

// Start launches the read and write pumps. Each inbound text frame is passed
// to publish, in arrival order, from a single goroutine.
func (c *Conn) Start(publish func(string)) {
	go c.writePump()
	go c.readPump(publish)
}

// Done returns a channel that is closed when the connection is lost or
// closed. In-flight sends after that point fail without blocking.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// Send queues one text frame for delivery. It never blocks: a full queue or a
// closed connection fails immediately with a transport error. Delivery is
// best-effort; there is no acknowledgment.
func (c *Conn) Send(text string) error {
	select {
	case <-c.done:
		return errs.NewError(errs.ErrConnClosed)
	default:
	}

	select {
	case c.send <- []byte(text):
		return nil
	default:
		c.logger.Warn().Int("queue_len", len(c.send)).Msg("Send queue full, dropping frame")
		return errs.NewError(errs.ErrSendFailed, "send queue full")
	}
}

// Close tears the connection down and stops both pumps.
func (c *Conn) Close() {
	c.signalDone()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Connection close error")
	}
}

// signalDone marks the connection as finished exactly once.
func (c *Conn) signalDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// readPump reads frames from the WebSocket connection and hands each one to
// publish. It handles heartbeats (Pong) and terminates on connection loss.
func (c *Conn) readPump(publish func(string)) {
	defer func() {
		c.signalDone()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error in readPump")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Connection lost while reading")
			}
			return
		}

		publish(string(messageBytes))
	}
}

// writePump drains the send queue to the WebSocket connection and keeps the
// heartbeat alive with periodic Pings.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.signalDone()
	}()

	for {
		select {
		case message := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}

		case <-c.done:
			return
		}
	}
}
