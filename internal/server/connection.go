package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection is one websocket client watching a session.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	session   string
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeMu   sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, session string, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 256),
		session: session,
		server:  server,
		logger:  logger.WithPrefix("conn").With("session", session),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Done is closed once the connection shuts down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.closeMu.Lock()
		c.closed = true
		close(c.send)
		c.closeMu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues msg without blocking. A client that cannot keep up is
// disconnected.
func (c *Connection) SendMessage(msg *Message) error {
	c.closeMu.RLock()
	if c.closed {
		c.closeMu.RUnlock()
		return ErrConnectionClosed
	}
	select {
	case c.send <- msg:
		c.closeMu.RUnlock()
		return nil
	default:
		c.closeMu.RUnlock()
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming commands from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}
		c.handleCommand(cmd)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleCommand applies one command and replies with the new state or an
// error. Engine events reach the client separately through the session.
func (c *Connection) handleCommand(cmd Command) {
	c.logger.Debug("Received command", "type", cmd.Type)

	if cmd.Type == MessageTypeState {
		s, err := c.server.sessions.Get(c.ctx, c.session)
		if err != nil {
			c.sendError(cmd.RequestID, err)
			return
		}
		c.reply(MessageTypeState, cmd.RequestID, s.Snapshot())
		return
	}

	args, err := cmd.Args()
	if err != nil {
		c.sendError(cmd.RequestID, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	move, ok := commandMove(cmd.Type, args)
	if !ok {
		c.sendError(cmd.RequestID, fmt.Errorf("%w: unknown command %q", errBadRequest, cmd.Type))
		return
	}

	view, err := c.server.sessions.Mutate(c.ctx, c.session, move)
	if err != nil {
		c.sendError(cmd.RequestID, err)
		return
	}
	c.reply(MessageTypeState, cmd.RequestID, view)
}

func (c *Connection) reply(t MessageType, requestID string, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to encode reply", "error", err)
		return
	}
	msg.RequestID = requestID
	_ = c.SendMessage(msg)
}

func (c *Connection) sendError(requestID string, err error) {
	status, body := errorStatus(err)
	if status >= 500 {
		c.logger.Error("Command failed", "error", err)
	}
	c.reply(MessageTypeError, requestID, body)
}
