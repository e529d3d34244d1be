package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server is the chat gateway: it upgrades connections, frames the wire
// protocol and drives each connection's session.
type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	chat     ChatSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, chat ChatSvc) *Server {
	return &Server{
		hub:  hub,
		chat: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	sess := newSession(c, s.hub, s.chat)
	slog.Debug("ws connected", "conn", c.id)

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c, sess)

	// transport gone: same cleanup as an explicit leave, exactly once
	sess.disconnect()

	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "conn", c.id, "err", err)
	}
	slog.Debug("ws disconnected", "conn", c.id)
}

func (s *Server) readLoop(ctx context.Context, c *wsConn, sess *session) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		cmd, err := decodeCommand(data)
		if err != nil {
			// protocol errors go to the offending connection only
			_ = c.Send(errorFrame(err.Error()))
			continue
		}
		sess.handle(ctx, cmd)
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- connection ---

type wsConn struct {
	id     string
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		id:     uuid.NewString(),
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(v any) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
