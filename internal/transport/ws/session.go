package ws

import (
	"context"
	"errors"
	"log/slog"

	"github.com/streamhub/stream-service/internal/domain"
)

// ChatSvc is the pipeline surface the gateway consumes.
type ChatSvc interface {
	SubmitMessage(ctx context.Context, streamID, userID int64, content string) (*domain.ChatEvent, error)
	History(ctx context.Context, streamID int64) ([]domain.ChatEvent, error)
}

// session is the per-connection state machine. Invariant: a connection is
// a member of at most one room at any time.
type session struct {
	conn Conn
	hub  *Hub
	chat ChatSvc

	streamID int64
	joined   bool
}

func newSession(conn Conn, hub *Hub, chat ChatSvc) *session {
	return &session{conn: conn, hub: hub, chat: chat}
}

func (s *session) handle(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case joinCmd:
		s.handleJoin(ctx, c)
	case messageCmd:
		s.handleMessage(ctx, c)
	case leaveCmd:
		s.leave()
	}
}

// handleJoin switches the session's membership to the requested room and
// replays recent history to this connection only. Rejoining the current
// room just resends history.
func (s *session) handleJoin(ctx context.Context, cmd joinCmd) {
	if s.joined && s.streamID != cmd.streamID {
		s.hub.Leave(s.streamID, s.conn)
	}
	s.streamID = cmd.streamID
	s.joined = true
	s.hub.Join(cmd.streamID, s.conn)

	history, err := s.chat.History(ctx, cmd.streamID)
	if err != nil {
		slog.Warn("chat history load failed", "stream", cmd.streamID, "err", err)
		s.sendError(errHistoryFailed)
		return
	}
	_ = s.conn.Send(historyFrame(history))
}

func (s *session) handleMessage(ctx context.Context, cmd messageCmd) {
	if !s.joined {
		s.sendError(errNotJoined)
		return
	}
	if cmd.content == "" || cmd.userID <= 0 {
		s.sendError(errMissingFields)
		return
	}

	if _, err := s.chat.SubmitMessage(ctx, s.streamID, cmd.userID, cmd.content); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.sendError(errUserNotFound)
			return
		}
		s.sendError(errInvalidMessage)
	}
}

func (s *session) leave() {
	if !s.joined {
		return
	}
	s.hub.Leave(s.streamID, s.conn)
	s.joined = false
	s.streamID = 0
}

// disconnect performs the same cleanup as an explicit leave; the gateway
// calls it exactly once when the transport closes.
func (s *session) disconnect() {
	s.leave()
}

func (s *session) sendError(msg string) {
	_ = s.conn.Send(errorFrame(msg))
}
