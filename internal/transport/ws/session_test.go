package ws

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/streamhub/stream-service/internal/domain"
)

type submitted struct {
	streamID int64
	userID   int64
	content  string
}

// fakeChat implements ChatSvc the way the real pipeline behaves: on submit
// it broadcasts the enriched event through the hub.
type fakeChat struct {
	mu        sync.Mutex
	hub       *Hub
	history   map[int64][]domain.ChatEvent
	histErr   error
	submitErr error
	submits   []submitted
	nextID    int64
}

func (f *fakeChat) SubmitMessage(_ context.Context, streamID, userID int64, content string) (*domain.ChatEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	f.nextID++
	f.submits = append(f.submits, submitted{streamID: streamID, userID: userID, content: content})
	ev := domain.ChatEvent{
		ID:       f.nextID,
		StreamID: streamID,
		UserID:   userID,
		Username: "user",
		Message:  content,
	}
	if f.hub != nil {
		NewEventBroadcaster(f.hub).Broadcast(streamID, &ev)
	}
	return &ev, nil
}

func (f *fakeChat) History(_ context.Context, streamID int64) ([]domain.ChatEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history[streamID], nil
}

func lastErrorFrame(t *testing.T, c *fakeConn) ErrorFrame {
	t.Helper()
	if len(c.sent) == 0 {
		t.Fatal("expected a frame to be sent")
	}
	f, ok := c.sent[len(c.sent)-1].(ErrorFrame)
	if !ok {
		t.Fatalf("expected ErrorFrame, got %T", c.sent[len(c.sent)-1])
	}
	return f
}

func TestSessionMessageWhileUnjoined(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)

	s.handle(context.Background(), messageCmd{content: "hi", userID: 1})

	if f := lastErrorFrame(t, conn); f.Message != "Not joined to any stream" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}
	if len(chat.submits) != 0 {
		t.Fatal("no message must be submitted while unjoined")
	}
}

func TestSessionJoinSendsHistory(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub, history: map[int64][]domain.ChatEvent{
		5: {{ID: 1, StreamID: 5, Message: "old"}},
	}}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)

	s.handle(context.Background(), joinCmd{streamID: 5})

	if !s.joined || s.streamID != 5 {
		t.Fatalf("expected Joined(5), got joined=%v stream=%d", s.joined, s.streamID)
	}
	if _, ok := hub.rooms[5][conn]; !ok {
		t.Fatal("expected registry membership in room 5")
	}
	hist, ok := conn.sent[len(conn.sent)-1].(HistoryFrame)
	if !ok {
		t.Fatalf("expected HistoryFrame, got %T", conn.sent[len(conn.sent)-1])
	}
	if len(hist.Messages) != 1 || hist.Messages[0].Message != "old" {
		t.Fatalf("unexpected history payload: %+v", hist.Messages)
	}
}

func TestSessionJoinEmptyRoom(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)

	s.handle(context.Background(), joinCmd{streamID: 9})

	hist := conn.sent[0].(HistoryFrame)
	if hist.Messages == nil || len(hist.Messages) != 0 {
		t.Fatalf("expected empty history, got %+v", hist.Messages)
	}
}

func TestSessionRejoinSwitchesRooms(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)
	ctx := context.Background()

	s.handle(ctx, joinCmd{streamID: 1})
	s.handle(ctx, joinCmd{streamID: 2})

	if _, ok := hub.rooms[1]; ok {
		t.Fatal("expected room 1 membership to be cleaned up on switch")
	}
	if _, ok := hub.rooms[2][conn]; !ok {
		t.Fatal("expected membership in room 2")
	}

	// at most one room at any time
	total := 0
	for _, rs := range hub.rooms {
		if _, ok := rs[conn]; ok {
			total++
		}
	}
	if total != 1 {
		t.Fatalf("single-room invariant violated: member of %d rooms", total)
	}
}

func TestSessionSameRoomRejoinResendsHistory(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)
	ctx := context.Background()

	s.handle(ctx, joinCmd{streamID: 5})
	s.handle(ctx, joinCmd{streamID: 5})

	if len(hub.rooms[5]) != 1 {
		t.Fatalf("expected no duplicate membership, got %d", len(hub.rooms[5]))
	}
	if len(conn.sent) != 2 {
		t.Fatalf("expected history to be resent, got %d frames", len(conn.sent))
	}
}

func TestSessionHistoryFailureKeepsMembership(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub, histErr: errors.New("db down")}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)

	s.handle(context.Background(), joinCmd{streamID: 5})

	if f := lastErrorFrame(t, conn); f.Message != "Failed to load chat history" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}
	if _, ok := hub.rooms[5][conn]; !ok {
		t.Fatal("join already applied; membership must survive a history failure")
	}
}

func TestSessionMessageMissingFields(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)
	ctx := context.Background()
	s.handle(ctx, joinCmd{streamID: 5})

	s.handle(ctx, messageCmd{content: "", userID: 1})
	if f := lastErrorFrame(t, conn); f.Message != "Missing message content or user ID" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}

	s.handle(ctx, messageCmd{content: "hi", userID: 0})
	if f := lastErrorFrame(t, conn); f.Message != "Missing message content or user ID" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}
	if len(chat.submits) != 0 {
		t.Fatal("nothing must be submitted on validation failure")
	}
}

func TestSessionMessageErrorMapping(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	ctx := context.Background()

	chat := &fakeChat{hub: hub, submitErr: domain.ErrUserNotFound}
	s := newSession(conn, hub, chat)
	s.handle(ctx, joinCmd{streamID: 5})
	s.handle(ctx, messageCmd{content: "hi", userID: 99})
	if f := lastErrorFrame(t, conn); f.Message != "User not found" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}

	chat.submitErr = errors.New("insert failed")
	s.handle(ctx, messageCmd{content: "hi", userID: 1})
	if f := lastErrorFrame(t, conn); f.Message != "Invalid chat message data" {
		t.Fatalf("unexpected error text: %q", f.Message)
	}
}

func TestSessionMessageBroadcastsToRoom(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	a, b := &fakeConn{}, &fakeConn{}
	sa := newSession(a, hub, chat)
	sb := newSession(b, hub, chat)
	ctx := context.Background()

	sa.handle(ctx, joinCmd{streamID: 5})
	sb.handle(ctx, joinCmd{streamID: 5})

	sa.handle(ctx, messageCmd{content: "hi", userID: 1})

	for name, c := range map[string]*fakeConn{"a": a, "b": b} {
		f, ok := c.sent[len(c.sent)-1].(EventFrame)
		if !ok {
			t.Fatalf("%s: expected EventFrame, got %T", name, c.sent[len(c.sent)-1])
		}
		if f.Type != TypeChat || f.Message.Message != "hi" {
			t.Fatalf("%s: unexpected frame %+v", name, f)
		}
	}
}

func TestSessionLeaveAndDisconnect(t *testing.T) {
	hub := NewHub()
	chat := &fakeChat{hub: hub}
	conn := &fakeConn{}
	s := newSession(conn, hub, chat)
	ctx := context.Background()

	s.handle(ctx, joinCmd{streamID: 5})
	s.handle(ctx, leaveCmd{})

	if s.joined {
		t.Fatal("expected Unjoined after leave")
	}
	if _, ok := hub.rooms[5]; ok {
		t.Fatal("expected sole member's room to be deleted")
	}

	// leave when already unjoined is a no-op, not an error
	frames := len(conn.sent)
	s.handle(ctx, leaveCmd{})
	if len(conn.sent) != frames {
		t.Fatal("no frame expected for redundant leave")
	}

	// disconnect behaves exactly like leave
	s.handle(ctx, joinCmd{streamID: 6})
	s.disconnect()
	if _, ok := hub.rooms[6]; ok {
		t.Fatal("expected disconnect to clean up membership")
	}
	s.disconnect() // idempotent
}
