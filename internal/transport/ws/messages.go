package ws

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/streamhub/stream-service/internal/domain"
)

// Frame type discriminators on the wire.
const (
	TypeJoin     = "join"     // inbound: join a stream's chat room
	TypeMessage  = "message"  // inbound: submit a chat message
	TypeLeave    = "leave"    // inbound: leave the current room
	TypeHistory  = "history"  // outbound: recent messages after a join
	TypeChat     = "chat"     // outbound: broadcast chat message
	TypeDonation = "donation" // outbound: broadcast donation message
	TypeError    = "error"    // outbound: protocol error, sender only
)

// Error texts are part of the wire contract; clients match on them.
const (
	errInvalidFormat  = "Invalid message format"
	errUnknownType    = "Unknown message type"
	errInvalidStream  = "Invalid stream ID"
	errNotJoined      = "Not joined to any stream"
	errMissingFields  = "Missing message content or user ID"
	errUserNotFound   = "User not found"
	errInvalidMessage = "Invalid chat message data"
	errHistoryFailed  = "Failed to load chat history"
)

type HistoryFrame struct {
	Type     string             `json:"type"`
	Messages []domain.ChatEvent `json:"messages"`
}

type EventFrame struct {
	Type    string            `json:"type"`
	Message *domain.ChatEvent `json:"message"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func historyFrame(events []domain.ChatEvent) HistoryFrame {
	if events == nil {
		events = []domain.ChatEvent{}
	}
	return HistoryFrame{Type: TypeHistory, Messages: events}
}

func eventFrame(e *domain.ChatEvent) EventFrame {
	t := TypeChat
	if e.IsDonation {
		t = TypeDonation
	}
	return EventFrame{Type: t, Message: e}
}

func errorFrame(msg string) ErrorFrame {
	return ErrorFrame{Type: TypeError, Message: msg}
}

// command is the closed set of inbound intents; decodeCommand is the only
// producer, the session's type switch the only consumer.
type command interface{ isCommand() }

type joinCmd struct{ streamID int64 }

type messageCmd struct {
	content string
	userID  int64
}

type leaveCmd struct{}

func (joinCmd) isCommand()    {}
func (messageCmd) isCommand() {}
func (leaveCmd) isCommand()   {}

// protocolError carries the error-frame text for a rejected inbound frame.
type protocolError string

func (e protocolError) Error() string { return string(e) }

type inboundFrame struct {
	Type     string `json:"type"`
	StreamID any    `json:"streamId"`
	Content  string `json:"content"`
	UserID   any    `json:"userId"`
}

func decodeCommand(data []byte) (command, error) {
	var f inboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, protocolError(errInvalidFormat)
	}

	switch f.Type {
	case TypeJoin:
		id, ok := toInt64(f.StreamID)
		if !ok {
			return nil, protocolError(errInvalidStream)
		}
		return joinCmd{streamID: id}, nil
	case TypeMessage:
		// missing or malformed ids surface as 0; the session reports
		// them after the joined check, matching the protocol's error order
		uid, _ := toInt64(f.UserID)
		return messageCmd{content: f.Content, userID: uid}, nil
	case TypeLeave:
		return leaveCmd{}, nil
	default:
		return nil, protocolError(errUnknownType)
	}
}

// toInt64 accepts JSON numbers and numeric strings, the coercion clients
// already rely on.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return id, true
	default:
		return 0, false
	}
}
