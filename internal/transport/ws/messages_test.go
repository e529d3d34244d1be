package ws

import (
	"testing"

	"github.com/streamhub/stream-service/internal/domain"
)

func TestDecodeCommandJoin(t *testing.T) {
	cmd, err := decodeCommand([]byte(`{"type":"join","streamId":5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	join, ok := cmd.(joinCmd)
	if !ok {
		t.Fatalf("expected joinCmd, got %T", cmd)
	}
	if join.streamID != 5 {
		t.Fatalf("expected stream 5, got %d", join.streamID)
	}
}

func TestDecodeCommandJoinStringID(t *testing.T) {
	// clients send the id as a string; Number() style coercion applies
	cmd, err := decodeCommand([]byte(`{"type":"join","streamId":"12"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.(joinCmd).streamID != 12 {
		t.Fatalf("expected stream 12, got %d", cmd.(joinCmd).streamID)
	}
}

func TestDecodeCommandJoinInvalidID(t *testing.T) {
	for _, raw := range []string{
		`{"type":"join","streamId":"abc"}`,
		`{"type":"join","streamId":1.5}`,
		`{"type":"join"}`,
	} {
		_, err := decodeCommand([]byte(raw))
		if err == nil {
			t.Fatalf("expected error for %s", raw)
		}
		if err.Error() != "Invalid stream ID" {
			t.Fatalf("unexpected error text: %q", err.Error())
		}
	}
}

func TestDecodeCommandMessage(t *testing.T) {
	cmd, err := decodeCommand([]byte(`{"type":"message","content":"hi","userId":1}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := cmd.(messageCmd)
	if msg.content != "hi" || msg.userID != 1 {
		t.Fatalf("unexpected command: %+v", msg)
	}
}

func TestDecodeCommandMessageMissingFields(t *testing.T) {
	// decodes fine; validation is the session's job so the "not joined"
	// check can run first
	cmd, err := decodeCommand([]byte(`{"type":"message"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := cmd.(messageCmd)
	if msg.content != "" || msg.userID != 0 {
		t.Fatalf("unexpected command: %+v", msg)
	}
}

func TestDecodeCommandLeave(t *testing.T) {
	cmd, err := decodeCommand([]byte(`{"type":"leave"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cmd.(leaveCmd); !ok {
		t.Fatalf("expected leaveCmd, got %T", cmd)
	}
}

func TestDecodeCommandUnknownType(t *testing.T) {
	_, err := decodeCommand([]byte(`{"type":"subscribe"}`))
	if err == nil || err.Error() != "Unknown message type" {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}

func TestDecodeCommandMalformed(t *testing.T) {
	_, err := decodeCommand([]byte(`{not json`))
	if err == nil || err.Error() != "Invalid message format" {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestEventFrameType(t *testing.T) {
	amount := int64(20)
	chat := eventFrame(&domain.ChatEvent{Message: "hi"})
	if chat.Type != TypeChat {
		t.Fatalf("expected chat frame, got %s", chat.Type)
	}

	donation := eventFrame(&domain.ChatEvent{Message: "thanks!", IsDonation: true, DonationAmount: &amount})
	if donation.Type != TypeDonation {
		t.Fatalf("expected donation frame, got %s", donation.Type)
	}
}

func TestHistoryFrameNeverNil(t *testing.T) {
	f := historyFrame(nil)
	if f.Messages == nil {
		t.Fatal("history frame must carry an empty slice, not null")
	}
}
