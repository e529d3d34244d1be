package domain

import "time"

// timestampLayout matches the ISO-8601 form clients already parse
// (millisecond precision, always UTC).
const timestampLayout = "2006-01-02T15:04:05.000Z"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ChatMessage is the persisted form of one chat utterance. Donations are
// represented as flagged messages so history and live broadcast agree.
type ChatMessage struct {
	ID             int64     `db:"id"`
	StreamID       int64     `db:"stream_id"`
	UserID         int64     `db:"user_id"`
	Message        string    `db:"message"`
	Timestamp      time.Time `db:"timestamp"`
	IsDonation     bool      `db:"is_donation"`
	DonationAmount *int64    `db:"donation_amount"`
}

// ChatEvent is the outbound projection of a ChatMessage enriched with the
// sender's display identity. Built fresh per broadcast, never stored.
type ChatEvent struct {
	ID             int64   `json:"id"`
	StreamID       int64   `json:"streamId"`
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	DisplayName    *string `json:"displayName,omitempty"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	Message        string  `json:"message"`
	Timestamp      string  `json:"timestamp"`
	IsDonation     bool    `json:"isDonation"`
	DonationAmount *int64  `json:"donationAmount,omitempty"`
}

func (m *ChatMessage) Event(sender *User) ChatEvent {
	return ChatEvent{
		ID:             m.ID,
		StreamID:       m.StreamID,
		UserID:         m.UserID,
		Username:       sender.Username,
		DisplayName:    sender.DisplayName,
		AvatarURL:      sender.AvatarURL,
		Message:        m.Message,
		Timestamp:      FormatTimestamp(m.Timestamp),
		IsDonation:     m.IsDonation,
		DonationAmount: m.DonationAmount,
	}
}
