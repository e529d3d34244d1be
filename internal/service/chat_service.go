package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/streamhub/stream-service/internal/domain"

	"golang.org/x/sync/singleflight"
)

const defaultDonationMessage = "Made a donation!"

// ChatService is the message pipeline: it validates inbound chat intents,
// persists them, enriches them with the sender's identity and hands the
// result to the Broadcaster. Nothing is ever broadcast before it has been
// persisted.
type ChatService struct {
	messages  MessageStore
	donations DonationStore
	users     UserStore
	cache     UserCache // may be nil
	bc        Broadcaster

	historyLimit  int
	maxMessageLen int

	// mu serializes persist→broadcast so broadcast order equals
	// persistence order within a room.
	mu sync.Mutex
	sf singleflight.Group
}

func NewChatService(messages MessageStore, donations DonationStore, users UserStore, cache UserCache, bc Broadcaster, historyLimit, maxMessageLen int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	if maxMessageLen <= 0 {
		maxMessageLen = 4000
	}
	return &ChatService{
		messages:      messages,
		donations:     donations,
		users:         users,
		cache:         cache,
		bc:            bc,
		historyLimit:  historyLimit,
		maxMessageLen: maxMessageLen,
	}
}

// SubmitMessage persists a plain chat message and broadcasts it to the
// stream's room. The persisted message is dropped from broadcast (but not
// from storage) when the sender cannot be resolved.
func (s *ChatService) SubmitMessage(ctx context.Context, streamID, userID int64, content string) (*domain.ChatEvent, error) {
	text := strings.TrimSpace(content)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(text) > s.maxMessageLen {
		return nil, domain.ErrMessageTooLong
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.messages.Insert(ctx, streamID, userID, text, false, nil)
	if err != nil {
		return nil, err
	}

	sender, err := s.resolveSender(ctx, userID)
	if err != nil {
		return nil, err
	}

	event := msg.Event(sender)
	s.bc.Broadcast(streamID, &event)
	return &event, nil
}

// SubmitDonation persists the donation record plus a donation-flagged chat
// message and broadcasts the message, so live viewers and later history
// readers see the identical representation.
func (s *ChatService) SubmitDonation(ctx context.Context, streamID, userID, amount int64, message *string) (*domain.Donation, *domain.ChatEvent, error) {
	if amount <= 0 {
		return nil, nil, domain.ErrInvalidAmount
	}

	chatText := defaultDonationMessage
	if message != nil && *message != "" {
		chatText = *message
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	donation, err := s.donations.Insert(ctx, streamID, userID, amount, message)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.messages.Insert(ctx, streamID, userID, chatText, true, &amount)
	if err != nil {
		return nil, nil, err
	}

	sender, err := s.resolveSender(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	event := msg.Event(sender)
	s.bc.Broadcast(streamID, &event)
	return donation, &event, nil
}

// History returns the most recent messages of a stream, oldest first,
// enriched for clients. Messages whose sender no longer resolves are
// skipped. Concurrent fetches for the same stream are deduplicated.
func (s *ChatService) History(ctx context.Context, streamID int64) ([]domain.ChatEvent, error) {
	v, err, _ := s.sf.Do(strconv.FormatInt(streamID, 10), func() (any, error) {
		return s.fetchHistory(ctx, streamID)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ChatEvent), nil
}

func (s *ChatService) fetchHistory(ctx context.Context, streamID int64) ([]domain.ChatEvent, error) {
	msgs, err := s.messages.Recent(ctx, streamID, s.historyLimit)
	if err != nil {
		return nil, err
	}

	events := make([]domain.ChatEvent, 0, len(msgs))
	senders := make(map[int64]*domain.User)
	for _, m := range msgs {
		sender, seen := senders[m.UserID]
		if !seen {
			sender, err = s.resolveSender(ctx, m.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					senders[m.UserID] = nil
					continue
				}
				return nil, err
			}
			senders[m.UserID] = sender
		}
		if sender == nil {
			continue
		}
		events = append(events, m.Event(sender))
	}
	return events, nil
}

func (s *ChatService) resolveSender(ctx context.Context, userID int64) (*domain.User, error) {
	if s.cache != nil {
		if u, err := s.cache.Get(ctx, userID); err == nil {
			return u, nil
		}
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, u); err != nil {
			slog.Debug("user cache set failed", "user", userID, "err", err)
		}
	}
	return u, nil
}
