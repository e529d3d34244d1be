package service

import (
	"context"

	"github.com/streamhub/stream-service/internal/domain"
)

// Store contracts are declared on the consumer side; internal/postgres
// provides the implementations.

type UserStore interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type StreamStore interface {
	Get(ctx context.Context, id int64) (*domain.Stream, error)
	List(ctx context.Context, category string) ([]domain.Stream, error)
	Recommended(ctx context.Context, limit int) ([]domain.Stream, error)
	Categories(ctx context.Context) ([]string, error)
}

type MessageStore interface {
	Insert(ctx context.Context, streamID, userID int64, text string, isDonation bool, donationAmount *int64) (*domain.ChatMessage, error)
	Recent(ctx context.Context, streamID int64, limit int) ([]domain.ChatMessage, error)
}

type DonationStore interface {
	Insert(ctx context.Context, streamID, userID, amount int64, message *string) (*domain.Donation, error)
}

// UserCache is an optional read-through cache for sender identities.
// Errors are treated as misses; the store stays authoritative.
type UserCache interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	Set(ctx context.Context, u *domain.User) error
}

// Broadcaster delivers an enriched chat event to every current member of a
// stream's room. Implemented by the ws transport.
type Broadcaster interface {
	Broadcast(streamID int64, event *domain.ChatEvent)
}
