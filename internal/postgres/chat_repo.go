package postgres

import (
	"context"

	"github.com/streamhub/stream-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Insert persists a chat message; id and timestamp are assigned by the database.
func (r *ChatRepository) Insert(ctx context.Context, streamID, userID int64, text string, isDonation bool, donationAmount *int64) (*domain.ChatMessage, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (stream_id, user_id, message, is_donation, donation_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, stream_id, user_id, message, timestamp, is_donation, donation_amount
	`, streamID, userID, text, isDonation, donationAmount)

	var m domain.ChatMessage
	if err := row.Scan(&m.ID, &m.StreamID, &m.UserID, &m.Message, &m.Timestamp, &m.IsDonation, &m.DonationAmount); err != nil {
		return nil, err
	}
	return &m, nil
}

// Recent returns the most recent limit messages of a stream in chronological
// (oldest-first) order.
func (r *ChatRepository) Recent(ctx context.Context, streamID int64, limit int) ([]domain.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, stream_id, user_id, message, timestamp, is_donation, donation_amount
		FROM (
			SELECT id, stream_id, user_id, message, timestamp, is_donation, donation_amount
			FROM chat_messages
			WHERE stream_id = $1
			ORDER BY timestamp DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY timestamp ASC, id ASC
	`, streamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.StreamID, &m.UserID, &m.Message, &m.Timestamp, &m.IsDonation, &m.DonationAmount); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
