package postgres

import (
	"context"

	"github.com/streamhub/stream-service/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationRepository struct {
	db *pgxpool.Pool
}

func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{db: db}
}

func (r *DonationRepository) Insert(ctx context.Context, streamID, userID, amount int64, message *string) (*domain.Donation, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO donations (stream_id, user_id, amount, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, stream_id, user_id, amount, message, timestamp
	`, streamID, userID, amount, message)

	var d domain.Donation
	if err := row.Scan(&d.ID, &d.StreamID, &d.UserID, &d.Amount, &d.Message, &d.Timestamp); err != nil {
		return nil, err
	}
	return &d, nil
}
