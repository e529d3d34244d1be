package domain

import "time"

type Donation struct {
	ID        int64     `db:"id"`
	StreamID  int64     `db:"stream_id"`
	UserID    int64     `db:"user_id"`
	Amount    int64     `db:"amount"`
	Message   *string   `db:"message"`
	Timestamp time.Time `db:"timestamp"`
}
