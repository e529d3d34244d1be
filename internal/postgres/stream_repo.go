package postgres

import (
	"context"

	"github.com/streamhub/stream-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StreamRepository struct {
	db *pgxpool.Pool
}

func NewStreamRepository(db *pgxpool.Pool) *StreamRepository {
	return &StreamRepository{db: db}
}

const streamColumns = `id, user_id, title, description, thumbnail_url, category, tags, is_live, viewer_count, started_at`

func scanStream(row pgx.Row) (*domain.Stream, error) {
	var s domain.Stream
	err := row.Scan(&s.ID, &s.UserID, &s.Title, &s.Description, &s.ThumbnailURL,
		&s.Category, &s.Tags, &s.IsLive, &s.ViewerCount, &s.StartedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StreamRepository) Get(ctx context.Context, id int64) (*domain.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE id=$1`
	s, err := scanStream(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrStreamNotFound
		}
		return nil, err
	}
	return s, nil
}

// List returns live streams, optionally filtered by category.
func (r *StreamRepository) List(ctx context.Context, category string) ([]domain.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE is_live`
	args := []any{}
	if category != "" {
		query += ` AND category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStreams(rows)
}

// Recommended returns up to limit random live streams.
func (r *StreamRepository) Recommended(ctx context.Context, limit int) ([]domain.Stream, error) {
	query := `SELECT ` + streamColumns + ` FROM streams WHERE is_live ORDER BY random() LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectStreams(rows)
}

// Categories returns the distinct categories of live streams.
func (r *StreamRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM streams WHERE is_live AND category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func collectStreams(rows pgx.Rows) ([]domain.Stream, error) {
	var out []domain.Stream
	for rows.Next() {
		s, err := scanStream(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
