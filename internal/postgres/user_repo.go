package postgres

import (
	"context"

	"github.com/streamhub/stream-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, username, password, display_name, avatar_url FROM users WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Username, &u.Password, &u.DisplayName, &u.AvatarURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, username, password, display_name, avatar_url FROM users WHERE lower(username)=lower($1)`
	err := r.db.QueryRow(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.Password, &u.DisplayName, &u.AvatarURL)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
