package service

import (
	"context"
	"errors"

	"github.com/streamhub/stream-service/internal/domain"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Login checks credentials and returns the user on success. Plaintext
// comparison, same as the demo it replaces; hardening is out of scope.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
