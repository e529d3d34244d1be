package domain

import "errors"

var (
	ErrStreamNotFound = errors.New("stream not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrEmptyMessage   = errors.New("empty message")
	ErrMessageTooLong = errors.New("message too long")
	ErrInvalidAmount  = errors.New("donation amount must be positive")
)
