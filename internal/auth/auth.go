package auth

import (
	"context"
	"errors"

	"StockProphet/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrUserExists         = errors.New("an account with this email already exists, please log in")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// Service is the authentication capability the HTTP layer depends on.
type Service interface {
	Signup(ctx context.Context, profile model.Profile) (*model.Session, error)
	Login(ctx context.Context, creds model.Credentials) (*model.Session, error)
	Logout(ctx context.Context, token string) error
	Current(ctx context.Context, token string) (*model.User, error)
	SetPremium(ctx context.Context, token string, premium bool) (*model.User, error)
}
