package auth

import (
	"context"

	"go-fraud-console/internal/models"
	"go-fraud-console/internal/session"
)

// AuthService is what the login and logout pages need from the session.
type AuthService interface {
	Login(ctx context.Context, username, password string) session.LoginResult
	Logout(ctx context.Context)
	State() models.SessionState
}

func NewAuthService(store *session.Store) AuthService {
	return store
}
