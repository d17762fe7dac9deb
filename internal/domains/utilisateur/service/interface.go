package service

import (
	"context"

	"github.com/google/uuid"

	"membership-backend/internal/domains/utilisateur/model"
)

// ServiceInterface handles API account lifecycle and authentication.
type ServiceInterface interface {
	// Register creates an account with the default "membre" role.
	Register(ctx context.Context, req model.RegisterRequest) (*model.UtilisateurDTO, error)

	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)

	// GetProfile returns the account behind a token.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.UtilisateurDTO, error)

	// ChangeRole grants a different role; admin-only at the route level.
	ChangeRole(ctx context.Context, id uuid.UUID, role model.Role) error
}
