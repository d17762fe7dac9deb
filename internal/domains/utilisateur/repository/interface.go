package repository

import (
	"context"

	"github.com/google/uuid"

	"membership-backend/internal/domains/utilisateur/model"
)

// RepositoryInterface is the storage gateway for API accounts.
type RepositoryInterface interface {
	Create(ctx context.Context, u *model.Utilisateur) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error)
	FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error
}
