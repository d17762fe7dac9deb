package repository

import (
	"context"

	"github.com/google/uuid"

	"membership-backend/internal/domains/membre/model"
)

// RepositoryInterface is the storage gateway for members.
// Save performs an insert when the member has no identifier and an update
// otherwise. The insert path generates the member code inside the same
// transaction as the write; the update path preserves code and date_adhesion.
type RepositoryInterface interface {
	// Save persists the member and returns the stored row with id and code
	// populated. Errors: model.ErrCodeConflict on a code-generation race,
	// model.ErrEmailDejaUtilise on an email uniqueness violation,
	// model.ErrMembreNotFound when updating a vanished row.
	Save(ctx context.Context, m *model.Membre) (*model.Membre, error)

	// FindByID returns model.ErrMembreNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Membre, error)

	// FindByCode returns model.ErrMembreNotFound when absent.
	FindByCode(ctx context.Context, code string) (*model.Membre, error)

	// FindByEmail returns model.ErrMembreNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*model.Membre, error)

	// ListAll returns every member, newest first.
	ListAll(ctx context.Context) ([]model.Membre, error)

	// ListByStatut returns the members whose current statut matches.
	ListByStatut(ctx context.Context, statut model.Statut) ([]model.Membre, error)

	// ListActifs returns the members whose active flag is set.
	ListActifs(ctx context.Context) ([]model.Membre, error)

	// ListByParrain returns the members sponsored by the given member.
	ListByParrain(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error)

	// EmailExists reports whether any member holds the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// CountByCodePrefix counts existing codes starting with prefix.
	CountByCodePrefix(ctx context.Context, prefix string) (int64, error)

	// Delete removes the member row. The boolean reports whether a row was
	// actually deleted; the caller interprets a false result.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
