package service

import (
	"context"

	"github.com/google/uuid"

	"membership-backend/internal/domains/membre/model"
)

// PhotoStorage stores member photos and returns a public URL for the
// stored object.
type PhotoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// ServiceInterface holds the business rules of the membership domain.
// Every operation is a single validate-then-persist round trip; mutations
// touch the repository inside one transaction boundary per call.
type ServiceInterface interface {
	// CreerMembre creates a member. Rejects a non-empty email already in use,
	// resolves the optional parrain, and retries persistence a bounded number
	// of times when code generation races with a concurrent creation.
	CreerMembre(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error)

	// GetMembre returns model.ErrMembreNotFound when absent.
	GetMembre(ctx context.Context, id uuid.UUID) (*model.Membre, error)

	// GetMembreParCode looks a member up by its business code.
	GetMembreParCode(ctx context.Context, code string) (*model.Membre, error)

	// ListerTousMembres returns every member.
	ListerTousMembres(ctx context.Context) ([]model.Membre, error)

	// ListerMembresParStatut filters members by statut.
	ListerMembresParStatut(ctx context.Context, statut model.Statut) ([]model.Membre, error)

	// ListerMembresActifs returns the members whose active flag is set,
	// regardless of statut.
	ListerMembresActifs(ctx context.Context) ([]model.Membre, error)

	// ListerFilleuls returns the members sponsored by the given member.
	ListerFilleuls(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error)

	// MettreAJourMembre replaces the mutable fields wholesale. Code, id,
	// date_adhesion, statut and the active flag are never touched.
	MettreAJourMembre(ctx context.Context, id uuid.UUID, req model.CreationMembreRequest) (*model.Membre, error)

	// ChangerStatutMembre sets the statut. All transitions are permitted.
	ChangerStatutMembre(ctx context.Context, id uuid.UUID, statut model.Statut) (*model.Membre, error)

	// DesactiverMembre clears the active flag, recording the reason in the
	// log. The statut itself is left untouched.
	DesactiverMembre(ctx context.Context, id uuid.UUID, motif string) (*model.Membre, error)

	// UploadPhoto stores the photo bytes and persists the resulting URL.
	UploadPhoto(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.Membre, error)

	// SupprimerMembre fails with model.ErrMembreNotFound when the member does
	// not exist; otherwise the repository's success flag is passed through.
	SupprimerMembre(ctx context.Context, id uuid.UUID) (bool, error)
}
