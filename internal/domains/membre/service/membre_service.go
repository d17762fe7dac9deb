package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"membership-backend/internal/domains/membre/model"
	"membership-backend/internal/domains/membre/repository"
)

// maxCodeRetries bounds how often a creation is retried when the generated
// code collides with a concurrent insert for the same prefix.
const maxCodeRetries = 3

type membreService struct {
	repo   repository.RepositoryInterface
	photos PhotoStorage
}

func NewMembreService(repo repository.RepositoryInterface, photos PhotoStorage) ServiceInterface {
	return &membreService{
		repo:   repo,
		photos: photos,
	}
}

func (s *membreService) CreerMembre(ctx context.Context, req model.CreationMembreRequest) (*model.Membre, error) {
	// Handler already validated; revalidate so the rule holds for every caller.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if email := req.NormalizedEmail(); email != nil {
		exists, err := s.repo.EmailExists(ctx, *email)
		if err != nil {
			return nil, fmt.Errorf("check email exists: %w", err)
		}
		if exists {
			log.Warn().Str("operation", "creer_membre").Str("email", *email).
				Msg("creation rejected, email already used")
			return nil, model.ErrEmailDejaUtilise
		}
	}

	membre := req.ToMembre()

	if req.IDParrain != nil {
		parrain, err := s.resolveParrain(ctx, *req.IDParrain)
		if err != nil {
			return nil, err
		}
		membre.ParrainID = &parrain.ID
	}

	var saved *model.Membre
	var err error
	for attempt := 1; attempt <= maxCodeRetries; attempt++ {
		saved, err = s.repo.Save(ctx, membre)
		if err == nil {
			break
		}
		if !errors.Is(err, model.ErrCodeConflict) {
			return nil, err
		}
		log.Warn().Str("operation", "creer_membre").Int("attempt", attempt).
			Msg("code collision, retrying generation")
	}
	if err != nil {
		return nil, fmt.Errorf("code generation exhausted %d attempts: %w", maxCodeRetries, err)
	}

	log.Info().Str("operation", "creer_membre").
		Str("membre_id", saved.ID.String()).Str("code", saved.Code).
		Msg("membre created")

	return saved, nil
}

func (s *membreService) GetMembre(ctx context.Context, id uuid.UUID) (*model.Membre, error) {
	if id == uuid.Nil {
		return nil, model.ErrMembreNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *membreService) GetMembreParCode(ctx context.Context, code string) (*model.Membre, error) {
	if code == "" {
		return nil, model.ErrMembreNotFound
	}
	return s.repo.FindByCode(ctx, code)
}

func (s *membreService) ListerTousMembres(ctx context.Context) ([]model.Membre, error) {
	return s.repo.ListAll(ctx)
}

func (s *membreService) ListerMembresParStatut(ctx context.Context, statut model.Statut) ([]model.Membre, error) {
	return s.repo.ListByStatut(ctx, statut)
}

func (s *membreService) ListerMembresActifs(ctx context.Context) ([]model.Membre, error) {
	return s.repo.ListActifs(ctx)
}

func (s *membreService) ListerFilleuls(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error) {
	if _, err := s.repo.FindByID(ctx, parrainID); err != nil {
		return nil, err
	}
	return s.repo.ListByParrain(ctx, parrainID)
}

func (s *membreService) MettreAJourMembre(ctx context.Context, id uuid.UUID, req model.CreationMembreRequest) (*model.Membre, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A member keeping its own email must not trip the uniqueness check.
	if email := req.NormalizedEmail(); email != nil {
		sameAsCurrent := current.Email != nil && *current.Email == *email
		if !sameAsCurrent {
			exists, err := s.repo.EmailExists(ctx, *email)
			if err != nil {
				return nil, fmt.Errorf("check email exists: %w", err)
			}
			if exists {
				log.Warn().Str("operation", "mettre_a_jour_membre").
					Str("membre_id", id.String()).Str("email", *email).
					Msg("update rejected, email already used")
				return nil, model.ErrEmailDejaUtilise
			}
		}
	}

	next := req.ApplyTo(current)

	// The parrain only changes when a new id is supplied and it differs from
	// the current one. Resolution failure leaves the record untouched.
	if req.IDParrain != nil && (current.ParrainID == nil || *current.ParrainID != *req.IDParrain) {
		parrain, err := s.resolveParrain(ctx, *req.IDParrain)
		if err != nil {
			return nil, err
		}
		next.ParrainID = &parrain.ID
	}

	next.TouchModification()

	updated, err := s.repo.Save(ctx, next)
	if err != nil {
		return nil, err
	}

	log.Info().Str("operation", "mettre_a_jour_membre").
		Str("membre_id", updated.ID.String()).Msg("membre updated")

	return updated, nil
}

func (s *membreService) ChangerStatutMembre(ctx context.Context, id uuid.UUID, statut model.Statut) (*model.Membre, error) {
	membre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	membre.Statut = statut
	membre.TouchModification()

	updated, err := s.repo.Save(ctx, membre)
	if err != nil {
		return nil, err
	}

	log.Info().Str("operation", "changer_statut").
		Str("membre_id", id.String()).Str("statut", string(statut)).
		Msg("statut changed")

	return updated, nil
}

func (s *membreService) DesactiverMembre(ctx context.Context, id uuid.UUID, motif string) (*model.Membre, error) {
	membre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	membre.Actif = false
	membre.TouchModification()

	updated, err := s.repo.Save(ctx, membre)
	if err != nil {
		return nil, err
	}

	log.Info().Str("operation", "desactiver_membre").
		Str("membre_id", id.String()).Str("motif", motif).
		Msg("membre deactivated")

	return updated, nil
}

func (s *membreService) UploadPhoto(ctx context.Context, id uuid.UUID, data []byte, contentType string) (*model.Membre, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty photo payload")
	}

	membre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("membres/%s/photo", membre.ID)
	url, err := s.photos.Upload(ctx, key, data, contentType)
	if err != nil {
		log.Error().Err(err).Str("operation", "upload_photo").
			Str("membre_id", id.String()).Msg("photo upload failed")
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	membre.Photo = data
	membre.PhotoURL = &url
	membre.TouchModification()

	return s.repo.Save(ctx, membre)
}

func (s *membreService) SupprimerMembre(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return false, err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warn().Str("operation", "supprimer_membre").
			Str("membre_id", id.String()).Msg("delete reported no row")
	}

	return deleted, nil
}

func (s *membreService) resolveParrain(ctx context.Context, id uuid.UUID) (*model.Membre, error) {
	parrain, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMembreNotFound) {
			log.Warn().Str("operation", "resolve_parrain").
				Str("parrain_id", id.String()).Msg("parrain does not exist")
			return nil, model.ErrParrainNotFound
		}
		return nil, err
	}
	return parrain, nil
}
