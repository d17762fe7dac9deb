package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"membership-backend/internal/domains/utilisateur/model"
	"membership-backend/internal/domains/utilisateur/repository"
	"membership-backend/pkg/jwt"
)

// bcryptCost balances hashing latency against brute-force resistance.
const bcryptCost = 12

type utilisateurService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

func NewUtilisateurService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &utilisateurService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

func (s *utilisateurService) Register(ctx context.Context, req model.RegisterRequest) (*model.UtilisateurDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, model.ErrEmailAlreadyExists
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	u := &model.Utilisateur{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		NomComplet:   req.NomComplet,
		Role:         model.RoleMembre,
		Actif:        true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("operation", "register").Str("utilisateur_id", u.ID.String()).
		Msg("utilisateur registered")

	dto := u.ToDTO()
	return &dto, nil
}

func (s *utilisateurService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// A missing account and a wrong password answer identically.
		return nil, model.ErrInvalidCredentials
	}

	if !u.Actif {
		return nil, model.ErrUtilisateurInactif
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("operation", "login").Str("email", req.Email).
			Msg("failed login attempt")
		return nil, model.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		Utilisateur: u.ToDTO(),
	}, nil
}

func (s *utilisateurService) GetProfile(ctx context.Context, id uuid.UUID) (*model.UtilisateurDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *utilisateurService) ChangeRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return model.ErrRoleInvalide
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	log.Info().Str("operation", "change_role").Str("utilisateur_id", id.String()).
		Str("role", string(role)).Msg("role updated")
	return nil
}
