package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"membership-backend/internal/domains/utilisateur/model"
	"membership-backend/pkg/jwt"
)

type fakeUtilisateurRepo struct {
	byID    map[uuid.UUID]*model.Utilisateur
	byEmail map[string]*model.Utilisateur
}

func newFakeUtilisateurRepo() *fakeUtilisateurRepo {
	return &fakeUtilisateurRepo{
		byID:    make(map[uuid.UUID]*model.Utilisateur),
		byEmail: make(map[string]*model.Utilisateur),
	}
}

func (f *fakeUtilisateurRepo) Create(ctx context.Context, u *model.Utilisateur) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return model.ErrEmailAlreadyExists
	}
	stored := *u
	f.byID[u.ID] = &stored
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeUtilisateurRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, model.ErrUtilisateurNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUtilisateurRepo) FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, model.ErrUtilisateurNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeUtilisateurRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUtilisateurRepo) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	u, ok := f.byID[id]
	if !ok {
		return model.ErrUtilisateurNotFound
	}
	u.Role = role
	return nil
}

func newTestUtilisateurService() (ServiceInterface, *fakeUtilisateurRepo) {
	repo := newFakeUtilisateurRepo()
	return NewUtilisateurService(repo, jwt.NewManager("test-secret", time.Hour)), repo
}

func registerRequest() model.RegisterRequest {
	return model.RegisterRequest{
		Email:      "jean@asso.fr",
		Password:   "Motdepasse1",
		NomComplet: "Jean Dupont",
	}
}

func TestRegister(t *testing.T) {
	svc, repo := newTestUtilisateurService()

	dto, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "jean@asso.fr", dto.Email)
	assert.Equal(t, model.RoleMembre, dto.Role)

	stored := repo.byEmail["jean@asso.fr"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Motdepasse1", stored.PasswordHash)
	assert.True(t, stored.Actif)
}

func TestRegister_EmailDejaPris(t *testing.T) {
	svc, _ := newTestUtilisateurService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest())
	assert.ErrorIs(t, err, model.ErrEmailAlreadyExists)
}

func TestRegister_MotDePasseFaible(t *testing.T) {
	svc, _ := newTestUtilisateurService()

	req := registerRequest()
	req.Password = "court"
	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestUtilisateurService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{
		Email:    "jean@asso.fr",
		Password: "Motdepasse1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
	assert.Equal(t, "jean@asso.fr", resp.Utilisateur.Email)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	svc, _ := newTestUtilisateurService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{
		Email:    "jean@asso.fr",
		Password: "Mauvais1mdp",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_CompteInconnu(t *testing.T) {
	svc, _ := newTestUtilisateurService()

	// unknown account and wrong password answer identically
	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "inconnu@asso.fr",
		Password: "Motdepasse1",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLogin_CompteInactif(t *testing.T) {
	svc, repo := newTestUtilisateurService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)
	repo.byEmail["jean@asso.fr"].Actif = false

	_, err = svc.Login(ctx, model.LoginRequest{
		Email:    "jean@asso.fr",
		Password: "Motdepasse1",
	})
	assert.ErrorIs(t, err, model.ErrUtilisateurInactif)
}

func TestChangeRole(t *testing.T) {
	svc, repo := newTestUtilisateurService()
	ctx := context.Background()

	dto, err := svc.Register(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ChangeRole(ctx, dto.ID, model.RoleSecretaire))
	assert.Equal(t, model.RoleSecretaire, repo.byID[dto.ID].Role)
}

func TestChangeRole_RoleInvalide(t *testing.T) {
	svc, _ := newTestUtilisateurService()
	err := svc.ChangeRole(context.Background(), uuid.New(), model.Role("superviseur"))
	assert.ErrorIs(t, err, model.ErrRoleInvalide)
}
