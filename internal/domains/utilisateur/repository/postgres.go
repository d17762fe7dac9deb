package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"membership-backend/internal/domains/utilisateur/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const utilisateurColumns = `id, email, password_hash, nom_complet, role, actif, created_at, updated_at`

func scanUtilisateur(row pgx.Row) (*model.Utilisateur, error) {
	var u model.Utilisateur
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.NomComplet,
		&u.Role,
		&u.Actif,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepository) Create(ctx context.Context, u *model.Utilisateur) error {
	query := `
        INSERT INTO utilisateurs (id, email, password_hash, nom_complet, role, actif, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Email, u.PasswordHash, u.NomComplet, u.Role, u.Actif, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to create utilisateur: %w", err)
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Utilisateur, error) {
	query := `SELECT ` + utilisateurColumns + ` FROM utilisateurs WHERE id = $1`

	u, err := scanUtilisateur(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUtilisateurNotFound
		}
		return nil, fmt.Errorf("failed to find utilisateur by id: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Utilisateur, error) {
	query := `SELECT ` + utilisateurColumns + ` FROM utilisateurs WHERE email = $1`

	u, err := scanUtilisateur(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUtilisateurNotFound
		}
		return nil, fmt.Errorf("failed to find utilisateur by email: %w", err)
	}
	return u, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM utilisateurs WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check utilisateur email: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	query := `UPDATE utilisateurs SET role = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrUtilisateurNotFound
	}
	return nil
}
