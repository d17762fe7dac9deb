package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"membership-backend/internal/domains/membre/model"
	"membership-backend/pkg/cache"
	"membership-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface against PostgreSQL.
// FindByCode is served through a Redis read-through cache; lookups by id are
// always authoritative because the mutation paths (update, photo upload) need
// the full row, photo bytes included.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	codeCacheKeyPrefix = "membre:code:"
	cacheTTL           = 15 * time.Minute
)

const membreColumns = `
        m.id, m.code, m.nom, m.prenom, m.email, m.telephone, m.date_naissance,
        m.adresse, m.profession, m.photo, m.photo_url, m.statut,
        m.date_adhesion, m.date_modification, m.parrain_id, m.actif,
        p.prenom || ' ' || p.nom AS parrain_nom_complet
`

const membreFrom = `
        FROM membres m
        LEFT JOIN membres p ON p.id = m.parrain_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembre(row rowScanner) (*model.Membre, error) {
	var m model.Membre
	err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Nom,
		&m.Prenom,
		&m.Email,
		&m.Telephone,
		&m.DateNaissance,
		&m.Adresse,
		&m.Profession,
		&m.Photo,
		&m.PhotoURL,
		&m.Statut,
		&m.DateAdhesion,
		&m.DateModification,
		&m.ParrainID,
		&m.Actif,
		&m.ParrainNomComplet,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Save dispatches to insert or update depending on whether the member
// already carries an identifier.
func (r *postgresRepository) Save(ctx context.Context, m *model.Membre) (*model.Membre, error) {
	if m.ID == uuid.Nil {
		return r.insert(ctx, m)
	}
	return r.update(ctx, m)
}

// insert persists a new member. Code generation and the insert run in one
// transaction so the sequence count cannot go stale between the two; the
// unique constraint on code stays the final authority and a violation is
// reported as model.ErrCodeConflict for the service to retry.
func (r *postgresRepository) insert(ctx context.Context, m *model.Membre) (*model.Membre, error) {
	created, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*model.Membre, error) {
		code := m.Code
		if code == "" {
			prefix := model.CodePrefix(m.Nom, m.Prenom, time.Now().Year())

			var count int64
			if err := tx.QueryRow(ctx,
				`SELECT COUNT(*) FROM membres WHERE code LIKE $1`,
				prefix+"%",
			).Scan(&count); err != nil {
				return nil, fmt.Errorf("failed to count codes for prefix %s: %w", prefix, err)
			}
			code = model.FormatCode(prefix, count+1)
		}

		query := `
            INSERT INTO membres (
                code, nom, prenom, email, telephone, date_naissance, adresse,
                profession, photo, photo_url, statut, date_adhesion,
                date_modification, parrain_id, actif
            )
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
            RETURNING id, code, date_adhesion, date_modification
        `

		created := *m
		err := tx.QueryRow(
			ctx,
			query,
			code,
			m.Nom,
			m.Prenom,
			m.Email,
			m.Telephone,
			m.DateNaissance,
			m.Adresse,
			m.Profession,
			m.Photo,
			m.PhotoURL,
			m.Statut,
			m.DateAdhesion,
			m.DateModification,
			m.ParrainID,
			m.Actif,
		).Scan(&created.ID, &created.Code, &created.DateAdhesion, &created.DateModification)
		if err != nil {
			return nil, translateUniqueViolation(err, "failed to insert membre")
		}

		if created.ParrainID != nil {
			var nomComplet string
			err := tx.QueryRow(ctx,
				`SELECT prenom || ' ' || nom FROM membres WHERE id = $1`,
				*created.ParrainID,
			).Scan(&nomComplet)
			if err != nil && !errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("failed to load parrain name: %w", err)
			}
			if err == nil {
				created.ParrainNomComplet = &nomComplet
			}
		}

		return &created, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// update rewrites the mutable columns. Code and date_adhesion are deliberately
// absent from the SET list so they survive every update.
func (r *postgresRepository) update(ctx context.Context, m *model.Membre) (*model.Membre, error) {
	query := `
        UPDATE membres
        SET
            nom = $1,
            prenom = $2,
            email = $3,
            telephone = $4,
            date_naissance = $5,
            adresse = $6,
            profession = $7,
            photo = $8,
            photo_url = $9,
            statut = $10,
            parrain_id = $11,
            actif = $12,
            date_modification = $13
        WHERE id = $14
    `

	cmdTag, err := r.pool.Exec(
		ctx,
		query,
		m.Nom,
		m.Prenom,
		m.Email,
		m.Telephone,
		m.DateNaissance,
		m.Adresse,
		m.Profession,
		m.Photo,
		m.PhotoURL,
		m.Statut,
		m.ParrainID,
		m.Actif,
		m.DateModification,
		m.ID,
	)
	if err != nil {
		return nil, translateUniqueViolation(err, "failed to update membre")
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, model.ErrMembreNotFound
	}

	r.cache.Delete(ctx, codeCacheKeyPrefix+m.Code)

	return r.FindByID(ctx, m.ID)
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `WHERE m.id = $1`

	m, err := scanMembre(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMembreNotFound
		}
		return nil, fmt.Errorf("failed to find membre by id: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) FindByCode(ctx context.Context, code string) (*model.Membre, error) {
	cacheKey := codeCacheKeyPrefix + code

	var cachedMembre model.Membre
	if found, err := r.cache.Get(ctx, cacheKey, &cachedMembre); err == nil && found {
		return &cachedMembre, nil
	}

	query := `SELECT` + membreColumns + membreFrom + `WHERE m.code = $1`

	m, err := scanMembre(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMembreNotFound
		}
		return nil, fmt.Errorf("failed to find membre by code: %w", err)
	}

	if data, err := json.Marshal(m); err == nil {
		r.cache.Set(ctx, cacheKey, string(data), cacheTTL)
	}

	return m, nil
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `WHERE m.email = $1`

	m, err := scanMembre(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMembreNotFound
		}
		return nil, fmt.Errorf("failed to find membre by email: %w", err)
	}
	return m, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `ORDER BY m.date_adhesion DESC, m.code DESC`
	return r.list(ctx, query)
}

func (r *postgresRepository) ListByStatut(ctx context.Context, statut model.Statut) ([]model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `WHERE m.statut = $1 ORDER BY m.date_adhesion DESC, m.code DESC`
	return r.list(ctx, query, statut)
}

func (r *postgresRepository) ListActifs(ctx context.Context) ([]model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `WHERE m.actif = true ORDER BY m.date_adhesion DESC, m.code DESC`
	return r.list(ctx, query)
}

func (r *postgresRepository) ListByParrain(ctx context.Context, parrainID uuid.UUID) ([]model.Membre, error) {
	query := `SELECT` + membreColumns + membreFrom + `WHERE m.parrain_id = $1 ORDER BY m.date_adhesion DESC, m.code DESC`
	return r.list(ctx, query, parrainID)
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...any) ([]model.Membre, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query membres: %w", err)
	}
	defer rows.Close()

	var membres []model.Membre
	for rows.Next() {
		m, err := scanMembre(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membre: %w", err)
		}
		membres = append(membres, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membres: %w", err)
	}

	return membres, nil
}

func (r *postgresRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM membres WHERE email = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) CountByCodePrefix(ctx context.Context, prefix string) (int64, error) {
	query := `SELECT COUNT(*) FROM membres WHERE code LIKE $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, prefix+"%").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count codes by prefix: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var code string
	err := r.pool.QueryRow(ctx, `SELECT code FROM membres WHERE id = $1`, id).Scan(&code)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("failed to load membre before delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM membres WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete membre: %w", err)
	}

	if code != "" {
		r.cache.Delete(ctx, codeCacheKeyPrefix+code)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// translateUniqueViolation maps PostgreSQL unique violations onto the domain
// errors the service understands. Constraint names carry the column name.
func translateUniqueViolation(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "code") || strings.Contains(pgErr.Message, "code"):
			return model.ErrCodeConflict
		case strings.Contains(pgErr.ConstraintName, "email") || strings.Contains(pgErr.Message, "email"):
			return model.ErrEmailDejaUtilise
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
