package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level carried in a user's JWT. The route tables assign
// the same role lists the association uses operationally: admin manages
// everything, secretaire manages membership records, membre reads them.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSecretaire Role = "secretaire"
	RoleMembre     Role = "membre"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretaire, RoleMembre:
		return true
	}
	return false
}

// Utilisateur is an API account, distinct from the Membre record it may
// belong to. Password hashes never leave this package through DTOs.
type Utilisateur struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	NomComplet   string    `json:"nom_complet" db:"nom_complet"`
	Role         Role      `json:"role" db:"role"`
	Actif        bool      `json:"actif" db:"actif"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
