package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// RegisterRequest creates an API account. Role defaults to "membre" unless an
// admin grants a higher one through a separate endpoint.
type RegisterRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	NomComplet string `json:"nom_complet" binding:"required"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			// format-only check: no MX/DNS lookup, works offline
			is.EmailFormat.Error("invalid email format"),
			validation.Length(5, 150),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
			validation.Match(regexp.MustCompile(`[A-Z]`)).Error("password must contain an uppercase letter"),
			validation.Match(regexp.MustCompile(`[a-z]`)).Error("password must contain a lowercase letter"),
			validation.Match(regexp.MustCompile(`[0-9]`)).Error("password must contain a digit"),
		),
		validation.Field(&r.NomComplet,
			validation.Required.Error("nom_complet is required"),
			validation.Length(2, 100),
		),
	)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	Utilisateur UtilisateurDTO `json:"utilisateur"`
}

// ChangeRoleRequest lets an admin change an account's role.
type ChangeRoleRequest struct {
	Role Role `json:"role" binding:"required"`
}

func (r ChangeRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.By(func(value interface{}) error {
			if role, ok := value.(Role); !ok || !role.Valid() {
				return ErrRoleInvalide
			}
			return nil
		})),
	)
}

// UtilisateurDTO is the public account representation.
type UtilisateurDTO struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	NomComplet string    `json:"nom_complet"`
	Role       Role      `json:"role"`
	Actif      bool      `json:"actif"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *Utilisateur) ToDTO() UtilisateurDTO {
	return UtilisateurDTO{
		ID:         u.ID,
		Email:      u.Email,
		NomComplet: u.NomComplet,
		Role:       u.Role,
		Actif:      u.Actif,
		CreatedAt:  u.CreatedAt,
	}
}
