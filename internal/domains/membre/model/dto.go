package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// CreationMembreRequest carries the fields accepted by both the creation and
// the update endpoints. Update replaces the listed mutable fields wholesale:
// a null field clears the stored value.
type CreationMembreRequest struct {
	Nom           string     `json:"nom" binding:"required"`
	Prenom        string     `json:"prenom" binding:"required"`
	Email         *string    `json:"email,omitempty"`
	Telephone     *string    `json:"telephone,omitempty"`
	DateNaissance *string    `json:"date_naissance,omitempty"`
	Adresse       *string    `json:"adresse,omitempty"`
	Profession    *string    `json:"profession,omitempty"`
	PhotoURL      *string    `json:"photo_url,omitempty"`
	IDParrain     *uuid.UUID `json:"id_parrain,omitempty"`
}

func (r CreationMembreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom,
			validation.Required.Error("nom is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Prenom,
			validation.Required.Error("prenom is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != nil && *r.Email != "",
				// format-only check: no MX/DNS lookup, works offline
				is.EmailFormat.Error("invalid email format"),
				validation.Length(0, 150),
			),
		),
		validation.Field(&r.Telephone,
			validation.Length(0, 20),
		),
		validation.Field(&r.DateNaissance,
			validation.Date(dateLayout).Max(time.Now()).Error("date_naissance must be a past date"),
		),
		validation.Field(&r.Profession,
			validation.Length(0, 100),
		),
		validation.Field(&r.PhotoURL,
			validation.When(r.PhotoURL != nil && *r.PhotoURL != "", is.URL.Error("invalid photo_url")),
		),
	)
}

// BirthDate parses the validated date_naissance field. Returns nil when absent.
func (r CreationMembreRequest) BirthDate() *time.Time {
	if r.DateNaissance == nil || *r.DateNaissance == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, *r.DateNaissance)
	if err != nil {
		return nil
	}
	return &d
}

// NormalizedEmail returns the email with an empty string collapsed to nil so
// the uniqueness constraint only applies to real addresses.
func (r CreationMembreRequest) NormalizedEmail() *string {
	if r.Email == nil || *r.Email == "" {
		return nil
	}
	return r.Email
}

// ToMembre builds a new member from creation input. ID and code stay unset;
// the repository assigns them at insert time.
func (r CreationMembreRequest) ToMembre() *Membre {
	now := time.Now()
	return &Membre{
		Nom:              r.Nom,
		Prenom:           r.Prenom,
		Email:            r.NormalizedEmail(),
		Telephone:        r.Telephone,
		DateNaissance:    r.BirthDate(),
		Adresse:          r.Adresse,
		Profession:       r.Profession,
		PhotoURL:         r.PhotoURL,
		Statut:           StatutActif,
		DateAdhesion:     now,
		DateModification: now,
		Actif:            true,
	}
}

// ApplyTo copies the mutable fields onto a snapshot of an existing member and
// returns the new snapshot. Code, date_adhesion, statut, actif and the id are
// never touched here; the sponsor is resolved separately by the service.
func (r CreationMembreRequest) ApplyTo(current *Membre) *Membre {
	next := *current
	next.Nom = r.Nom
	next.Prenom = r.Prenom
	next.Email = r.NormalizedEmail()
	next.Telephone = r.Telephone
	next.DateNaissance = r.BirthDate()
	next.Adresse = r.Adresse
	next.Profession = r.Profession
	next.PhotoURL = r.PhotoURL
	return &next
}

// DesactivationRequest carries the reason for deactivating a member.
type DesactivationRequest struct {
	Motif string `json:"motif" binding:"required"`
}

func (r DesactivationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Motif,
			validation.Required.Error("motif is required"),
			validation.Length(2, 255),
		),
	)
}

// MembreResponse is the API representation of a member.
type MembreResponse struct {
	ID                uuid.UUID  `json:"id"`
	Code              string     `json:"code"`
	Nom               string     `json:"nom"`
	Prenom            string     `json:"prenom"`
	NomComplet        string     `json:"nom_complet"`
	Email             *string    `json:"email,omitempty"`
	Telephone         *string    `json:"telephone,omitempty"`
	DateNaissance     *string    `json:"date_naissance,omitempty"`
	Adresse           *string    `json:"adresse,omitempty"`
	Profession        *string    `json:"profession,omitempty"`
	PhotoURL          *string    `json:"photo_url,omitempty"`
	Statut            Statut     `json:"statut"`
	DateAdhesion      string     `json:"date_adhesion"`
	DateModification  time.Time  `json:"date_modification"`
	ParrainID         *uuid.UUID `json:"parrain_id,omitempty"`
	ParrainNomComplet *string    `json:"parrain_nom_complet,omitempty"`
	Actif             bool       `json:"actif"`
	EnRegle           bool       `json:"en_regle"`
}

// ToResponse converts a Membre to its API representation.
func (m *Membre) ToResponse() *MembreResponse {
	var naissance *string
	if m.DateNaissance != nil {
		d := m.DateNaissance.Format(dateLayout)
		naissance = &d
	}
	return &MembreResponse{
		ID:                m.ID,
		Code:              m.Code,
		Nom:               m.Nom,
		Prenom:            m.Prenom,
		NomComplet:        m.NomComplet(),
		Email:             m.Email,
		Telephone:         m.Telephone,
		DateNaissance:     naissance,
		Adresse:           m.Adresse,
		Profession:        m.Profession,
		PhotoURL:          m.PhotoURL,
		Statut:            m.Statut,
		DateAdhesion:      m.DateAdhesion.Format(dateLayout),
		DateModification:  m.DateModification,
		ParrainID:         m.ParrainID,
		ParrainNomComplet: m.ParrainNomComplet,
		Actif:             m.Actif,
		EnRegle:           m.EstEnRegle(),
	}
}

// ToResponseList converts a slice of members.
func ToResponseList(membres []Membre) []MembreResponse {
	out := make([]MembreResponse, 0, len(membres))
	for i := range membres {
		out = append(out, *membres[i].ToResponse())
	}
	return out
}
