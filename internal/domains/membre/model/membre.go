package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Statut is the lifecycle state of a membership.
type Statut string

const (
	StatutActif    Statut = "ACTIF"
	StatutInactif  Statut = "INACTIF"
	StatutSuspendu Statut = "SUSPENDU"
	StatutRadie    Statut = "RADIE"
)

// ParseStatut validates a raw status value coming from a query parameter
// or request body. Any status can transition to any other status, the only
// restriction is that the value itself must be one of the four known states.
func ParseStatut(raw string) (Statut, error) {
	s := Statut(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case StatutActif, StatutInactif, StatutSuspendu, StatutRadie:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrStatutInvalide, raw)
}

// Membre represents a person enrolled in the association.
// The sponsor ("parrain") relation is kept as an identifier reference;
// ParrainNomComplet is filled on read for response enrichment only and is
// never persisted.
type Membre struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Code              string     `json:"code" db:"code"`
	Nom               string     `json:"nom" db:"nom"`
	Prenom            string     `json:"prenom" db:"prenom"`
	Email             *string    `json:"email" db:"email"`
	Telephone         *string    `json:"telephone" db:"telephone"`
	DateNaissance     *time.Time `json:"date_naissance" db:"date_naissance"`
	Adresse           *string    `json:"adresse" db:"adresse"`
	Profession        *string    `json:"profession" db:"profession"`
	Photo             []byte     `json:"-" db:"photo"`
	PhotoURL          *string    `json:"photo_url" db:"photo_url"`
	Statut            Statut     `json:"statut" db:"statut"`
	DateAdhesion      time.Time  `json:"date_adhesion" db:"date_adhesion"`
	DateModification  time.Time  `json:"date_modification" db:"date_modification"`
	ParrainID         *uuid.UUID `json:"parrain_id" db:"parrain_id"`
	ParrainNomComplet *string    `json:"parrain_nom_complet,omitempty" db:"-"`
	Actif             bool       `json:"actif" db:"actif"`
}

// NomComplet returns the member's full name (first name + last name).
func (m *Membre) NomComplet() string {
	return m.Prenom + " " + m.Nom
}

// EstEnRegle reports whether the member is in good standing.
// Only the active flag and the status contribute to this predicate.
func (m *Membre) EstEnRegle() bool {
	return m.Actif && m.Statut == StatutActif
}

// HasEmail reports whether the member has a usable email address.
func (m *Membre) HasEmail() bool {
	return m.Email != nil && *m.Email != ""
}

// TouchModification bumps the last-modified timestamp.
func (m *Membre) TouchModification() {
	m.DateModification = time.Now()
}

// Code generation constants. A member code looks like M-JD-250001:
// "M-" + initials + "-" + two-digit year, followed by a four-digit sequence.
const (
	codeMarker    = "M-"
	CodeSeqDigits = 4
)

// CodePrefix builds the code prefix for a member created in the given year,
// e.g. ("Dupont", "Jean", 2025) -> "M-JD-25". Names must be non-empty; entity
// validation rejects empty names before code generation is reached.
func CodePrefix(nom, prenom string, year int) string {
	initiales := strings.ToUpper(firstLetter(prenom) + firstLetter(nom))
	return fmt.Sprintf("%s%s-%02d", codeMarker, initiales, year%100)
}

// FormatCode appends the zero-padded sequence number to a prefix.
func FormatCode(prefix string, seq int64) string {
	return fmt.Sprintf("%s%0*d", prefix, CodeSeqDigits, seq)
}

func firstLetter(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return string(r)
		}
	}
	return ""
}
