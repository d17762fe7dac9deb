package model

import "errors"

var (
	// Business rule errors
	ErrMembreNotFound   = errors.New("membre not found")
	ErrParrainNotFound  = errors.New("parrain not found")
	ErrEmailDejaUtilise = errors.New("email already used by another membre")
	ErrStatutInvalide   = errors.New("invalid statut")

	// ErrCodeConflict signals a code-generation race: two concurrent
	// creations computed the same sequence number and the unique constraint
	// rejected the second insert. The service retries generation.
	ErrCodeConflict = errors.New("membre code already exists")
)

// ToErrorCode converts a domain error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMembreNotFound):
		return "MEMBRE_NOT_FOUND"
	case errors.Is(err, ErrParrainNotFound):
		return "PARRAIN_NOT_FOUND"
	case errors.Is(err, ErrEmailDejaUtilise):
		return "EMAIL_ALREADY_USED"
	case errors.Is(err, ErrStatutInvalide):
		return "INVALID_STATUT"
	case errors.Is(err, ErrCodeConflict):
		return "CODE_CONFLICT"
	default:
		return "INTERNAL_ERROR"
	}
}

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrMembreNotFound), errors.Is(err, ErrParrainNotFound):
		return 404
	case errors.Is(err, ErrEmailDejaUtilise), errors.Is(err, ErrCodeConflict):
		return 409
	case errors.Is(err, ErrStatutInvalide):
		return 400
	default:
		return 500
	}
}
