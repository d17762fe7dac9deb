package model

import "errors"

var (
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUtilisateurNotFound = errors.New("utilisateur not found")
	ErrUtilisateurInactif  = errors.New("utilisateur account is inactive")
	ErrRoleInvalide        = errors.New("invalid role")
)

// ToHTTPStatus converts a domain error to an HTTP status code.
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUtilisateurNotFound):
		return 404
	case errors.Is(err, ErrEmailAlreadyExists):
		return 409
	case errors.Is(err, ErrInvalidCredentials):
		return 401
	case errors.Is(err, ErrUtilisateurInactif):
		return 403
	case errors.Is(err, ErrRoleInvalide):
		return 400
	default:
		return 500
	}
}

// ToErrorCode converts a domain error to an API error code.
func ToErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUtilisateurNotFound):
		return "UTILISATEUR_NOT_FOUND"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "EMAIL_ALREADY_REGISTERED"
	case errors.Is(err, ErrInvalidCredentials):
		return "INVALID_CREDENTIALS"
	case errors.Is(err, ErrUtilisateurInactif):
		return "ACCOUNT_INACTIVE"
	case errors.Is(err, ErrRoleInvalide):
		return "INVALID_ROLE"
	default:
		return "INTERNAL_ERROR"
	}
}
