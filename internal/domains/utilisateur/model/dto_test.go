package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Email:      "jean@asso.fr",
			Password:   "Motdepasse1",
			NomComplet: "Jean Dupont",
		}
	}

	t.Run("valid request", func(t *testing.T) {
		// format check only: must hold even where the domain resolves nowhere
		assert.NoError(t, valid().Validate())
	})

	t.Run("malformed email rejected", func(t *testing.T) {
		r := valid()
		r.Email = "pas-un-email"
		assert.Error(t, r.Validate())
	})

	t.Run("password without digit rejected", func(t *testing.T) {
		r := valid()
		r.Password = "Motdepasse"
		assert.Error(t, r.Validate())
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "jean@asso.fr", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "pas-un-email", Password: "x"}.Validate())
	assert.Error(t, LoginRequest{Email: "jean@asso.fr"}.Validate())
}
