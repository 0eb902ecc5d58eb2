package services_test

import (
	"testing"

	"catalog-service/services"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundtrip(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	token, err := svc.Generate(42, "user@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "user@example.com", claims["email"])
	assert.Contains(t, claims, "iat")
	assert.Contains(t, claims, "exp")
}

func TestValidate_RejectsGarbage(t *testing.T) {
	svc := services.NewTokenService("test-secret")

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	issuer := services.NewTokenService("secret-a")
	verifier := services.NewTokenService("secret-b")

	token, err := issuer.Generate(1, "user@example.com")
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}
