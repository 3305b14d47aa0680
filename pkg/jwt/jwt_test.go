package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "clave-de-firma-para-tests"

func generate(t *testing.T, expMinutes int) string {
	t.Helper()
	envelope, err := Generate(secret, "user-1", "foo@coi.com", "Foo Bar", "Customer", "token-opaco-de-sesion", "accounts-api", expMinutes)
	require.NoError(t, err)
	return envelope
}

func TestGenerateYParse(t *testing.T) {
	envelope := generate(t, 60)

	claims, err := Parse(secret, envelope)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "foo@coi.com", claims.Email)
	assert.Equal(t, "Foo Bar", claims.Name)
	assert.Equal(t, "Customer", claims.Role)
	assert.Equal(t, "token-opaco-de-sesion", claims.SessionToken)
	assert.Equal(t, "accounts-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	envelope := generate(t, 60)
	_, err := Parse("otra-clave", envelope)
	assert.Error(t, err)
}

func TestParse_SobreExpirado(t *testing.T) {
	envelope := generate(t, -1)
	_, err := Parse(secret, envelope)
	assert.Error(t, err)
}

func TestParse_SobreMalformado(t *testing.T) {
	_, err := Parse(secret, "no.es.un.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u", "e", "n", "r", "t", "i", 60)
	assert.Error(t, err)
	_, err = Parse("", "lo-que-sea")
	assert.Error(t, err)
}
