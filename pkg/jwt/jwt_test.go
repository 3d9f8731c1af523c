package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/ist-rebalancer/pkg/jwt"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testSubject = "planner@tiendas"
	testIssuer  = "ist-rebalancer-test"
)

func TestGenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "planner", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, role, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testSubject, subject)
	assert.Equal(t, "planner", role)
}

func TestTokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestSecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testSubject, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testSubject, "admin", testIssuer, 60)
	assert.Error(t, err)
}
