package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/xurp-ia/xurp-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

var testIdentity = pkgjwt.Identity{
	UserID:     "00000000-0000-0000-0000-000000000001",
	Email:      "ana@xurp.test",
	Membership: "PRO",
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "xurp-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	id, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testIdentity, *id)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "xurp-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testIdentity, "xurp-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecretNiUsuario(t *testing.T) {
	_, err := pkgjwt.Generate("", testIdentity, "xurp-test", 60)
	assert.Error(t, err)

	_, err = pkgjwt.Generate(testSecret, pkgjwt.Identity{}, "xurp-test", 60)
	assert.Error(t, err)
}
