package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xurp-ia/xurp-api/internal/application/apptest"
	"github.com/xurp-ia/xurp-api/internal/application/dto"
	"github.com/xurp-ia/xurp-api/internal/domain"
	"github.com/xurp-ia/xurp-api/internal/domain/entity"
	"github.com/xurp-ia/xurp-api/pkg/jwt"
)

func newAuth() *AuthUseCase {
	return NewAuthUseCase(apptest.NewStore().Users(), JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "xurp-test"})
}

func TestRegisterYLogin(t *testing.T) {
	uc := newAuth()
	user, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: " Ana@Xurp.io ", Password: "secreto123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@xurp.io", user.Email)
	assert.Equal(t, entity.MembershipFree, user.MembershipType)

	_, err = uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@xurp.io", Password: "otroSecreto", Name: "Ana 2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ANA@xurp.io", Password: "secreto123"})
	require.NoError(t, err)
	id, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, entity.MembershipFree, id.Membership)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "a@xurp.io", Password: "secreto123", Name: "A"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@xurp.io", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "b@xurp.io", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
