package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenspoon/backend/internal/apperr"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.users, env.validator, "test-secret", time.Hour, env.log)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	ctx := context.Background()

	token, err := auth.Register(ctx, "a@example.com", "Goodpass1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	user, err := env.users.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	loginToken, err := auth.Login(ctx, "a@example.com", "Goodpass1")
	require.NoError(t, err)
	require.NotEmpty(t, loginToken)
}

func TestAuthRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	ctx := context.Background()

	_, err := auth.Register(ctx, "a@example.com", "Goodpass1")
	require.NoError(t, err)

	_, err = auth.Register(ctx, "a@example.com", "Goodpass1")
	require.Error(t, err)
	assert.EqualError(t, err, "Email is already registered")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.HTTPStatus())
}

func TestAuthRegisterRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(context.Background(), "a@example.com", "alllowercase")
	require.Error(t, err)
	assert.EqualError(t, err, "Password must contain both uppercase and lowercase letters")
}

func TestAuthLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)
	ctx := context.Background()

	_, err := auth.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	assert.EqualError(t, err, "Have not yet registered with this email address")

	_, err = auth.Register(ctx, "a@example.com", "Goodpass1")
	require.NoError(t, err)

	_, err = auth.Login(ctx, "a@example.com", "Wrongpass1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthentication))
	assert.EqualError(t, err, "Invalid password")
}

func TestAuthValidateTokenFailures(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindAuthorization))
	assert.EqualError(t, err, "Please register or log in")

	// A token signed with a different secret is rejected.
	other := NewAuthService(env.users, env.validator, "other-secret", time.Hour, env.log)
	token, err := other.Register(context.Background(), "b@example.com", "Goodpass1")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	require.Error(t, err)
}
