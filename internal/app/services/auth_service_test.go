package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/registrar/internal/app/models"
	"github.com/yigit/registrar/internal/pkg/apperrors"
	"github.com/yigit/registrar/internal/pkg/auth"
)

func hashedUser(t *testing.T, password string, active bool) *models.User {
	t.Helper()
	auth.BcryptCost = 4
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{ID: 5, Email: "ada@ucsc.edu", Password: hash, IsActive: active}
}

func TestLogin_Success(t *testing.T) {
	users := &mockUserRepo{}
	tokens := &mockTokenIssuer{}
	user := hashedUser(t, "correct horse", true)
	now := time.Date(2021, 3, 29, 8, 0, 0, 0, time.UTC)

	users.On("GetUserByEmail", mock.Anything, "ada@ucsc.edu").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(5), now).Return(nil)
	tokens.On("GenerateToken", user).Return("signed.jwt.token", int64(3600), nil)

	svc := NewAuthService(users, tokens, zerolog.Nop())
	svc.clock = func() time.Time { return now }

	resp, err := svc.Login(context.Background(), "  Ada@UCSC.edu ", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, int64(3600), resp.Token.ExpiresIn)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.True(t, now.Equal(*resp.User.LastLoginAt))
	users.AssertExpectations(t)
}

func TestLogin_Failures(t *testing.T) {
	cases := []struct {
		name     string
		user     *models.User
		lookup   error
		password string
		want     error
	}{
		{name: "unknown email", lookup: apperrors.ErrUserNotFound, password: "x", want: apperrors.ErrInvalidCredentials},
		{name: "wrong password", user: hashedUser(t, "right", true), password: "wrong", want: apperrors.ErrInvalidCredentials},
		{name: "disabled account", user: hashedUser(t, "right", false), password: "right", want: apperrors.ErrAccountDisabled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := &mockUserRepo{}
			tokens := &mockTokenIssuer{}
			users.On("GetUserByEmail", mock.Anything, "ada@ucsc.edu").Return(tc.user, tc.lookup)

			_, err := NewAuthService(users, tokens, zerolog.Nop()).Login(context.Background(), "ada@ucsc.edu", tc.password)
			assert.ErrorIs(t, err, tc.want)
			tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
		})
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	users := &mockUserRepo{}
	_, err := NewAuthService(users, &mockTokenIssuer{}, zerolog.Nop()).Login(context.Background(), "", "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	users.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}
