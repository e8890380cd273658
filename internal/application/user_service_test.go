package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanmarket/marketplace-api/pkg/helpers"
)

func newUserService() *UserService {
	jwt := helpers.NewJWTManager("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	return NewUserService(newFakeUserRepo(), jwt, nil, nil, nil)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "s3cret-pass", u.Password)

	resp, pair, err := svc.Login(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "JAN@Example.COM", "other-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "jan@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)
	pair, err := svc.IssueTokens(ctx, u)
	require.NoError(t, err)

	rotated, userID, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc := newUserService()
	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfile(t *testing.T) {
	svc := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "jan@example.com", "s3cret-pass")
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "jan@example.com", got.Email)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
