package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyazhprofil/site/internal/store"
)

func newTestAuthService(t *testing.T) *AuthService {
	return NewAuthService(store.NewAdminStore(openTestDB(t)), "test-secret", time.Hour, testLogger())
}

func TestBootstrap(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	exists, err := svc.PasswordExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, svc.Bootstrap(ctx, "initial-pass"))
	exists, err = svc.PasswordExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	// A later bootstrap with another password keeps the stored one.
	require.NoError(t, svc.Bootstrap(ctx, "other-pass"))
	_, _, err = svc.Authenticate(ctx, "initial-pass")
	assert.NoError(t, err)
}

func TestBootstrap_EmptyPasswordWithoutCredential(t *testing.T) {
	svc := newTestAuthService(t)

	assert.Error(t, svc.Bootstrap(context.Background(), ""))
}

func TestAuthenticate_RepeatedCallsAllSucceed(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, "secret-pass"))

	for i := 0; i < 3; i++ {
		_, _, err := svc.Authenticate(ctx, "wrong")
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
	for i := 0; i < 3; i++ {
		token, expires, err := svc.Authenticate(ctx, "secret-pass")
		require.NoError(t, err)
		assert.True(t, expires.After(time.Now()))
		assert.NoError(t, svc.ValidateToken(token))
	}
}

func TestAuthenticate_NoCredential(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, err := svc.Authenticate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, "secret-pass"))

	token, _, err := svc.Authenticate(ctx, "secret-pass")
	require.NoError(t, err)

	assert.NoError(t, svc.ValidateToken(token))
	assert.ErrorIs(t, svc.ValidateToken(""), ErrUnauthorized)
	assert.ErrorIs(t, svc.ValidateToken(token+"x"), ErrUnauthorized)

	other := NewAuthService(nil, "another-secret", time.Hour, testLogger())
	assert.ErrorIs(t, other.ValidateToken(token), ErrUnauthorized)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, "secret-pass"))

	err := svc.ChangePassword(ctx, "wrong", "new-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = svc.ChangePassword(ctx, "secret-pass", "short")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	require.NoError(t, svc.ChangePassword(ctx, "secret-pass", "новый-пароль"))

	_, _, err = svc.Authenticate(ctx, "secret-pass")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = svc.Authenticate(ctx, "новый-пароль")
	assert.NoError(t, err)
}

func TestChangePassword_TooLongRejected(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()
	require.NoError(t, svc.Bootstrap(ctx, "secret-pass"))

	err := svc.ChangePassword(ctx, "secret-pass", strings.Repeat("я", 40))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)

	_, _, err = svc.Authenticate(ctx, "secret-pass")
	assert.NoError(t, err, "credential is unchanged")
}
