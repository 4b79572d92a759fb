package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellnesshub/internal/pkg/jwtutil"
)

func newTestAuthService(users UserStore) *AuthService {
	return NewAuthService(users, "test-secret", time.Hour)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestAuthService(store)

	result, err := svc.Register(RegisterInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.NotZero(t, result.User.ID)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "password1", result.User.PasswordHash)

	// defaults
	assert.Equal(t, "light", result.User.Theme)
	assert.Equal(t, "en", result.User.Language)
	assert.True(t, result.User.NotificationsEnabled)
	assert.False(t, result.User.Incognito)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	store := newFakeUserStore()
	svc := newTestAuthService(store)

	first, err := svc.Register(RegisterInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Password: "different1"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	// the original record is untouched
	kept, err := store.GetByID(first.User.ID)
	require.NoError(t, err)
	assert.Equal(t, first.User.PasswordHash, kept.PasswordHash)
	assert.Len(t, store.users, 1)
}

func TestRegister_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserStore())

	for _, tc := range []RegisterInput{
		{Username: "", Password: "password1"},
		{Username: "alice", Password: ""},
		{Username: "alice", Password: "short"},
	} {
		_, err := svc.Register(tc)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserStore())
	registered, err := svc.Register(RegisterInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	result, err := svc.Login(LoginInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserStore())
	_, err := svc.Register(RegisterInput{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(LoginInput{Username: "alice", Password: "password2"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserStore())
	_, err := svc.Login(LoginInput{Username: "nobody", Password: "password1"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestGetUserByID_ZeroID(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newFakeUserStore())
	_, err := svc.GetUserByID(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
