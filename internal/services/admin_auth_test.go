package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAdminLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	auth := NewAdminAuth("admin", string(hash), "", "signing-key", time.Hour)

	token, exp, err := auth.Login("admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	user, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)

	_, _, err = auth.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = auth.Login("root", "s3cret")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = auth.Login("", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAdminLoginWithPlainPassword(t *testing.T) {
	auth := NewAdminAuth("admin", "", "dev", "k", time.Hour)
	_, _, err := auth.Login("admin", "dev")
	assert.NoError(t, err)
}

func TestAdminNotConfigured(t *testing.T) {
	auth := NewAdminAuth("admin", "", "", "k", time.Hour)
	assert.False(t, auth.Configured())
	_, _, err := auth.Login("admin", "anything")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestValidateTokenRejectsForeignAndExpired(t *testing.T) {
	auth := NewAdminAuth("admin", "", "pw", "key-one", time.Hour)
	other := NewAdminAuth("admin", "", "pw", "key-two", time.Hour)

	token, _, err := other.Login("admin", "pw")
	require.NoError(t, err)
	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = auth.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)

	short := NewAdminAuth("admin", "", "pw", "key-one", time.Hour)
	short.ttl = -time.Minute
	expired, _, err := short.Login("admin", "pw")
	require.NoError(t, err)
	_, err = auth.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
