package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/awesome-blog/internal/config"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuth() *AuthService {
	return newAuthService(config.AuthConfig{
		SecretKey:  "test-secret",
		SessionTTL: time.Hour,
		CookieName: "awesession",
	}, false)
}

func TestPasswordHashing(t *testing.T) {
	auth := testAuth()

	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.True(t, auth.CheckPassword(hash, "secret1"))
	assert.False(t, auth.CheckPassword(hash, "secret2"))
}

func TestTokenRoundTrip(t *testing.T) {
	auth := testAuth()

	token, err := auth.IssueToken(&model.User{ID: "u1", Admin: true})
	require.NoError(t, err)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.True(t, claims.Admin)
}

func TestTokenExpires(t *testing.T) {
	auth := testAuth()
	issued := time.Now()
	auth.now = func() time.Time { return issued }

	token, err := auth.IssueToken(&model.User{ID: "u1"})
	require.NoError(t, err)

	auth.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestTokenRejectsOtherKeysAndAlgorithms(t *testing.T) {
	auth := testAuth()

	other := newAuthService(config.AuthConfig{SecretKey: "other", SessionTTL: time.Hour, CookieName: "x"}, false)
	token, err := other.IssueToken(&model.User{ID: "u1"})
	require.NoError(t, err)
	_, err = auth.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = auth.ParseToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestCookies(t *testing.T) {
	auth := testAuth()

	c := auth.SessionCookie("tok")
	assert.Equal(t, "awesession", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 3600, c.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	cleared := auth.ClearCookie()
	assert.Equal(t, -1, cleared.MaxAge)
}
