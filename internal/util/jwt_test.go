package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olympiades_backend/internal/model"
)

func testUser() *model.User {
	u := &model.User{
		Email: "candidat@example.bj",
		Role:  model.RoleCandidate,
	}
	u.ID = 42
	return u
}

func TestJWTRoundTrip(t *testing.T) {
	secret := "secret-de-test-suffisamment-long-pour-hs256"

	token, err := GenerateJWT(testUser(), secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleCandidate, claims.Role)
	assert.Equal(t, "candidat@example.bj", claims.Email)
	// le jti sert de clé de révocation, il doit toujours être présent
	assert.NotEmpty(t, claims.ID)
}

func TestParseJWTRejects(t *testing.T) {
	secret := "secret-de-test-suffisamment-long-pour-hs256"

	t.Run("MauvaisSecret", func(t *testing.T) {
		token, err := GenerateJWT(testUser(), secret, time.Hour)
		require.NoError(t, err)

		_, err = ParseJWT(token, "un-autre-secret")
		assert.Error(t, err)
	})

	t.Run("JetonExpire", func(t *testing.T) {
		token, err := GenerateJWT(testUser(), secret, -time.Minute)
		require.NoError(t, err)

		_, err = ParseJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("JetonMalforme", func(t *testing.T) {
		_, err := ParseJWT("pas.un.jwt", secret)
		assert.Error(t, err)
	})
}

func TestJWTDistinctIDs(t *testing.T) {
	secret := "secret-de-test-suffisamment-long-pour-hs256"

	a, err := GenerateJWT(testUser(), secret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateJWT(testUser(), secret, time.Hour)
	require.NoError(t, err)

	ca, err := ParseJWT(a, secret)
	require.NoError(t, err)
	cb, err := ParseJWT(b, secret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
