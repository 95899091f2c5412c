package service

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetToken(t *testing.T) {
	t.Run("AllerRetour", func(t *testing.T) {
		token := BuildResetToken(42, "a1b2c3d4")
		id, random, err := ParseResetToken(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
		assert.Equal(t, "a1b2c3d4", random)
	})

	t.Run("PartieAleatoireAvecDeuxPoints", func(t *testing.T) {
		// seul le premier séparateur compte
		id, random, err := ParseResetToken("7:abc:def")
		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
		assert.Equal(t, "abc:def", random)
	})

	t.Run("JetonsInvalides", func(t *testing.T) {
		for _, token := range []string{"", "42", "42:", ":abc", "xyz:abc"} {
			_, _, err := ParseResetToken(token)
			assert.Error(t, err, "token %q", token)
		}
	})
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, otp, 6)
		_, err = strconv.Atoi(otp)
		assert.NoError(t, err, "OTP %q n'est pas numérique", otp)
	}
}
