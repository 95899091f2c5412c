package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMention(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "Excellent"},
		{85, "Excellent"},
		{84.99, "Très Bien"},
		{70, "Très Bien"},
		{69.99, "Bien"},
		{50, "Bien"},
		{49.99, "Participation"},
		{0, "Participation"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Mention(c.score), "score %.2f", c.score)
	}
}

func TestVerificationCode(t *testing.T) {
	t.Run("FormatParType", func(t *testing.T) {
		assert.Equal(t, "PAR-7-ebf50e", VerificationCode(CertificateParticipation, 7))
		assert.Equal(t, "QCM-7-878800", VerificationCode(CertificateQCM, 7))
		assert.Equal(t, "SEL-123-628c8e", VerificationCode(CertificateSelection, 123))
	})

	t.Run("DistinctParTypeEtCandidat", func(t *testing.T) {
		assert.NotEqual(t,
			VerificationCode(CertificateParticipation, 7),
			VerificationCode(CertificateQCM, 7))
		assert.NotEqual(t,
			VerificationCode(CertificateQCM, 7),
			VerificationCode(CertificateQCM, 8))
	})
}

func TestParseVerificationCode(t *testing.T) {
	t.Run("AllerRetour", func(t *testing.T) {
		code := VerificationCode(CertificateSelection, 123)
		kind, id, err := ParseVerificationCode(code)
		require.NoError(t, err)
		assert.Equal(t, CertificateSelection, kind)
		assert.Equal(t, uint(123), id)
	})

	t.Run("InsensibleALaCasseEtAuxEspaces", func(t *testing.T) {
		code := VerificationCode(CertificateQCM, 7)
		kind, id, err := ParseVerificationCode("  " + strings.ToLower(code) + " ")
		require.NoError(t, err)
		assert.Equal(t, CertificateQCM, kind)
		assert.Equal(t, uint(7), id)
	})

	t.Run("CodeForge", func(t *testing.T) {
		// bon format, mauvaise empreinte
		_, _, err := ParseVerificationCode("PAR-7-abcdef")
		assert.Error(t, err)
	})

	t.Run("EmpreinteDUnAutreCandidat", func(t *testing.T) {
		good := VerificationCode(CertificateParticipation, 7)
		hash := strings.Split(good, "-")[2]
		_, _, err := ParseVerificationCode("PAR-8-" + hash)
		assert.Error(t, err)
	})

	t.Run("FormatsInvalides", func(t *testing.T) {
		for _, code := range []string{"", "PAR-7", "XYZ-7-abcdef", "PAR-abc-123456", "PAR-7-abc-def"} {
			_, _, err := ParseVerificationCode(code)
			assert.Error(t, err, code)
		}
	})
}

func TestValidCertificateKind(t *testing.T) {
	assert.True(t, ValidCertificateKind("participation"))
	assert.True(t, ValidCertificateKind("qcm"))
	assert.True(t, ValidCertificateKind("selection"))
	assert.False(t, ValidCertificateKind("diplome"))
	assert.False(t, ValidCertificateKind(""))
}
