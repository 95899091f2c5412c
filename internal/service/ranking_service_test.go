package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymousCode(t *testing.T) {
	t.Run("StableEtCourt", func(t *testing.T) {
		code := AnonymousCode(42)
		assert.Equal(t, "8263f7", code)
		assert.Equal(t, code, AnonymousCode(42))
	})

	t.Run("DistinctParCandidat", func(t *testing.T) {
		assert.NotEqual(t, AnonymousCode(1), AnonymousCode(2))
		assert.Equal(t, "1229fc", AnonymousCode(1))
	})

	t.Run("NeRevelePasLIdentifiant", func(t *testing.T) {
		for _, id := range []uint{1, 10, 999} {
			code := AnonymousCode(id)
			assert.Len(t, code, 6)
			assert.NotContains(t, code, "_")
		}
	})
}

func TestTruncateSchoolName(t *testing.T) {
	t.Run("NomCourtInchange", func(t *testing.T) {
		assert.Equal(t, "Lycée Béhanzin", truncateSchoolName("Lycée Béhanzin"))
	})

	t.Run("NomLongTronqueAvecPointsDeSuspension", func(t *testing.T) {
		long := strings.Repeat("a", 40)
		got := truncateSchoolName(long)
		assert.Equal(t, strings.Repeat("a", 30)+"…", got)
	})

	t.Run("ComptageEnRunes", func(t *testing.T) {
		// 30 caractères accentués = 30 runes, pas de troncature
		name := strings.Repeat("é", 30)
		assert.Equal(t, name, truncateSchoolName(name))

		got := truncateSchoolName(strings.Repeat("é", 31))
		assert.Equal(t, strings.Repeat("é", 30)+"…", got)
	})
}
