package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olympiades_backend/internal/model"
)

func validImportRow() QuestionImportRow {
	return QuestionImportRow{
		Text:          "Quelle est la complexité d'un tri fusion ?",
		OptionA:       "O(n)",
		OptionB:       "O(n log n)",
		OptionC:       "O(n²)",
		OptionD:       "O(log n)",
		CorrectAnswer: 1,
		Category:      "Algorithmique",
		Difficulty:    "medium",
		Explanation:   "Le tri fusion divise puis fusionne en n log n.",
	}
}

func TestValidateImportRow(t *testing.T) {
	t.Run("LigneValide", func(t *testing.T) {
		q, err := ValidateImportRow(validImportRow())
		require.NoError(t, err)
		assert.Equal(t, "Algorithmique", q.Category)
		assert.Equal(t, model.DifficultyMedium, q.Difficulty)
		assert.Equal(t, 1, q.CorrectAnswer)
		assert.True(t, q.IsActive)
	})

	t.Run("EnonceManquant", func(t *testing.T) {
		row := validImportRow()
		row.Text = "   "
		_, err := ValidateImportRow(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "énoncé manquant")
	})

	t.Run("OptionVide", func(t *testing.T) {
		row := validImportRow()
		row.OptionC = ""
		_, err := ValidateImportRow(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "4 options")
	})

	t.Run("BonneReponseHorsBornes", func(t *testing.T) {
		for _, bad := range []int{-1, 4, 10} {
			row := validImportRow()
			row.CorrectAnswer = bad
			_, err := ValidateImportRow(row)
			assert.Error(t, err, "correctAnswer=%d", bad)
		}
	})

	t.Run("ValeursParDefaut", func(t *testing.T) {
		row := validImportRow()
		row.Category = ""
		row.Difficulty = ""
		q, err := ValidateImportRow(row)
		require.NoError(t, err)
		assert.Equal(t, "Logique", q.Category)
		assert.Equal(t, model.DifficultyMedium, q.Difficulty)
	})

	t.Run("CategorieInconnue", func(t *testing.T) {
		row := validImportRow()
		row.Category = "Astrologie"
		_, err := ValidateImportRow(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catégorie inconnue")
	})

	t.Run("DifficulteInconnue", func(t *testing.T) {
		row := validImportRow()
		row.Difficulty = "impossible"
		_, err := ValidateImportRow(row)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "difficulté inconnue")
	})

	t.Run("EnonceNettoye", func(t *testing.T) {
		row := validImportRow()
		row.Text = "  Question avec espaces  "
		q, err := ValidateImportRow(row)
		require.NoError(t, err)
		assert.Equal(t, "Question avec espaces", q.Text)
	})
}

func TestFormatRowError(t *testing.T) {
	// les numéros de ligne sont 1-indexés pour l'utilisateur
	assert.Equal(t, "Ligne 1 : énoncé manquant", formatRowError(0, "énoncé manquant"))
	assert.Equal(t, "Ligne 12 : test", formatRowError(11, "test"))
}
