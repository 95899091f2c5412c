package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExamResultMessage(t *testing.T) {
	t.Run("ScoreEleve", func(t *testing.T) {
		title, message := ExamResultMessage(85.5)
		assert.Equal(t, "Résultat du QCM : félicitations !", title)
		assert.Contains(t, message, "85.50%")
		assert.Contains(t, message, "Excellent résultat")
	})

	t.Run("ScoreMoyen", func(t *testing.T) {
		title, message := ExamResultMessage(62)
		assert.Equal(t, "Résultat du QCM", title)
		assert.Contains(t, message, "62.00%")
		assert.Contains(t, message, "Bon travail")
	})

	t.Run("ScoreFaible", func(t *testing.T) {
		title, message := ExamResultMessage(30)
		assert.Equal(t, "Résultat du QCM", title)
		assert.Contains(t, message, "Merci pour votre participation")
	})

	t.Run("Bornes", func(t *testing.T) {
		_, high := ExamResultMessage(70)
		assert.Contains(t, high, "Excellent résultat")

		_, mid := ExamResultMessage(50)
		assert.Contains(t, mid, "Bon travail")

		_, low := ExamResultMessage(49.99)
		assert.Contains(t, low, "participation")
	})
}
