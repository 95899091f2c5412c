package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olympiades_backend/internal/model"
)

func attemptAt(started time.Time, limitMinutes int) *model.ExamAttempt {
	return &model.ExamAttempt{
		StartedAt:        started,
		TimeLimitMinutes: limitMinutes,
		Status:           model.AttemptInProgress,
	}
}

func TestAttemptExpired(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	t.Run("AvantLaLimite", func(t *testing.T) {
		a := attemptAt(start, 60)
		assert.False(t, AttemptExpired(a, start.Add(59*time.Minute)))
	})

	t.Run("ExactementALaLimite", func(t *testing.T) {
		// la péremption est strictement au-delà de la limite
		a := attemptAt(start, 60)
		assert.False(t, AttemptExpired(a, start.Add(60*time.Minute)))
	})

	t.Run("AuDelaDeLaLimite", func(t *testing.T) {
		a := attemptAt(start, 60)
		assert.True(t, AttemptExpired(a, start.Add(60*time.Minute+time.Second)))
	})

	t.Run("TentativeFinaliseeNePerimePas", func(t *testing.T) {
		a := attemptAt(start, 60)
		a.Status = model.AttemptCompleted
		assert.False(t, AttemptExpired(a, start.Add(5*time.Hour)))
	})
}

func TestTimeRemaining(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	a := attemptAt(start, 60)

	assert.Equal(t, 3600, TimeRemaining(a, start))
	assert.Equal(t, 1800, TimeRemaining(a, start.Add(30*time.Minute)))
	assert.Equal(t, 0, TimeRemaining(a, start.Add(60*time.Minute)))
	// jamais négatif, même longtemps après
	assert.Equal(t, 0, TimeRemaining(a, start.Add(3*time.Hour)))
}

func TestScoreAttempt(t *testing.T) {
	bank := map[int64]*model.Question{
		1: {CorrectAnswer: 0},
		2: {CorrectAnswer: 2},
		3: {CorrectAnswer: 3},
		4: {CorrectAnswer: 1},
	}

	t.Run("ScoreSur100ArrondiA2Decimales", func(t *testing.T) {
		a := &model.ExamAttempt{
			QuestionIDs: []int64{1, 2, 3},
			Answers:     []int64{0, 2, 0},
		}
		correct, score := ScoreAttempt(a, bank)
		assert.Equal(t, 2, correct)
		assert.Equal(t, 66.67, score)
	})

	t.Run("SansReponseCompteFaux", func(t *testing.T) {
		a := &model.ExamAttempt{
			QuestionIDs: []int64{1, 2, 3, 4},
			Answers:     []int64{0, model.AnswerUnanswered, model.AnswerUnanswered, 1},
		}
		correct, score := ScoreAttempt(a, bank)
		assert.Equal(t, 2, correct)
		assert.Equal(t, 50.0, score)
	})

	t.Run("QuestionSupprimeeCompteFausse", func(t *testing.T) {
		a := &model.ExamAttempt{
			QuestionIDs: []int64{1, 99},
			Answers:     []int64{0, 0},
		}
		correct, score := ScoreAttempt(a, bank)
		assert.Equal(t, 1, correct)
		assert.Equal(t, 50.0, score)
	})

	t.Run("TentativeVide", func(t *testing.T) {
		a := &model.ExamAttempt{}
		correct, score := ScoreAttempt(a, bank)
		assert.Equal(t, 0, correct)
		assert.Equal(t, 0.0, score)
	})
}

func TestApplyFinalState(t *testing.T) {
	bank := map[int64]*model.Question{
		1: {CorrectAnswer: 0},
		2: {CorrectAnswer: 2},
	}
	now := time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC)

	t.Run("SoumissionDansLesTempsNotee", func(t *testing.T) {
		a := &model.ExamAttempt{
			Status:      model.AttemptInProgress,
			QuestionIDs: []int64{1, 2},
			Answers:     []int64{0, 1},
		}
		ApplyFinalState(a, model.AttemptCompleted, bank, now)

		assert.Equal(t, model.AttemptCompleted, a.Status)
		require.NotNil(t, a.FinishedAt)
		assert.Equal(t, now, *a.FinishedAt)
		assert.Equal(t, 1, a.CorrectCount)
		require.NotNil(t, a.Score)
		assert.Equal(t, 50.0, *a.Score)
	})

	t.Run("TentativePerimeeCloseSansNote", func(t *testing.T) {
		a := &model.ExamAttempt{
			Status:      model.AttemptInProgress,
			QuestionIDs: []int64{1, 2},
			Answers:     []int64{0, 2},
		}
		ApplyFinalState(a, model.AttemptExpired, nil, now)

		assert.Equal(t, model.AttemptExpired, a.Status)
		require.NotNil(t, a.FinishedAt)
		// hors délai : ni score ni compteur, même avec de bonnes réponses
		assert.Nil(t, a.Score)
		assert.Equal(t, 0, a.CorrectCount)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 66.67, Round2(200.0/3.0))
	assert.Equal(t, 33.33, Round2(100.0/3.0))
	assert.Equal(t, 100.0, Round2(100))
	assert.Equal(t, 0.0, Round2(0))
}

func TestBucketScores(t *testing.T) {
	buckets := BucketScores([]float64{0, 5, 9.99, 10, 55, 89.99, 90, 95, 100})

	require.Len(t, buckets, 10)
	assert.Equal(t, "0-9", buckets[0].Label)
	assert.Equal(t, "90-100", buckets[9].Label)

	assert.Equal(t, 3, buckets[0].Count)
	assert.Equal(t, 1, buckets[1].Count)
	assert.Equal(t, 1, buckets[5].Count)
	assert.Equal(t, 1, buckets[8].Count)
	// 100 tombe dans la dernière tranche, pas hors bornes
	assert.Equal(t, 3, buckets[9].Count)
}
