package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olympiades_backend/internal/model"
	"olympiades_backend/internal/util"
)

func TestPlanStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	closed := &model.ExamSettings{IsOpen: false}
	open := &model.ExamSettings{IsOpen: true}

	t.Run("CreationSiAucuneTentativeEtFenetreOuverte", func(t *testing.T) {
		resume, expire, err := planStart(nil, open, now)
		require.NoError(t, err)
		assert.Nil(t, resume)
		assert.Nil(t, expire)
	})

	t.Run("CreationRefuseeHorsFenetre", func(t *testing.T) {
		_, _, err := planStart(nil, closed, now)
		assert.ErrorIs(t, err, util.ErrExamNotOpen)
	})

	t.Run("RepriseApresFermetureDeLaFenetre", func(t *testing.T) {
		// la fenêtre ne s'applique qu'à la création : un candidat qui
		// rafraîchit sa page après closes_at reprend sa tentative en cours
		closesAt := now.Add(-10 * time.Minute)
		window := &model.ExamSettings{IsOpen: true, ClosesAt: &closesAt}
		existing := []model.ExamAttempt{{
			Status:           model.AttemptInProgress,
			StartedAt:        now.Add(-20 * time.Minute),
			TimeLimitMinutes: 60,
		}}

		resume, expire, err := planStart(existing, window, now)
		require.NoError(t, err)
		require.NotNil(t, resume)
		assert.Nil(t, expire)
	})

	t.Run("TentativeDejaTerminee", func(t *testing.T) {
		existing := []model.ExamAttempt{{Status: model.AttemptCompleted}}
		resume, expire, err := planStart(existing, open, now)
		assert.ErrorIs(t, err, util.ErrExamAlreadyTaken)
		assert.Nil(t, resume)
		assert.Nil(t, expire)
	})

	t.Run("TentativeEnCoursMaisPerimee", func(t *testing.T) {
		existing := []model.ExamAttempt{{
			Status:           model.AttemptInProgress,
			StartedAt:        now.Add(-2 * time.Hour),
			TimeLimitMinutes: 60,
		}}
		resume, expire, err := planStart(existing, open, now)
		assert.ErrorIs(t, err, util.ErrExamAlreadyTaken)
		assert.Nil(t, resume)
		// la tentative périmée est signalée pour être close par l'appelant
		require.NotNil(t, expire)
	})
}
