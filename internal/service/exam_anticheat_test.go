package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"olympiades_backend/internal/model"
	"olympiades_backend/internal/util"
)

func TestShouldFlag(t *testing.T) {
	assert.False(t, ShouldFlag(0, 0))
	assert.False(t, ShouldFlag(2, 1))
	assert.True(t, ShouldFlag(3, 0))
	assert.True(t, ShouldFlag(0, 2))
	assert.True(t, ShouldFlag(5, 4))
}

func TestApplyCheatEvent(t *testing.T) {
	now := time.Now()

	t.Run("SeuilChangementsOnglet", func(t *testing.T) {
		a := &model.ExamAttempt{}
		assert.False(t, ApplyCheatEvent(a, model.CheatTabSwitch, now))
		assert.False(t, ApplyCheatEvent(a, model.CheatTabSwitch, now))
		// le troisième changement d'onglet déclenche le signalement
		assert.True(t, ApplyCheatEvent(a, model.CheatTabSwitch, now))
		assert.True(t, a.IsFlagged)
		assert.Equal(t, 3, a.TabSwitches)
	})

	t.Run("SeuilSortiesPleinEcran", func(t *testing.T) {
		a := &model.ExamAttempt{}
		assert.False(t, ApplyCheatEvent(a, model.CheatFullscreenExit, now))
		assert.True(t, ApplyCheatEvent(a, model.CheatFullscreenExit, now))
		assert.True(t, a.IsFlagged)
		assert.Equal(t, 2, a.FullscreenExits)
	})

	t.Run("CopieEtClicDroitJournalisesSansSeuil", func(t *testing.T) {
		a := &model.ExamAttempt{}
		for i := 0; i < 10; i++ {
			assert.False(t, ApplyCheatEvent(a, model.CheatCopyAttempt, now))
			assert.False(t, ApplyCheatEvent(a, model.CheatRightClick, now))
		}
		assert.False(t, a.IsFlagged)
		assert.Equal(t, 0, a.TabSwitches)
		assert.Equal(t, 0, a.FullscreenExits)
		assert.Len(t, a.CheatEvents, 20)
	})

	t.Run("SignalementDefinitif", func(t *testing.T) {
		a := &model.ExamAttempt{}
		for i := 0; i < 3; i++ {
			ApplyCheatEvent(a, model.CheatTabSwitch, now)
		}
		require.True(t, a.IsFlagged)

		// les événements suivants ne re-déclenchent pas et ne dé-signalent pas
		assert.False(t, ApplyCheatEvent(a, model.CheatTabSwitch, now))
		assert.True(t, a.IsFlagged)
	})

	t.Run("JournalHorodate", func(t *testing.T) {
		a := &model.ExamAttempt{}
		at := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
		ApplyCheatEvent(a, model.CheatTabSwitch, at)

		require.Len(t, a.CheatEvents, 1)
		assert.Equal(t, model.CheatTabSwitch, a.CheatEvents[0].Type)
		assert.Equal(t, at, a.CheatEvents[0].At)
	})
}

func TestValidCheatEventType(t *testing.T) {
	for _, valid := range []string{"tab_switch", "fullscreen_exit", "copy_attempt", "right_click"} {
		assert.True(t, ValidCheatEventType(valid), valid)
	}
	assert.False(t, ValidCheatEventType("devtools"))
	assert.False(t, ValidCheatEventType(""))
}

func TestRecordCheatEventTypeInconnu(t *testing.T) {
	// le type est validé avant tout accès aux données, avec son erreur dédiée
	s := &ExamService{}
	err := s.RecordCheatEvent(1, 1, CheatEventRequest{Type: "devtools"})
	assert.ErrorIs(t, err, util.ErrInvalidEventType)
}
