package service

import (
	"olympiades_backend/internal/model"
	"time"
)

// Seuils de signalement. Les sorties de plein écran sont jugées plus
// graves que les changements d'onglet, d'où le seuil plus bas.
const (
	TabSwitchFlagThreshold      = 3
	FullscreenExitFlagThreshold = 2
)

// ShouldFlag : une tentative est signalée dès qu'un des deux compteurs
// atteint son seuil
func ShouldFlag(tabSwitches, fullscreenExits int) bool {
	return tabSwitches >= TabSwitchFlagThreshold || fullscreenExits >= FullscreenExitFlagThreshold
}

// ApplyCheatEvent enregistre l'événement sur la tentative et met à jour
// le signalement. copy_attempt et right_click sont journalisés mais ne
// comptent pas dans les seuils. Le drapeau ne redescend jamais.
// Retourne true si l'événement vient de déclencher le signalement.
func ApplyCheatEvent(a *model.ExamAttempt, evType model.CheatEventType, at time.Time) bool {
	switch evType {
	case model.CheatTabSwitch:
		a.TabSwitches++
	case model.CheatFullscreenExit:
		a.FullscreenExits++
	}

	a.CheatEvents = append(a.CheatEvents, model.CheatEvent{Type: evType, At: at})

	if !a.IsFlagged && ShouldFlag(a.TabSwitches, a.FullscreenExits) {
		a.IsFlagged = true
		return true
	}
	return false
}

func ValidCheatEventType(t string) bool {
	switch model.CheatEventType(t) {
	case model.CheatTabSwitch, model.CheatFullscreenExit, model.CheatCopyAttempt, model.CheatRightClick:
		return true
	}
	return false
}
