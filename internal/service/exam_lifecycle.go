package service

import (
	"math"
	"olympiades_backend/internal/model"
	"time"
)

// AttemptExpired : une tentative en cours est périmée quand le temps
// écoulé dépasse strictement la limite figée au démarrage. Les tentatives
// finalisées ne périment jamais.
func AttemptExpired(a *model.ExamAttempt, now time.Time) bool {
	if a.Status != model.AttemptInProgress {
		return false
	}
	return now.Sub(a.StartedAt) > time.Duration(a.TimeLimitMinutes)*time.Minute
}

// TimeRemaining : secondes restantes, bornées à 0
func TimeRemaining(a *model.ExamAttempt, now time.Time) int {
	total := a.TimeLimitMinutes * 60
	elapsed := int(now.Sub(a.StartedAt).Seconds())
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

// ScoreAttempt compte les bonnes réponses dans l'ordre figé des questions
// et retourne le score sur 100, arrondi à 2 décimales. Les questions
// absentes de la banque (supprimées entre-temps) comptent comme fausses.
func ScoreAttempt(a *model.ExamAttempt, questions map[int64]*model.Question) (int, float64) {
	correct := 0
	for i, qid := range a.QuestionIDs {
		if i >= len(a.Answers) {
			break
		}
		q, ok := questions[qid]
		if !ok {
			continue
		}
		if a.Answers[i] != model.AnswerUnanswered && int(a.Answers[i]) == q.CorrectAnswer {
			correct++
		}
	}

	total := len(a.QuestionIDs)
	if total == 0 {
		return 0, 0
	}
	score := Round2(float64(correct) / float64(total) * 100)
	return correct, score
}

func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// ApplyFinalState fige la tentative dans son état terminal. Seule une
// soumission dans les temps est notée : une tentative périmée ne reçoit
// ni score ni compteur de bonnes réponses.
func ApplyFinalState(a *model.ExamAttempt, status model.AttemptStatus, questions map[int64]*model.Question, now time.Time) {
	a.Status = status
	a.FinishedAt = &now
	if status != model.AttemptCompleted {
		return
	}
	correct, score := ScoreAttempt(a, questions)
	a.CorrectCount = correct
	a.Score = &score
}
