package service

import (
	"fmt"
	"math/rand"
	"olympiades_backend/internal/model"
)

// SelectQuestions tire les questions d'une tentative : chaque niveau de
// difficulté est tronqué à son quota puis les trois lots sont concaténés.
// Quand randomize_questions est actif, les lots sont mélangés avant la
// troncature et l'ensemble est remélangé ; sinon l'ordre d'insertion de
// la banque est conservé pour que le tirage soit reproductible.
// Un seul niveau en pénurie fait échouer tout le tirage.
func SelectQuestions(pool []model.Question, s *model.ExamSettings, rng *rand.Rand) ([]model.Question, error) {
	buckets := map[model.QuestionDifficulty][]model.Question{}
	for _, q := range pool {
		buckets[q.Difficulty] = append(buckets[q.Difficulty], q)
	}

	quotas := []struct {
		difficulty model.QuestionDifficulty
		count      int
	}{
		{model.DifficultyEasy, s.EasyCount},
		{model.DifficultyMedium, s.MediumCount},
		{model.DifficultyHard, s.HardCount},
	}

	attainable := 0
	for _, quota := range quotas {
		n := len(buckets[quota.difficulty])
		if n > quota.count {
			n = quota.count
		}
		attainable += n
	}
	if attainable < s.TotalQuestions {
		return nil, fmt.Errorf("Pas assez de questions disponibles (%d/%d)", attainable, s.TotalQuestions)
	}

	selected := make([]model.Question, 0, s.TotalQuestions)
	for _, quota := range quotas {
		bucket := buckets[quota.difficulty]
		if len(bucket) < quota.count {
			// des quotas incohérents avec le total ne doivent pas paniquer
			return nil, fmt.Errorf("Pas assez de questions disponibles (%d/%d)", attainable, s.TotalQuestions)
		}
		if s.RandomizeQuestions {
			shuffled := make([]model.Question, len(bucket))
			copy(shuffled, bucket)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			bucket = shuffled
		}
		selected = append(selected, bucket[:quota.count]...)
	}

	if s.RandomizeQuestions {
		rng.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
	}

	return selected, nil
}

// OptionPermutation produit l'ordre de présentation des 4 options d'une
// question. La permutation n'est jamais persistée : l'indice correct
// stocké se réfère toujours à l'ordre canonique A-D.
func OptionPermutation(rng *rand.Rand) [4]int {
	perm := [4]int{0, 1, 2, 3}
	rng.Shuffle(4, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	return perm
}
