package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"olympiades_backend/internal/model"
	"olympiades_backend/internal/repository"
	"olympiades_backend/internal/util"

	"gorm.io/gorm"
)

const (
	rankingMaxLimit       = 500
	rankingDefaultLimit   = 50
	rankingSchoolMaxRunes = 30
)

type RankingService struct {
	Candidates *repository.CandidateRepository
}

func NewRankingService(candidates *repository.CandidateRepository) *RankingService {
	return &RankingService{Candidates: candidates}
}

// RankingEntry est l'entrée publique du classement : le candidat n'est
// identifiable que par son code anonyme
type RankingEntry struct {
	Rank       int     `json:"rank"`
	Code       string  `json:"code"`
	Score      float64 `json:"score"`
	Region     string  `json:"region"`
	SchoolName string  `json:"schoolName"`
}

// AnonymousCode dérive le code public d'un candidat. Stable d'un appel à
// l'autre pour que chacun retrouve sa ligne
func AnonymousCode(candidateID uint) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("olympiades_ia_benin_%d_2026", candidateID)))
	return hex.EncodeToString(sum[:])[:6]
}

func truncateSchoolName(name string) string {
	runes := []rune(name)
	if len(runes) <= rankingSchoolMaxRunes {
		return name
	}
	return string(runes[:rankingSchoolMaxRunes]) + "…"
}

// Rankings retourne le classement anonymisé, optionnellement filtré par
// région. Les ex æquo partagent le même rang
func (s *RankingService) Rankings(region string, limit int) ([]RankingEntry, error) {
	if limit <= 0 {
		limit = rankingDefaultLimit
	}
	if limit > rankingMaxLimit {
		limit = rankingMaxLimit
	}

	candidates, err := s.Candidates.TopScored(region, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(candidates))
	rank := 0
	var lastScore float64
	for i, c := range candidates {
		score := *c.QCMScore
		if i == 0 || score != lastScore {
			rank = i + 1
			lastScore = score
		}
		entries = append(entries, RankingEntry{
			Rank:       rank,
			Code:       AnonymousCode(c.ID),
			Score:      score,
			Region:     c.Region,
			SchoolName: truncateSchoolName(c.SchoolName),
		})
	}
	return entries, nil
}

// MyRanking retourne le code et le rang du candidat connecté, s'il figure
// au classement
type MyRankingResponse struct {
	Code  string   `json:"code"`
	Score *float64 `json:"score"`
	Rank  *int     `json:"rank"`
}

func (s *RankingService) MyRanking(userID uint) (*MyRankingResponse, error) {
	c, err := s.Candidates.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCandidateNotFound
		}
		return nil, err
	}
	resp := &MyRankingResponse{Code: AnonymousCode(c.ID), Score: c.QCMScore}
	if c.QCMScore == nil || c.Status == model.CandidateDraft || c.Status == model.CandidateRejected {
		return resp, nil
	}

	entries, err := s.Rankings("", rankingMaxLimit)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.Code == resp.Code {
			rank := e.Rank
			resp.Rank = &rank
			break
		}
	}
	return resp, nil
}
