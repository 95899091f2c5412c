package repository

import (
	"olympiades_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type StatsRepository struct {
	DB *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{DB: db}
}

func (r *StatsRepository) CountCandidatesByStatus() (map[model.CandidateStatus]int64, error) {
	type row struct {
		Status model.CandidateStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Candidate{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.CandidateStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

func (r *StatsRepository) CandidatesByRegion() ([]GroupCount, error) {
	var rows []GroupCount
	err := r.DB.Model(&model.Candidate{}).
		Select("COALESCE(NULLIF(region, ''), 'Non spécifié') AS label, COUNT(*) AS count").
		Group("label").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) CandidatesBySchool(limit int) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.DB.Model(&model.Candidate{}).
		Select("COALESCE(NULLIF(school_name, ''), 'Non spécifié') AS label, COUNT(*) AS count").
		Group("label").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) CandidatesByGender() ([]GroupCount, error) {
	var rows []GroupCount
	err := r.DB.Model(&model.Candidate{}).
		Select("COALESCE(NULLIF(gender, ''), 'Non spécifié') AS label, COUNT(*) AS count").
		Group("label").
		Scan(&rows).Error
	return rows, err
}

func (r *StatsRepository) CandidatesByClassLevel() ([]GroupCount, error) {
	var rows []GroupCount
	err := r.DB.Model(&model.Candidate{}).
		Select("COALESCE(NULLIF(class_level, ''), 'Non spécifié') AS label, COUNT(*) AS count").
		Group("label").
		Scan(&rows).Error
	return rows, err
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

// RegistrationsSince : inscriptions par jour depuis une date
func (r *StatsRepository) RegistrationsSince(since time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	err := r.DB.Model(&model.Candidate{}).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}
