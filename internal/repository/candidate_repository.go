package repository

import (
	"olympiades_backend/internal/model"

	"gorm.io/gorm"
)

type CandidateRepository struct {
	DB *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(c *model.Candidate) error {
	return r.DB.Create(c).Error
}

func (r *CandidateRepository) FindByID(id uint) (*model.Candidate, error) {
	var c model.Candidate
	err := r.DB.Preload("User").Preload("School").First(&c, id).Error
	return &c, err
}

func (r *CandidateRepository) FindByUserID(userID uint) (*model.Candidate, error) {
	var c model.Candidate
	err := r.DB.Preload("User").Preload("School").
		Where("user_id = ?", userID).
		First(&c).Error
	return &c, err
}

func (r *CandidateRepository) Update(c *model.Candidate) error {
	return r.DB.Save(c).Error
}

// UpdateQCMScore recopie le score final sur le dossier candidat
func (r *CandidateRepository) UpdateQCMScore(userID uint, score float64) error {
	return r.DB.Model(&model.Candidate{}).
		Where("user_id = ?", userID).
		Update("qcm_score", score).
		Error
}

type CandidateFilter struct {
	Status   model.CandidateStatus
	Region   string
	SchoolID uint
	Search   string
}

func (r *CandidateRepository) List(f CandidateFilter, page, limit int) ([]model.Candidate, int64, error) {
	var candidates []model.Candidate
	var total int64

	query := r.DB.Model(&model.Candidate{}).
		Joins("JOIN users ON users.id = candidates.user_id")

	if f.Status != "" {
		query = query.Where("candidates.status = ?", f.Status)
	}
	if f.Region != "" {
		query = query.Where("candidates.region = ?", f.Region)
	}
	if f.SchoolID != 0 {
		query = query.Where("candidates.school_id = ?", f.SchoolID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where(
			"users.first_name LIKE ? OR users.last_name LIKE ? OR users.email LIKE ?",
			like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Preload("School").
		Order("candidates.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&candidates).Error
	return candidates, total, err
}

func (r *CandidateRepository) CountBySchool(schoolID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Candidate{}).
		Where("school_id = ?", schoolID).
		Count(&count).Error
	return count, err
}

// TopScored : candidats avec un score QCM, pour le classement anonymisé
func (r *CandidateRepository) TopScored(region string, limit int) ([]model.Candidate, error) {
	var candidates []model.Candidate
	query := r.DB.Where("qcm_score IS NOT NULL").
		Where("status IN ?", []model.CandidateStatus{model.CandidateValidated, model.CandidateSubmitted})
	if region != "" {
		query = query.Where("region = ?", region)
	}
	err := query.Order("qcm_score DESC").Limit(limit).Find(&candidates).Error
	return candidates, err
}
