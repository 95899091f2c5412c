package repository

import (
	"olympiades_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type PasswordResetRepository struct {
	DB *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) *PasswordResetRepository {
	return &PasswordResetRepository{DB: db}
}

func (r *PasswordResetRepository) Create(p *model.PasswordReset) error {
	return r.DB.Create(p).Error
}

func (r *PasswordResetRepository) FindLatestByUser(userID uint) (*model.PasswordReset, error) {
	var p model.PasswordReset
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&p).Error
	return &p, err
}

func (r *PasswordResetRepository) Update(p *model.PasswordReset) error {
	return r.DB.Save(p).Error
}

// InvalidateForUser marque comme consommés tous les jetons encore actifs
func (r *PasswordResetRepository) InvalidateForUser(userID uint) error {
	now := time.Now()
	return r.DB.Model(&model.PasswordReset{}).
		Where("user_id = ? AND used_at IS NULL", userID).
		Update("used_at", now).
		Error
}
