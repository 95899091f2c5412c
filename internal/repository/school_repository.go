package repository

import (
	"olympiades_backend/internal/model"

	"gorm.io/gorm"
)

type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) Create(s *model.School) error {
	return r.DB.Create(s).Error
}

func (r *SchoolRepository) CreateBatch(schools []model.School) error {
	if len(schools) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(schools, 100).Error
}

func (r *SchoolRepository) FindByID(id uint) (*model.School, error) {
	var s model.School
	err := r.DB.First(&s, id).Error
	return &s, err
}

func (r *SchoolRepository) FindByNameAndCity(name, city string) (*model.School, error) {
	var s model.School
	err := r.DB.Where("name = ? AND city = ?", name, city).First(&s).Error
	return &s, err
}

func (r *SchoolRepository) Update(s *model.School) error {
	return r.DB.Save(s).Error
}

func (r *SchoolRepository) Delete(id uint) error {
	return r.DB.Delete(&model.School{}, id).Error
}

// Search : autocomplétion par nom, insensible à la casse
func (r *SchoolRepository) Search(q string, limit int) ([]model.School, error) {
	var schools []model.School
	err := r.DB.Where("name LIKE ?", "%"+q+"%").
		Order("name ASC").
		Limit(limit).
		Find(&schools).Error
	return schools, err
}

func (r *SchoolRepository) List(region string, page, limit int) ([]model.School, int64, error) {
	var schools []model.School
	var total int64

	query := r.DB.Model(&model.School{})
	if region != "" {
		query = query.Where("region = ?", region)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&schools).Error
	return schools, total, err
}

func (r *SchoolRepository) Regions() ([]string, error) {
	var regions []string
	err := r.DB.Model(&model.School{}).
		Distinct("region").
		Where("region <> ''").
		Order("region ASC").
		Pluck("region", &regions).Error
	return regions, err
}
