package repository

import (
	"olympiades_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// GetSettings retourne l'enregistrement unique de paramètres, créé avec
// les valeurs par défaut s'il n'existe pas encore
func (r *ExamRepository) GetSettings() (*model.ExamSettings, error) {
	var s model.ExamSettings
	err := r.DB.First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = model.ExamSettings{
			DurationMinutes:      30,
			TotalQuestions:       20,
			EasyCount:            5,
			MediumCount:          10,
			HardCount:            5,
			PassingScore:         50,
			RandomizeQuestions:   true,
			RandomizeOptions:     true,
			ShowScoreImmediately: true,
		}
		if err := r.DB.Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *ExamRepository) UpdateSettings(s *model.ExamSettings) error {
	return r.DB.Save(s).Error
}

func (r *ExamRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(fn)
}

// FindAttemptsByUserLocked verrouille les tentatives de l'utilisateur le
// temps de la transaction, pour sérialiser les démarrages concurrents
func (r *ExamRepository) FindAttemptsByUserLocked(tx *gorm.DB, userID uint) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Find(&attempts).Error
	return attempts, err
}

func (r *ExamRepository) CreateAttempt(tx *gorm.DB, a *model.ExamAttempt) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Create(a).Error
}

func (r *ExamRepository) FindAttemptByID(id uint) (*model.ExamAttempt, error) {
	var a model.ExamAttempt
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *ExamRepository) FindAttemptsByUser(userID uint) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *ExamRepository) UpdateAttempt(tx *gorm.DB, a *model.ExamAttempt) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	return db.Save(a).Error
}

type AttemptFilter struct {
	Status  model.AttemptStatus
	Flagged *bool
}

func (r *ExamRepository) ListAttempts(f AttemptFilter, page, limit int) ([]model.ExamAttempt, int64, error) {
	var attempts []model.ExamAttempt
	var total int64

	query := r.DB.Model(&model.ExamAttempt{})
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Flagged != nil {
		query = query.Where("is_flagged = ?", *f.Flagged)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").
		Order("started_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}

func (r *ExamRepository) CountAttemptsByStatus() (map[model.AttemptStatus]int64, error) {
	type row struct {
		Status model.AttemptStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.ExamAttempt{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.AttemptStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *ExamRepository) AverageScore() (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("score IS NOT NULL").
		Select("AVG(score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *ExamRepository) CountFlagged() (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("is_flagged = ?", true).
		Count(&count).Error
	return count, err
}

// FinalizedScores : scores des tentatives terminées, pour la distribution
func (r *ExamRepository) FinalizedScores() ([]float64, error) {
	var scores []float64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("score IS NOT NULL").
		Pluck("score", &scores).Error
	return scores, err
}
