package repository

import (
	"olympiades_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) CreateBatch(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(questions, 100).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDs(ids []int64) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// ListActive : réservoir de tirage du QCM
func (r *QuestionRepository) ListActive() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Where("is_active = ?", true).Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) List(category, difficulty string, activeOnly bool, page, limit int) ([]model.Question, int64, error) {
	var questions []model.Question
	var total int64

	query := r.DB.Model(&model.Question{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&questions).Error
	return questions, total, err
}

func (r *QuestionRepository) ListAll() ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.Order("id ASC").Find(&questions).Error
	return questions, err
}

// IncrementStats met à jour les compteurs d'usage à la finalisation
func (r *QuestionRepository) IncrementStats(tx *gorm.DB, questionID int64, correct bool) error {
	db := r.DB
	if tx != nil {
		db = tx
	}
	updates := map[string]interface{}{
		"times_shown": gorm.Expr("times_shown + 1"),
	}
	if correct {
		updates["times_correct"] = gorm.Expr("times_correct + 1")
	}
	return db.Model(&model.Question{}).
		Where("id = ?", questionID).
		Updates(updates).Error
}

// CategoryPerformance : taux de réussite agrégé par catégorie
type CategoryPerformance struct {
	Category     string `json:"category"`
	TimesShown   int64  `json:"timesShown"`
	TimesCorrect int64  `json:"timesCorrect"`
}

func (r *QuestionRepository) PerformanceByCategory() ([]CategoryPerformance, error) {
	var rows []CategoryPerformance
	err := r.DB.Model(&model.Question{}).
		Select("category, SUM(times_shown) AS times_shown, SUM(times_correct) AS times_correct").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	return rows, err
}
