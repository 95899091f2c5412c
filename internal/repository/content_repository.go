package repository

import (
	"errors"

	"olympiades_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

// --- News ---

func (r *ContentRepository) CreateNews(n *model.News) error {
	return r.DB.Create(n).Error
}

func (r *ContentRepository) FindNewsByID(id uint) (*model.News, error) {
	var n model.News
	err := r.DB.First(&n, id).Error
	return &n, err
}

func (r *ContentRepository) UpdateNews(n *model.News) error {
	return r.DB.Save(n).Error
}

func (r *ContentRepository) DeleteNews(id uint) error {
	return r.DB.Delete(&model.News{}, id).Error
}

func (r *ContentRepository) ListNews(publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	var news []model.News
	var total int64

	query := r.DB.Model(&model.News{})
	if publishedOnly {
		query = query.Where("status = ?", "published")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("published_at DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&news).Error
	return news, total, err
}

// --- FAQ ---

func (r *ContentRepository) CreateFAQ(f *model.FAQ) error {
	return r.DB.Create(f).Error
}

func (r *ContentRepository) FindFAQByID(id uint) (*model.FAQ, error) {
	var f model.FAQ
	err := r.DB.First(&f, id).Error
	return &f, err
}

func (r *ContentRepository) UpdateFAQ(f *model.FAQ) error {
	return r.DB.Save(f).Error
}

func (r *ContentRepository) DeleteFAQ(id uint) error {
	return r.DB.Delete(&model.FAQ{}, id).Error
}

func (r *ContentRepository) ListFAQs(activeOnly bool) ([]model.FAQ, error) {
	var faqs []model.FAQ
	query := r.DB.Model(&model.FAQ{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("category ASC, display_order ASC").Find(&faqs).Error
	return faqs, err
}

// --- Timeline ---

func (r *ContentRepository) CreatePhase(p *model.TimelinePhase) error {
	return r.DB.Create(p).Error
}

func (r *ContentRepository) FindPhaseByID(id uint) (*model.TimelinePhase, error) {
	var p model.TimelinePhase
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ContentRepository) UpdatePhase(p *model.TimelinePhase) error {
	return r.DB.Save(p).Error
}

func (r *ContentRepository) DeletePhase(id uint) error {
	return r.DB.Delete(&model.TimelinePhase{}, id).Error
}

func (r *ContentRepository) ListPhases() ([]model.TimelinePhase, error) {
	var phases []model.TimelinePhase
	err := r.DB.Order("phase_number ASC").Find(&phases).Error
	return phases, err
}

// --- Partners ---

func (r *ContentRepository) CreatePartner(p *model.Partner) error {
	return r.DB.Create(p).Error
}

func (r *ContentRepository) FindPartnerByID(id uint) (*model.Partner, error) {
	var p model.Partner
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ContentRepository) UpdatePartner(p *model.Partner) error {
	return r.DB.Save(p).Error
}

func (r *ContentRepository) DeletePartner(id uint) error {
	return r.DB.Delete(&model.Partner{}, id).Error
}

func (r *ContentRepository) ListPartners(activeOnly bool) ([]model.Partner, error) {
	var partners []model.Partner
	query := r.DB.Model(&model.Partner{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order("display_order ASC").Find(&partners).Error
	return partners, err
}

// --- Static pages ---

func (r *ContentRepository) FindPageBySlug(slug string) (*model.StaticPage, error) {
	var p model.StaticPage
	err := r.DB.Where("slug = ?", slug).First(&p).Error
	return &p, err
}

func (r *ContentRepository) UpsertPage(p *model.StaticPage) error {
	existing, err := r.FindPageBySlug(p.Slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(p).Error
	}
	if err != nil {
		return err
	}
	existing.Title = p.Title
	existing.Content = p.Content
	existing.UpdatedBy = p.UpdatedBy
	*p = *existing
	return r.DB.Save(existing).Error
}

func (r *ContentRepository) ListPages() ([]model.StaticPage, error) {
	var pages []model.StaticPage
	err := r.DB.Order("slug ASC").Find(&pages).Error
	return pages, err
}
